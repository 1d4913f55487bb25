package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "8080" || c.Analysis.Profile != "pms5003" || c.Cache.Backend != "memory" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Chamber.SampleStep != 10*time.Second || c.Auth.TokenTTL != time.Hour {
		t.Fatalf("unexpected durations: step=%v ttl=%v", c.Chamber.SampleStep, c.Auth.TokenTTL)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cadr.yml")
	body := "port: \"9090\"\nanalysis:\n  profile: sps30\nchamber:\n  sample_step: 2s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CADR_ANALYSIS_PROFILE", "sds011")

	c, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "9090" {
		t.Fatalf("port=%q, want 9090", c.Port)
	}
	if c.Analysis.Profile != "sds011" {
		t.Fatalf("env should win over file, got %q", c.Analysis.Profile)
	}
	if c.Chamber.SampleStep != 2*time.Second {
		t.Fatalf("sample_step=%v, want 2s", c.Chamber.SampleStep)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CADR_CACHE_BACKEND", "memcached")

	if _, err := Load(viper.New(), ""); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
