// Package sensor holds the fitting presets of the particulate sensors the
// decay chamber is run with.
package sensor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cadr/internal/decay"
)

var ErrUnknownProfile = errors.New("unknown sensor profile")

// Profile describes how a sensor's recording is windowed and fitted.
type Profile struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Channel     string           `json:"channel" yaml:"channel"`
	Saturation  decay.Saturation `json:"saturation" yaml:"saturation"`
	LowerBound  float64          `json:"lower_bound" yaml:"lower_bound"`
	Strategy    string           `json:"strategy" yaml:"strategy"`
	Columns     []string         `json:"columns" yaml:"columns"`
}

var profiles = map[string]Profile{
	"pms5003": {
		Name:        "pms5003",
		Description: "Plantower PMS5003, mass-proportional pm2.5; the >0.3 count pins at 65535 while saturated",
		Channel:     "pm2.5",
		Saturation:  decay.Saturation{Channel: ">0.3", Limit: 65535},
		LowerBound:  25,
		Strategy:    decay.StrategyExhaustive,
		Columns:     []string{"time", "pm1.0", "pm2.5", "pm10", ">0.3", ">0.5", ">1.0", ">2.5", ">5", ">10"},
	},
	"sps30": {
		Name:        "sps30",
		Description: "Sensirion SPS30, calibrated mass mPM2.5; readings above 1000 are outside the linear range",
		Channel:     "mPM2.5",
		Saturation:  decay.Saturation{Channel: "mPM2.5", Limit: 1000},
		LowerBound:  100,
		Strategy:    decay.StrategyFixedBound,
		Columns: []string{"time", "mPM1.0", "mPM2.5", "mPM4.0", "mPM10",
			"nPM0.5", "nPM1.0", "nPM2.5", "nPM4.0", "nPM10", "typical", "temp_C", "temp_F", "rh"},
	},
	"sds011": {
		Name:        "sds011",
		Description: "Nova SDS011, pm2.5 in 0.1 ug/m3 steps; no saturation flag",
		Channel:     "pm2.5",
		LowerBound:  25,
		Strategy:    decay.StrategyExhaustive,
		Columns:     []string{"time", "pm2.5", "pm10"},
	},
}

// Lookup returns the profile registered under name, ignoring case.
func Lookup(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownProfile, name, strings.Join(Names(), ", "))
	}
	p.Columns = append([]string(nil), p.Columns...)
	return p, nil
}

// Names lists the registered profiles in order.
func Names() []string {
	out := make([]string, 0, len(profiles))
	for name := range profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns every profile sorted by name.
func All() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, name := range Names() {
		p, _ := Lookup(name)
		out = append(out, p)
	}
	return out
}

// Overrides replaces profile fields for a single analysis. Zero values keep
// the profile's setting.
type Overrides struct {
	Channel    string
	Strategy   string
	LowerBound float64
}

// Apply returns p with o layered on top.
func (p Profile) Apply(o Overrides) Profile {
	if o.Channel != "" {
		p.Channel = o.Channel
	}
	if o.Strategy != "" {
		p.Strategy = o.Strategy
	}
	if o.LowerBound > 0 {
		p.LowerBound = o.LowerBound
	}
	return p
}

// Selector builds the window selector for the profile.
func (p Profile) Selector() (decay.Selector, error) {
	return decay.NewSelector(p.Strategy, p.Channel, p.Saturation, p.LowerBound)
}
