package report

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"cadr/internal/decay"
)

func sampleDoc() Document {
	return Document{
		Profile:    "pms5003",
		Strategy:   decay.StrategyExhaustive,
		RoomVolume: 120,
		Sources:    []string{"run1.csv", "run2.csv"},
		Report: decay.Report{
			Baseline: decay.FitResult{Rate: 1, StdErr: 0.1},
			Trials: []decay.TrialResult{
				{Fit: decay.FitResult{C0: 812.345, Rate: 5, StdErr: 0.2}, Window: decay.Window{Start: 4, End: 90}, CADR: decay.CADREstimate{CADR: 8, StdErr: 0.4472}},
				{Fit: decay.FitResult{C0: 790, Rate: 5.1, StdErr: 0.25}, Window: decay.Window{Start: 3, End: 88}, CADR: decay.CADREstimate{CADR: 8.2, StdErr: 0.5385}},
			},
			Summary: decay.TrialSummary{Mean: 8.1, SEM: 0.1, N: 2},
		},
	}
}

func TestFixed(t *testing.T) {
	cases := map[float64]string{
		8:        "8.00",
		0.447213: "0.45",
		-1.005:   "-1.01",
		1234.5:   "1234.50",
	}
	for in, want := range cases {
		if got := Fixed(in); got != want {
			t.Fatalf("Fixed(%v)=%q, want %q", in, got, want)
		}
	}
}

func TestWriteFitCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFitCSV(&buf, true, FitRow{
		Source: "a.csv",
		Fit:    decay.FitResult{C0: 812.345, Rate: 5.004, StdErr: 0.0123},
		CADR:   decay.CADREstimate{CADR: 8.006, StdErr: 0.02},
	})
	if err != nil {
		t.Fatalf("WriteFitCSV: %v", err)
	}
	want := "file,C0,ACH,stderr,CADR,CADR_err\na.csv,812.35,5.00,0.0123,8.01,0.02\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWrite_Formats(t *testing.T) {
	doc := sampleDoc()

	var text bytes.Buffer
	if err := Write(&text, FormatText, doc); err != nil {
		t.Fatalf("text: %v", err)
	}
	for _, want := range []string{"run1.csv", "812.35", "8.00", "8.10", "n=2"} {
		if !strings.Contains(text.String(), want) {
			t.Fatalf("text output missing %q:\n%s", want, text.String())
		}
	}

	var y bytes.Buffer
	if err := Write(&y, FormatYAML, doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var back Document
	if err := yaml.Unmarshal(y.Bytes(), &back); err != nil {
		t.Fatalf("yaml decode: %v", err)
	}
	if back.Report.Summary.N != 2 || back.Report.Trials[1].CADR.CADR != 8.2 {
		t.Fatalf("unexpected yaml document %+v", back)
	}

	var c bytes.Buffer
	if err := Write(&c, FormatCSV, doc); err != nil {
		t.Fatalf("csv: %v", err)
	}
	if lines := strings.Count(c.String(), "\n"); lines != 2 {
		t.Fatalf("csv lines=%d, want 2:\n%s", lines, c.String())
	}

	if err := Write(&bytes.Buffer{}, "xml", doc); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
