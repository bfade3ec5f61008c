package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/antenna"
	"github.com/wiless/farfield/dataset"
	"github.com/wiless/farfield/render"
	"github.com/wiless/farfield/synth"
)

func result(t *testing.T) *synth.Result {
	var cfg dataset.SyntheticConfig
	cfg.SetDefault()
	cfg.Theta = dataset.Axis(0, 90, 15)
	cfg.Phi = dataset.Axis(0, 180, 30)
	samples, err := dataset.Synthetic(cfg)
	if err != nil {
		t.Fatal(err)
	}
	r, err := synth.Calc(samples, synth.Config{
		Rows:     4,
		Cols:     4,
		Steer:    antenna.SteeringPhase(20, 0, cfg.DX, cfg.DY),
		Quantity: farfield.TotalField,
		Decibels: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRenderers(t *testing.T) {
	r := result(t)
	checks := map[string]func(string) bool{
		"png":  func(s string) bool { return strings.HasPrefix(s, "\x89PNG") },
		"html": func(s string) bool { return strings.Contains(s, "echarts") && strings.Contains(s, "rETotal (dB)") },
		"m":    func(s string) bool { return strings.Contains(s, "imagesc(theta,phi,V)") },
		"csv":  func(s string) bool { return strings.HasPrefix(s, "theta,phi,rETotal (dB)\n") },
	}
	for _, format := range render.Formats {
		rd, err := render.ByName(format)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := rd.Render(&buf, r); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !checks[format](buf.String()) {
			t.Errorf("%s: unexpected output %.80q", format, buf.String())
		}
	}
}

func TestCSVRows(t *testing.T) {
	r := result(t)
	var buf bytes.Buffer
	if err := (render.CSV{}).Render(&buf, r); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if want := 1 + len(r.Theta)*len(r.Phi); len(lines) != want {
		t.Errorf("%d lines, want %d", len(lines), want)
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := render.ByName("gif"); err == nil {
		t.Error("expected an error")
	}
	if _, err := render.ByName(".PNG"); err != nil {
		t.Errorf("ByName(.PNG): %v", err)
	}
}
