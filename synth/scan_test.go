package synth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/antenna"
	"github.com/wiless/farfield/dataset"
	"github.com/wiless/farfield/synth"
)

func scanSet(t *testing.T, elementPower float64) (dataset.SyntheticConfig, []farfield.Steer) {
	var cfg dataset.SyntheticConfig
	cfg.SetDefault()
	cfg.Rows, cfg.Cols = 6, 6
	cfg.ElementPower = elementPower
	cfg.Theta = dataset.Axis(0, 90, 1)
	cfg.Phi = dataset.Axis(0, 90, 45)
	var steers []farfield.Steer
	for theta := 0.0; theta <= 50; theta += 10 {
		steers = append(steers, antenna.SteeringPhase(theta, 0, cfg.DX, cfg.DY))
	}
	return cfg, steers
}

func TestScanFollowsSteering(t *testing.T) {
	cfg, steers := scanSet(t, 0)
	samples, err := dataset.Synthetic(cfg)
	if err != nil {
		t.Fatal(err)
	}
	beams, _, err := synth.Scan(context.Background(), samples, synth.Config{Rows: 6, Cols: 6, Quantity: farfield.TotalField}, steers, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(beams) != len(steers) {
		t.Fatalf("%d beams", len(beams))
	}
	for i, b := range beams {
		if b.ID != i || b.Steer != steers[i] {
			t.Errorf("beam %d out of order: %+v", i, b)
		}
		if want := float64(10 * i); b.PeakTheta != want || b.PeakPhi != 0 {
			t.Errorf("beam %d peaks at (%v,%v), want (%v,0)", i, b.PeakTheta, b.PeakPhi, want)
		}
	}
}

func TestScanBestBeam(t *testing.T) {
	cfg, steers := scanSet(t, 1)
	samples, err := dataset.Synthetic(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// with a cos(theta) element the boresight beam is the strongest
	c := synth.Config{Rows: 6, Cols: 6, Quantity: farfield.RealizedGain, Decibels: true, Power: synth.AcceptedPower{}}
	beams, best, err := synth.Scan(context.Background(), samples, c, steers, 0)
	if err != nil {
		t.Fatal(err)
	}
	if best != 0 {
		t.Errorf("best beam %d, want 0", best)
	}
	for i := 1; i < len(beams); i++ {
		if beams[i].Peak >= beams[i-1].Peak {
			t.Errorf("beam %d (%v dB) not weaker than beam %d (%v dB)", i, beams[i].Peak, i-1, beams[i-1].Peak)
		}
	}
}

func TestScanErrors(t *testing.T) {
	cfg, steers := scanSet(t, 0)
	samples, _ := dataset.Synthetic(cfg)
	_, best, err := synth.Scan(context.Background(), samples, synth.Config{Rows: 7, Cols: 6}, steers, 2)
	if !errors.Is(err, farfield.ErrAmbiguousElementMapping) || best != -1 {
		t.Errorf("expected ErrAmbiguousElementMapping, got %v (best %d)", err, best)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := synth.Scan(ctx, samples, synth.Config{Rows: 6, Cols: 6}, steers, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	beams, best, err := synth.Scan(context.Background(), samples, synth.Config{Rows: 6, Cols: 6}, nil, 2)
	if err != nil || beams != nil || best != -1 {
		t.Errorf("empty scan = %v %d %v", beams, best, err)
	}
}
