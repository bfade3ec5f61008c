package main

import (
	"math"
	"testing"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/synth"
)

func TestParsePair(t *testing.T) {
	a, b, err := parsePair(" 30, -45.5")
	if err != nil || a != 30 || b != -45.5 {
		t.Errorf("parsePair = %v, %v, %v", a, b, err)
	}
	for _, s := range []string{"", "30", "1,2,3", "x,2"} {
		if _, _, err := parsePair(s); err == nil {
			t.Errorf("parsePair(%q): expected an error", s)
		}
	}
}

func TestSteerCommand(t *testing.T) {
	c := AppConfig{RowPhase: 10, ColPhase: -20, DX: 0.5, DY: 0.5}
	s, err := c.SteerCommand()
	if err != nil || s != (farfield.Steer{RowPhase: 10, ColPhase: -20}) {
		t.Errorf("direct phases: %v, %v", s, err)
	}

	c.Steer = "30,0"
	s, err = c.SteerCommand()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.RowPhase+90) > 1e-9 || math.Abs(s.ColPhase) > 1e-9 {
		t.Errorf("steer 30,0 gave %v, want (-90,0)", s)
	}

	c.Steer = "30"
	if _, err := c.SteerCommand(); err == nil {
		t.Error("expected an error for a single angle")
	}
}

func TestSynthConfig(t *testing.T) {
	c := AppConfig{Rows: 2, Cols: 3, Offset: 1, Qty: "gain", DB: true, Power: "accepted", Taper: "uniform"}
	sc, err := c.SynthConfig()
	if err != nil {
		t.Fatal(err)
	}
	if sc.Rows != 2 || sc.Cols != 3 || sc.IndexOffset != 1 || sc.Quantity != farfield.RealizedGain || !sc.Decibels {
		t.Errorf("unexpected config %+v", sc)
	}
	if _, ok := sc.Power.(synth.AcceptedPower); !ok {
		t.Errorf("power policy %T", sc.Power)
	}

	c.Power = "peak"
	if _, err := c.SynthConfig(); err == nil {
		t.Error("expected an error for an unknown policy")
	}
	c.Power, c.Qty = "", "rEFoo"
	if _, err := c.SynthConfig(); err == nil {
		t.Error("expected an error for an unknown quantity")
	}
}
