package synth_test

import (
	"math"
	"testing"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/antenna"
	"github.com/wiless/farfield/synth"
)

func TestPolicies(t *testing.T) {
	// two elements in quadrature: sum = 1+i
	w, err := antenna.NewWeights(1, 2, farfield.Steer{ColPhase: 90}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]float64{
		"":         math.Sqrt2,
		"sum":      math.Sqrt2,
		"real":     1,
		"accepted": 2,
	} {
		p, ok := synth.PolicyByName(name)
		if !ok {
			t.Fatalf("PolicyByName(%q) not found", name)
		}
		if got := p.Pin(w); math.Abs(got-want) > 1e-9 {
			t.Errorf("%q: pin %v, want %v", name, got, want)
		}
	}
	if _, ok := synth.PolicyByName("peak"); ok {
		t.Error("unknown policy accepted")
	}
}
