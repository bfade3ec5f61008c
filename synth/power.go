package synth

import (
	"math/cmplx"

	"github.com/wiless/farfield/antenna"
)

// PowerPolicy turns the excitation weights into the input-power figure that
// realized gain is normalised by.
type PowerPolicy interface {
	Pin(w *antenna.Weights) float64
	Name() string
}

// SumMagnitude uses |sum(w)|. Realized gain then matches a division by the
// raw complex sum followed by a magnitude.
type SumMagnitude struct{}

func (SumMagnitude) Pin(w *antenna.Weights) float64 { return cmplx.Abs(w.Sum()) }
func (SumMagnitude) Name() string                   { return "sum" }

// RealSum uses Re(sum(w)). It can go negative, in which case realized gain
// is reported by magnitude.
type RealSum struct{}

func (RealSum) Pin(w *antenna.Weights) float64 { return real(w.Sum()) }
func (RealSum) Name() string                   { return "real" }

// AcceptedPower uses sum(|w|^2), the power accepted by uncoupled elements.
type AcceptedPower struct{}

func (AcceptedPower) Pin(w *antenna.Weights) float64 { return w.Power() }
func (AcceptedPower) Name() string                   { return "accepted" }

var policies = map[string]PowerPolicy{
	SumMagnitude{}.Name():  SumMagnitude{},
	RealSum{}.Name():       RealSum{},
	AcceptedPower{}.Name(): AcceptedPower{},
}

// PolicyByName returns the named policy; the empty name is SumMagnitude.
func PolicyByName(name string) (PowerPolicy, bool) {
	if name == "" {
		return SumMagnitude{}, true
	}
	p, ok := policies[name]
	return p, ok
}
