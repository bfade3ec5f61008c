// Package farfield synthesises the composite far-field pattern of a
// rectangular phased array from per-port simulated far-field data.
package farfield

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidGeometry         = errors.New("invalid array geometry")
	ErrAmbiguousElementMapping = errors.New("ambiguous element mapping")
	ErrInconsistentSampleGrid  = errors.New("inconsistent sample grid")
	ErrMissingQuantity         = errors.New("missing quantity")
	ErrDegenerateExcitation    = errors.New("degenerate excitation")
	ErrInvalidTaper            = errors.New("invalid taper")
)

// Quantity selects which scalar map is taken from a synthesised pattern.
type Quantity int

const (
	TotalField Quantity = iota
	ThetaField
	PhiField
	RealizedGain
)

var Quantities = [...]string{
	"rETotal",
	"rETheta",
	"rEPhi",
	"RealizedGain",
}

func (q Quantity) String() string {
	if q < 0 || int(q) >= len(Quantities) {
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
	return Quantities[q]
}

// IsGain reports whether q is a power-like quantity, scaled with 10*log10
// rather than 20*log10.
func (q Quantity) IsGain() bool {
	return q == RealizedGain
}

// ParseQuantity accepts the canonical names and a few short aliases,
// case-insensitively.
func ParseQuantity(s string) (Quantity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "retotal", "total":
		return TotalField, nil
	case "retheta", "theta":
		return ThetaField, nil
	case "rephi", "phi":
		return PhiField, nil
	case "realizedgain", "gain":
		return RealizedGain, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMissingQuantity, s)
}

// Steer is a commanded progressive phase shift in degrees, applied per row
// increment and per column increment.
type Steer struct {
	RowPhase float64
	ColPhase float64
}

func (s Steer) String() string {
	return fmt.Sprintf("(%.1f°,%.1f°)", s.RowPhase, s.ColPhase)
}
