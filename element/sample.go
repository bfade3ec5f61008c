// Package element holds per-port far-field samples and maps them onto the
// lattice positions of a rectangular array.
package element

import (
	"fmt"
	"math"

	"github.com/wiless/vlib"

	"github.com/wiless/farfield"
)

// Sample is the far field of one element driven with unit excitation.
// ETheta and EPhi are flattened theta-major: bin (i, j) is at i*len(Phi)+j.
type Sample struct {
	Name   string
	Theta  vlib.VectorF
	Phi    vlib.VectorF
	ETheta vlib.VectorC
	EPhi   vlib.VectorC
}

// NewSample allocates zeroed component vectors for the given grid.
func NewSample(name string, theta, phi vlib.VectorF) *Sample {
	n := len(theta) * len(phi)
	return &Sample{
		Name:   name,
		Theta:  theta,
		Phi:    phi,
		ETheta: vlib.NewVectorC(n),
		EPhi:   vlib.NewVectorC(n),
	}
}

func (s *Sample) Dims() (ntheta, nphi int) {
	return len(s.Theta), len(s.Phi)
}

// Index returns the flattened position of bin (i, j).
func (s *Sample) Index(i, j int) int {
	return i*len(s.Phi) + j
}

// Validate checks that the component vectors cover the angular grid.
func (s *Sample) Validate() error {
	nt, np := s.Dims()
	if nt == 0 || np == 0 {
		return fmt.Errorf("%w: %s has an empty angular grid", farfield.ErrInconsistentSampleGrid, s.Name)
	}
	if len(s.ETheta) != nt*np || len(s.EPhi) != nt*np {
		return fmt.Errorf("%w: %s has %d/%d components for a %dx%d grid",
			farfield.ErrInconsistentSampleGrid, s.Name, len(s.ETheta), len(s.EPhi), nt, np)
	}
	for _, v := range s.Theta {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has a non-finite theta", farfield.ErrInconsistentSampleGrid, s.Name)
		}
	}
	for _, v := range s.Phi {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has a non-finite phi", farfield.ErrInconsistentSampleGrid, s.Name)
		}
	}
	return nil
}

// SameGrid reports whether o is sampled at exactly the same angles, in the
// same order, as s.
func (s *Sample) SameGrid(o *Sample) bool {
	return sameAxis(s.Theta, o.Theta) && sameAxis(s.Phi, o.Phi)
}

func sameAxis(a, b vlib.VectorF) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Scaled returns a copy of s with both components multiplied by k.
func (s *Sample) Scaled(k complex128) *Sample {
	out := NewSample(s.Name, s.Theta, s.Phi)
	for i := range s.ETheta {
		out.ETheta[i] = k * s.ETheta[i]
		out.EPhi[i] = k * s.EPhi[i]
	}
	return out
}
