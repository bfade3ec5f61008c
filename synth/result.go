package synth

import (
	"math"

	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wiless/farfield"
)

// Result is the real-valued Ntheta x Nphi map handed to a renderer.
type Result struct {
	Quantity farfield.Quantity
	Decibels bool
	Label    string
	Steer    farfield.Steer
	Theta    vlib.VectorF
	Phi      vlib.VectorF
	Values   *mat.Dense

	Peak      float64
	PeakTheta float64
	PeakPhi   float64
}

// Result selects q from the pattern and locates its peak.
func (p *Pattern) Result(q farfield.Quantity, decibels bool) (*Result, error) {
	values, err := p.Scalar(q, decibels)
	if err != nil {
		return nil, err
	}
	r := &Result{
		Quantity: q,
		Decibels: decibels,
		Label:    Label(q, decibels),
		Steer:    p.Steer,
		Theta:    p.Theta,
		Phi:      p.Phi,
		Values:   values,
	}
	r.locatePeak()
	return r, nil
}

func (r *Result) locatePeak() {
	data := r.Data()
	idx := floats.MaxIdx(data)
	nphi := len(r.Phi)
	r.Peak = data[idx]
	r.PeakTheta = r.Theta[idx/nphi]
	r.PeakPhi = r.Phi[idx%nphi]
}

// Data is the row-major (theta-major) backing slice of Values.
func (r *Result) Data() []float64 {
	return r.Values.RawMatrix().Data
}

// At is the value at theta index i, phi index j.
func (r *Result) At(i, j int) float64 {
	return r.Values.At(i, j)
}

// Range returns the smallest and largest finite values; ok is false when
// there are none.
func (r *Result) Range() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range r.Data() {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
		ok = true
	}
	return min, max, ok
}
