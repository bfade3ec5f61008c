// Package synth combines per-element far-field samples with progressive
// phase-shift excitation weights into the composite pattern of the array.
package synth

import (
	"fmt"
	"math"
	"math/cmplx"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/antenna"
	"github.com/wiless/farfield/element"
)

// FreeSpaceImpedance is the rounded impedance of free space in ohms used in
// the realized gain normalisation.
const FreeSpaceImpedance = 377.0

// degenerateTol is the fraction of sum(|w|) below which the input power is
// treated as zero.
const degenerateTol = 1e-12

// Config describes one synthesis. IndexOffset shifts the [row,col] groups
// expected in the sample names; a nil Taper is uniform and a nil Power is
// SumMagnitude.
type Config struct {
	Rows        int
	Cols        int
	IndexOffset int
	Steer       farfield.Steer
	Quantity    farfield.Quantity
	Decibels    bool
	Taper       antenna.Taper
	Power       PowerPolicy
}

// Pattern is the composite far field of the array over the shared grid.
// Gain is nil when the excitation is degenerate.
type Pattern struct {
	Theta   vlib.VectorF
	Phi     vlib.VectorF
	ETheta  *mat.CDense
	EPhi    *mat.CDense
	Total   *mat.Dense
	Gain    *mat.Dense
	Pin     float64
	RawPin  complex128
	Policy  string
	Steer   farfield.Steer
	Weights *antenna.Weights
}

func validQuantity(q farfield.Quantity) error {
	if q < 0 || int(q) >= len(farfield.Quantities) {
		return fmt.Errorf("%w: %v", farfield.ErrMissingQuantity, q)
	}
	return nil
}

// Synthesize forms the coherent sum of the weighted element fields.
func Synthesize(samples map[string]*element.Sample, cfg Config) (*Pattern, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", farfield.ErrInvalidGeometry, cfg.Rows, cfg.Cols)
	}
	set, err := element.NewSet(samples, cfg.Rows, cfg.Cols, cfg.IndexOffset)
	if err != nil {
		return nil, err
	}
	if err := set.CheckGrid(); err != nil {
		return nil, err
	}
	w, err := antenna.NewWeights(cfg.Rows, cfg.Cols, cfg.Steer, cfg.Taper)
	if err != nil {
		return nil, err
	}
	power := cfg.Power
	if power == nil {
		power = SumMagnitude{}
	}

	ref := set.Reference()
	ntheta, nphi := ref.Dims()
	etheta := make([]complex128, ntheta*nphi)
	ephi := make([]complex128, ntheta*nphi)
	for m := 0; m < cfg.Rows; m++ {
		for n := 0; n < cfg.Cols; n++ {
			e := set.At(m, n)
			cmplxs.AddScaled(etheta, w.At(m, n), e.ETheta)
			cmplxs.AddScaled(ephi, w.At(m, n), e.EPhi)
		}
	}

	p := &Pattern{
		Theta:   ref.Theta,
		Phi:     ref.Phi,
		ETheta:  mat.NewCDense(ntheta, nphi, etheta),
		EPhi:    mat.NewCDense(ntheta, nphi, ephi),
		RawPin:  w.Sum(),
		Pin:     power.Pin(w),
		Policy:  power.Name(),
		Steer:   cfg.Steer,
		Weights: w,
	}

	total := make([]float64, ntheta*nphi)
	for i := range total {
		total[i] = math.Sqrt(abs2(etheta[i]) + abs2(ephi[i]))
	}
	p.Total = mat.NewDense(ntheta, nphi, total)

	log.Debugf("synth: steer %v pin %v (%s), raw sum %v", cfg.Steer, p.Pin, p.Policy, p.RawPin)
	if math.Abs(p.Pin) <= degenerateTol*w.AbsSum() {
		log.Debugf("synth: degenerate excitation, realized gain unavailable")
		return p, nil
	}
	gain := make([]float64, ntheta*nphi)
	for i, e := range total {
		gain[i] = math.Abs(2 * math.Pi * e * e / p.Pin / FreeSpaceImpedance)
	}
	p.Gain = mat.NewDense(ntheta, nphi, gain)
	return p, nil
}

func abs2(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}

// Linear returns |q| over the grid.
func (p *Pattern) Linear(q farfield.Quantity) (*mat.Dense, error) {
	if err := validQuantity(q); err != nil {
		return nil, err
	}
	ntheta, nphi := len(p.Theta), len(p.Phi)
	out := mat.NewDense(ntheta, nphi, nil)
	switch q {
	case farfield.ThetaField:
		absInto(out, p.ETheta)
	case farfield.PhiField:
		absInto(out, p.EPhi)
	case farfield.TotalField:
		out.Copy(p.Total)
	case farfield.RealizedGain:
		if p.Gain == nil {
			return nil, fmt.Errorf("%w: input power %v under the %s policy", farfield.ErrDegenerateExcitation, p.Pin, p.Policy)
		}
		out.Copy(p.Gain)
	}
	return out, nil
}

func absInto(dst *mat.Dense, src *mat.CDense) {
	r, c := src.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, cmplx.Abs(src.At(i, j)))
		}
	}
}

// Scalar returns q in linear magnitude, or in dB when decibels is set:
// 10*log10 for gain and 20*log10 for fields.
func (p *Pattern) Scalar(q farfield.Quantity, decibels bool) (*mat.Dense, error) {
	out, err := p.Linear(q)
	if err != nil || !decibels {
		return out, err
	}
	scale := 2.0
	if q.IsGain() {
		scale = 1.0
	}
	out.Apply(func(_, _ int, v float64) float64 {
		return scale * vlib.Db(v)
	}, out)
	return out, nil
}

// Label names the plotted quantity the way the grid is scaled.
func Label(q farfield.Quantity, decibels bool) string {
	if decibels {
		return q.String() + " (dB)"
	}
	return q.String() + " (mag)"
}

// Calc is the whole pipeline: it validates the quantity before touching the
// samples, synthesises the pattern and selects the scaled scalar map.
func Calc(samples map[string]*element.Sample, cfg Config) (*Result, error) {
	if err := validQuantity(cfg.Quantity); err != nil {
		return nil, err
	}
	p, err := Synthesize(samples, cfg)
	if err != nil {
		return nil, err
	}
	return p.Result(cfg.Quantity, cfg.Decibels)
}
