package dataset

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/wiless/vlib"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/antenna"
	"github.com/wiless/farfield/element"
)

// SyntheticConfig describes an ideal array used to exercise the synthesiser
// without solver output. Elements have a |cos(theta)|^ElementPower pattern
// with x-directed polarisation; ElementPower 0 is isotropic.
type SyntheticConfig struct {
	Rows         int
	Cols         int
	Offset       int
	DX           float64 // row spacing in wavelengths
	DY           float64 // column spacing in wavelengths
	ElementPower float64
	Prefix       string
	Theta        vlib.VectorF
	Phi          vlib.VectorF
}

// SetDefault fills a 4x4 half-wave array sampled every 2 degrees in theta
// over [0,180] and every 5 degrees in phi over [0,355].
func (s *SyntheticConfig) SetDefault() {
	s.Rows = 4
	s.Cols = 4
	s.DX = 0.5
	s.DY = 0.5
	s.Prefix = "Port"
	s.Theta = Axis(0, 180, 2)
	s.Phi = Axis(0, 355, 5)
}

// Axis returns from, from+step, ... up to and including to.
func Axis(from, to, step float64) vlib.VectorF {
	if step <= 0 || to < from {
		return vlib.VectorF{from}
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	v := vlib.NewVectorF(n)
	for i := range v {
		v[i] = from + float64(i)*step
	}
	return v
}

// Synthetic builds the per-port far field of every element of the array.
func Synthetic(cfg SyntheticConfig) (map[string]*element.Sample, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", farfield.ErrInvalidGeometry, cfg.Rows, cfg.Cols)
	}
	if len(cfg.Theta) == 0 || len(cfg.Phi) == 0 {
		return nil, fmt.Errorf("%w: empty angular grid", farfield.ErrInconsistentSampleGrid)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "Port"
	}
	lattice := antenna.Lattice{Rows: cfg.Rows, Cols: cfg.Cols, DX: cfg.DX, DY: cfg.DY}

	out := make(map[string]*element.Sample, cfg.Rows*cfg.Cols)
	for m := 0; m < cfg.Rows; m++ {
		for n := 0; n < cfg.Cols; n++ {
			name := prefix + element.Key{Row: m, Col: n}.Label(cfg.Offset)
			s := element.NewSample(name, cfg.Theta, cfg.Phi)
			for i, theta := range cfg.Theta {
				a := math.Pow(math.Abs(math.Cos(antenna.Radian(theta))), cfg.ElementPower)
				for j, phi := range cfg.Phi {
					path := cmplx.Exp(complex(0, lattice.Phase(m, n, theta, phi)))
					sp, cp := math.Sincos(antenna.Radian(phi))
					k := s.Index(i, j)
					s.ETheta[k] = complex(a*cp, 0) * path
					s.EPhi[k] = complex(-a*sp, 0) * path
				}
			}
			out[name] = s
		}
	}
	return out, nil
}
