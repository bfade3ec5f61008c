// Package antenna computes the excitation of a rectangular phased array:
// progressive phase-shift weights, magnitude tapers and beam steering.
package antenna

import (
	"fmt"
	"math"
	"math/cmplx"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/cmplxs"

	"github.com/wiless/farfield"
)

// Weights holds one complex excitation per element, row-major.
type Weights struct {
	Rows int
	Cols int
	W    vlib.VectorC
}

// NewWeights computes progressive phase-shift weights
//
//	w(m,n) = sqrt(taper(m,n)) * exp(i*(rad(rowPhase*m) + rad(colPhase*n)))
//
// A nil taper is Uniform.
func NewWeights(rows, cols int, steer farfield.Steer, taper Taper) (*Weights, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", farfield.ErrInvalidGeometry, rows, cols)
	}
	if taper == nil {
		taper = Uniform{}
	}
	if err := checkTaperDims(taper, rows, cols); err != nil {
		return nil, err
	}
	w := &Weights{Rows: rows, Cols: cols, W: vlib.NewVectorC(rows * cols)}
	for m := 0; m < rows; m++ {
		for n := 0; n < cols; n++ {
			mag := taper.Magnitude(m, n)
			if mag < 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
				return nil, fmt.Errorf("%w: magnitude %v at (%d,%d)", farfield.ErrInvalidTaper, mag, m, n)
			}
			angle := Radian(steer.RowPhase*float64(m)) + Radian(steer.ColPhase*float64(n))
			w.W[m*cols+n] = cmplx.Rect(math.Sqrt(mag), angle)
		}
	}
	log.Debugf("antenna: %dx%d weights for steer %v", rows, cols, steer)
	return w, nil
}

func (w *Weights) At(m, n int) complex128 {
	return w.W[m*w.Cols+n]
}

// Sum is the plain complex sum of all weights.
func (w *Weights) Sum() complex128 {
	return cmplxs.Sum(w.W)
}

// AbsSum is the sum of weight magnitudes, the largest |Sum| can reach.
func (w *Weights) AbsSum() float64 {
	var s float64
	for _, v := range w.W {
		s += cmplx.Abs(v)
	}
	return s
}

// Power is the sum of squared weight magnitudes.
func (w *Weights) Power() float64 {
	var s float64
	for _, v := range w.W {
		s += real(v)*real(v) + imag(v)*imag(v)
	}
	return s
}

// Radian converts degrees to radians.
func Radian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// Degree converts radians to degrees.
func Degree(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
