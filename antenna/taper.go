package antenna

import (
	"fmt"
	"math"
	"strings"

	"github.com/wiless/vlib"

	"github.com/wiless/farfield"
)

// Taper gives the power magnitude applied to element (m, n). The excitation
// amplitude is its square root.
type Taper interface {
	Magnitude(m, n int) float64
}

// Uniform is the all-ones taper.
type Uniform struct{}

func (Uniform) Magnitude(m, n int) float64 { return 1 }

// MatrixTaper is an explicit per-element magnitude table, indexed [m][n].
type MatrixTaper vlib.MatrixF

func (t MatrixTaper) Magnitude(m, n int) float64 {
	return t[m][n]
}

func (t MatrixTaper) Dims() (rows, cols int) {
	if len(t) == 0 {
		return 0, 0
	}
	cols = len(t[0])
	for _, row := range t {
		if len(row) != cols {
			return len(t), -1
		}
	}
	return len(t), cols
}

// CosineTaper is a separable raised-cosine taper on a pedestal. Pedestal 1
// is uniform; pedestal 0 falls to zero just beyond the array edge.
type CosineTaper struct {
	Rows     int
	Cols     int
	Pedestal float64
}

func (t CosineTaper) Magnitude(m, n int) float64 {
	return t.axis(m, t.Rows) * t.axis(n, t.Cols)
}

func (t CosineTaper) axis(i, size int) float64 {
	if size <= 1 {
		return 1
	}
	x := (float64(i) - float64(size-1)/2) / float64(size)
	a := t.Pedestal + (1-t.Pedestal)*math.Cos(math.Pi*x)
	return a * a
}

func (t CosineTaper) Dims() (rows, cols int) {
	return t.Rows, t.Cols
}

type dimensioned interface {
	Dims() (rows, cols int)
}

func checkTaperDims(t Taper, rows, cols int) error {
	d, ok := t.(dimensioned)
	if !ok {
		return nil
	}
	r, c := d.Dims()
	if r != rows || c != cols {
		return fmt.Errorf("%w: taper is %dx%d, array is %dx%d", farfield.ErrInvalidTaper, r, c, rows, cols)
	}
	return nil
}

// TaperByName builds one of the named tapers for a rows x cols array.
func TaperByName(name string, rows, cols int, pedestal float64) (Taper, error) {
	switch strings.ToLower(name) {
	case "", "uniform":
		return Uniform{}, nil
	case "cosine":
		if pedestal < 0 || pedestal > 1 {
			return nil, fmt.Errorf("%w: pedestal %v outside [0,1]", farfield.ErrInvalidTaper, pedestal)
		}
		return CosineTaper{Rows: rows, Cols: cols, Pedestal: pedestal}, nil
	}
	return nil, fmt.Errorf("%w: unknown taper %q", farfield.ErrInvalidTaper, name)
}
