package antenna

import (
	"math"

	"github.com/wiless/vlib"

	"github.com/wiless/farfield"
)

// Lattice places a rows x cols array on the xy plane with row spacing DX
// and column spacing DY, both in wavelengths. Row m lies at x = m*DX and
// column n at y = n*DY.
type Lattice struct {
	Rows int
	Cols int
	DX   float64
	DY   float64
}

// Position returns the element location in wavelengths.
func (l Lattice) Position(m, n int) vlib.Location3D {
	return vlib.Location3D{X: float64(m) * l.DX, Y: float64(n) * l.DY}
}

// Phase is the free-space path phase (radians) of element (m, n) towards
// direction (theta, phi) in degrees, relative to the origin.
func (l Lattice) Phase(m, n int, theta, phi float64) float64 {
	p := l.Position(m, n)
	ux, uy := direction(theta, phi)
	return 2 * math.Pi * (p.X*ux + p.Y*uy)
}

func direction(theta, phi float64) (ux, uy float64) {
	st := math.Sin(Radian(theta))
	return st * math.Cos(Radian(phi)), st * math.Sin(Radian(phi))
}

// SteeringPhase returns the progressive row and column phases (degrees)
// that point the main beam of a lattice with spacings dx, dy (wavelengths)
// at (theta, phi) in degrees.
func SteeringPhase(theta, phi, dx, dy float64) farfield.Steer {
	ux, uy := direction(theta, phi)
	return farfield.Steer{
		RowPhase: -Degree(2 * math.Pi * dx * ux),
		ColPhase: -Degree(2 * math.Pi * dy * uy),
	}
}

// Steer returns the commanded phases that point this lattice at (theta, phi).
func (l Lattice) Steer(theta, phi float64) farfield.Steer {
	return SteeringPhase(theta, phi, l.DX, l.DY)
}

// Wrap180To180 wraps the input angle to -180 to 180
func Wrap180To180(degree float64) float64 {
	if degree >= -180 && degree <= 180 {
		return degree
	}
	degree = math.Mod(degree+180, 360)
	if degree < 0 {
		degree += 360
	}
	return degree - 180
}

// Wrapped returns s with both phases wrapped to [-180, 180]. The weights it
// produces are unchanged.
func Wrapped(s farfield.Steer) farfield.Steer {
	return farfield.Steer{RowPhase: Wrap180To180(s.RowPhase), ColPhase: Wrap180To180(s.ColPhase)}
}
