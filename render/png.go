package render

import (
	"errors"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wiless/farfield/synth"
)

// PNG draws the map as a heat map with theta along X and phi along Y.
// Values below the finite range (a -Inf dB null) are drawn in Underflow.
type PNG struct {
	Width     vg.Length
	Height    vg.Length
	Colors    int
	Underflow color.Color
}

func NewPNG() PNG {
	return PNG{Width: 25 * vg.Centimeter, Height: 15 * vg.Centimeter, Colors: 255, Underflow: color.Black}
}

// grid adapts a Result to plotter.GridXYZ; Min and Max restrict the colour
// scale to finite values.
type grid struct {
	r        *synth.Result
	min, max float64
}

func (g grid) Dims() (c, r int)   { return len(g.r.Theta), len(g.r.Phi) }
func (g grid) Z(c, r int) float64 { return g.r.At(c, r) }
func (g grid) X(c int) float64    { return g.r.Theta[c] }
func (g grid) Y(r int) float64    { return g.r.Phi[r] }
func (g grid) Min() float64       { return g.min }
func (g grid) Max() float64       { return g.max }

func (p PNG) Render(w io.Writer, r *synth.Result) error {
	min, max, ok := r.Range()
	if !ok {
		return errors.New("render: no finite values to plot")
	}
	if max <= min {
		max = min + 1
	}

	if p.Colors <= 0 || p.Width <= 0 || p.Height <= 0 {
		d := NewPNG()
		p.Width, p.Height, p.Colors = d.Width, d.Height, d.Colors
	}

	plt := plot.New()
	plt.Title.Text = title(r)
	plt.X.Label.Text = thetaAxis
	plt.Y.Label.Text = phiAxis

	cm := moreland.SmoothBlueRed()
	cm.SetMax(1)
	cm.SetMin(0)
	h := plotter.NewHeatMap(grid{r: r, min: min, max: max}, cm.Palette(p.Colors))
	h.Underflow = p.Underflow
	plt.Add(h)

	wt, err := plt.WriterTo(p.Width, p.Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
