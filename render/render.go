// Package render turns a synthesised scalar map into a heat map, a Matlab
// script or a table.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wiless/farfield/synth"
)

// Renderer writes one synthesis result to w.
type Renderer interface {
	Render(w io.Writer, r *synth.Result) error
}

// Formats lists the names ByName accepts.
var Formats = []string{"png", "html", "m", "csv"}

// ByName returns the renderer for a format name, which is also the output
// file extension.
func ByName(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return NewPNG(), nil
	case "html":
		return HTML{}, nil
	case "m":
		return Matlab{}, nil
	case "csv":
		return CSV{}, nil
	}
	return nil, fmt.Errorf("render: unknown format %q, want one of %v", format, Formats)
}

const (
	thetaAxis = "Theta (degree)"
	phiAxis   = "Phi (degree)"
)

func title(r *synth.Result) string {
	return fmt.Sprintf("%s, steer %v", r.Label, r.Steer)
}

// CSV writes theta, phi, value rows, theta-major.
type CSV struct{}

func (CSV) Render(w io.Writer, r *synth.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"theta", "phi", r.Label}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i, theta := range r.Theta {
		for j, phi := range r.Phi {
			if err := cw.Write([]string{f(theta), f(phi), f(r.At(i, j))}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
