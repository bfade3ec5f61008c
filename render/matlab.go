package render

import (
	"fmt"
	"io"

	"github.com/wiless/vlib"

	"github.com/wiless/farfield/synth"
)

// Matlab writes a script that rebuilds the map and shows it with imagesc.
type Matlab struct{}

func (Matlab) Render(w io.Writer, r *synth.Result) error {
	var matlab vlib.Matlab
	matlab.SetDefaults()
	matlab.SetWriter(w)
	matlab.Silent = true

	matlab.Export("theta", r.Theta)
	matlab.Export("phi", r.Phi)
	matlab.Export("values", vlib.VectorF(r.Data()))
	// values is theta-major, so the reshape yields phi down the rows
	matlab.Command(fmt.Sprintf("\nV=reshape(values,%d,%d);", len(r.Phi), len(r.Theta)))
	matlab.Command("\nfigure;")
	matlab.Command("\nimagesc(theta,phi,V);")
	matlab.Command("\ncolormap(jet);colorbar;axis xy;")
	matlab.Command(fmt.Sprintf("\nxlabel('%s');ylabel('%s');", thetaAxis, phiAxis))
	matlab.Command(fmt.Sprintf("\ntitle('%s');", title(r)))
	matlab.Close()
	return nil
}
