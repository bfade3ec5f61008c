package render

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wiless/vlib"

	"github.com/wiless/farfield/synth"
)

var jet = []string{"#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f", "#ffff00", "#ff7f00", "#ff0000", "#7f0000"}

// HTML writes an interactive echarts heat map page. Non-finite bins are
// left empty.
type HTML struct{}

func (HTML) Render(w io.Writer, r *synth.Result) error {
	min, max, ok := r.Range()
	if !ok {
		return errors.New("render: no finite values to plot")
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    r.Label,
			Subtitle: "steer " + r.Steer.String(),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
			Name: thetaAxis,
			Data: axisLabels(r.Theta),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Name: phiAxis,
			Data: axisLabels(r.Phi),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: jet},
		}),
	)

	data := make([]opts.HeatMapData, 0, len(r.Theta)*len(r.Phi))
	for i := range r.Theta {
		for j := range r.Phi {
			v := r.At(i, j)
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, v}})
		}
	}
	hm.AddSeries(r.Label, data)
	return hm.Render(w)
}

func axisLabels(v vlib.VectorF) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	return out
}
