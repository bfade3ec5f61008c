package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"

	"github.com/wiless/farfield/element"
)

type jsonPort struct {
	Theta  []float64   `mapstructure:"theta"`
	Phi    []float64   `mapstructure:"phi"`
	ETheta [][]float64 `mapstructure:"etheta"`
	EPhi   [][]float64 `mapstructure:"ephi"`
}

type jsonFile struct {
	Ports map[string]jsonPort `mapstructure:"ports"`
}

// ReadJSON parses
//
//	{"ports": {"<name>": {"theta": [...], "phi": [...],
//	  "etheta": [[re, im], ...], "ephi": [[re, im], ...]}}}
//
// with components flattened theta-major.
func ReadJSON(r io.Reader) (map[string]*element.Sample, error) {
	var generic map[string]interface{}
	if err := json.NewDecoder(r).Decode(&generic); err != nil {
		return nil, fmt.Errorf("json: %v", err)
	}
	var f jsonFile
	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		Result:           &f,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(generic); err != nil {
		return nil, fmt.Errorf("json: %v", err)
	}
	if len(f.Ports) == 0 {
		return nil, fmt.Errorf("json: no ports")
	}

	out := make(map[string]*element.Sample, len(f.Ports))
	for name, p := range f.Ports {
		s := element.NewSample(name, vlib.VectorF(p.Theta), vlib.VectorF(p.Phi))
		if len(p.ETheta) != len(s.ETheta) || len(p.EPhi) != len(s.EPhi) {
			return nil, fmt.Errorf("json port %q: %d/%d components for a %dx%d grid",
				name, len(p.ETheta), len(p.EPhi), len(p.Theta), len(p.Phi))
		}
		for k := range s.ETheta {
			if s.ETheta[k], err = pair(p.ETheta[k]); err != nil {
				return nil, fmt.Errorf("json port %q etheta[%d]: %v", name, k, err)
			}
			if s.EPhi[k], err = pair(p.EPhi[k]); err != nil {
				return nil, fmt.Errorf("json port %q ephi[%d]: %v", name, k, err)
			}
		}
		out[name] = s
	}
	log.Debugf("dataset: read %d ports from json", len(out))
	return out, nil
}

func pair(v []float64) (complex128, error) {
	if len(v) != 2 {
		return 0, fmt.Errorf("want [re, im], got %d values", len(v))
	}
	return complex(v[0], v[1]), nil
}

// Load reads a dataset file. format is "csv" or "json"; when empty it is
// taken from the file extension.
func Load(path, format string) (map[string]*element.Sample, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	switch format {
	case "csv":
		return ReadCSV(fd)
	case "json":
		return ReadJSON(fd)
	}
	return nil, fmt.Errorf("dataset: unknown format %q", format)
}
