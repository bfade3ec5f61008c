// Package dataset reads and writes per-port far-field samples and generates
// synthetic arrays.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"

	"github.com/wiless/farfield/element"
)

// Columns is the CSV header of the long-form far-field table.
var Columns = []string{"port", "theta", "phi", "re_etheta", "im_etheta", "re_ephi", "im_ephi"}

type csvRow struct {
	theta, phi   float64
	etheta, ephi complex128
}

// ReadCSV parses a long-form table, one row per (port, theta, phi) bin in
// any order. Column order follows the header. Each port's grid is the
// sorted set of distinct angles it mentions; every bin must appear once.
func ReadCSV(r io.Reader) (map[string]*element.Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header: %v", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range Columns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("csv header: missing column %q", name)
		}
	}

	rows := make(map[string][]csvRow)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %v", line, err)
		}
		if rec, err = splitPort(rec, col["port"], len(header)); err != nil {
			return nil, fmt.Errorf("csv line %d: %v", line, err)
		}
		var v [6]float64
		for i, name := range Columns[1:] {
			v[i], err = strconv.ParseFloat(strings.TrimSpace(rec[col[name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: %s: %v", line, name, err)
			}
		}
		port := strings.TrimSpace(rec[col["port"]])
		rows[port] = append(rows[port], csvRow{
			theta:  v[0],
			phi:    v[1],
			etheta: complex(v[2], v[3]),
			ephi:   complex(v[4], v[5]),
		})
	}
	if len(rows) == 0 {
		return nil, errors.New("csv: no samples")
	}

	out := make(map[string]*element.Sample, len(rows))
	for port, rs := range rows {
		s, err := assemble(port, rs)
		if err != nil {
			return nil, err
		}
		out[port] = s
	}
	log.Debugf("dataset: read %d ports from csv", len(out))
	return out, nil
}

// splitPort rejoins an unquoted port name such as Port[3,3], which the
// reader splits at its inner comma.
func splitPort(rec []string, port, width int) ([]string, error) {
	switch len(rec) {
	case width:
		return rec, nil
	case width + 1:
		out := make([]string, 0, width)
		out = append(out, rec[:port]...)
		out = append(out, rec[port]+","+rec[port+1])
		return append(out, rec[port+2:]...), nil
	}
	return nil, fmt.Errorf("%d fields, want %d", len(rec), width)
}

func assemble(port string, rs []csvRow) (*element.Sample, error) {
	thetas, phis := make(map[float64]int), make(map[float64]int)
	for _, r := range rs {
		thetas[r.theta] = 0
		phis[r.phi] = 0
	}
	theta, phi := sortedAxis(thetas), sortedAxis(phis)
	if len(theta)*len(phi) != len(rs) {
		return nil, fmt.Errorf("csv port %q: %d rows for a %dx%d grid", port, len(rs), len(theta), len(phi))
	}
	s := element.NewSample(port, theta, phi)
	seen := make([]bool, len(rs))
	for _, r := range rs {
		k := s.Index(thetas[r.theta], phis[r.phi])
		if seen[k] {
			return nil, fmt.Errorf("csv port %q: duplicate bin theta=%v phi=%v", port, r.theta, r.phi)
		}
		seen[k] = true
		s.ETheta[k] = r.etheta
		s.EPhi[k] = r.ephi
	}
	return s, nil
}

// sortedAxis returns the keys in ascending order and records each key's
// position in the map.
func sortedAxis(set map[float64]int) vlib.VectorF {
	axis := make([]float64, 0, len(set))
	for v := range set {
		axis = append(axis, v)
	}
	sort.Float64s(axis)
	for i, v := range axis {
		set[v] = i
	}
	return vlib.VectorF(axis)
}

// WriteCSV writes samples in the long form ReadCSV accepts, ports sorted by
// name and bins theta-major.
func WriteCSV(w io.Writer, samples map[string]*element.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, name := range names {
		s := samples[name]
		for i, theta := range s.Theta {
			for j, phi := range s.Phi {
				k := s.Index(i, j)
				rec := []string{name, f(theta), f(phi),
					f(real(s.ETheta[k])), f(imag(s.ETheta[k])),
					f(real(s.EPhi[k])), f(imag(s.EPhi[k]))}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
