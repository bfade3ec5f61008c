package element

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/wiless/farfield"
)

// Set is the rows x cols arrangement of samples used by one synthesis,
// stored row-major.
type Set struct {
	Rows   int
	Cols   int
	Offset int
	elems  []*Sample
}

// NewSet resolves every lattice position (m, n) to the unique sample whose
// name carries the index group [m+1+offset,n+1+offset]. Names without an
// index group and groups outside the array are skipped. A position with no
// sample, or with more than one, is an ErrAmbiguousElementMapping.
func NewSet(samples map[string]*Sample, rows, cols, offset int) (*Set, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", farfield.ErrInvalidGeometry, rows, cols)
	}
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)

	set := &Set{Rows: rows, Cols: cols, Offset: offset, elems: make([]*Sample, rows*cols)}
	owner := make([]string, rows*cols)
	for _, name := range names {
		keys, err := ParseKeys(name, offset)
		if err != nil {
			log.Warnf("element: skipping %v", err)
			continue
		}
		for _, key := range keys {
			if key.Row < 0 || key.Row >= rows || key.Col < 0 || key.Col >= cols {
				log.Debugf("element: %q group %s lies outside the %dx%d array", name, key.Label(offset), rows, cols)
				continue
			}
			if samples[name] == nil {
				return nil, fmt.Errorf("%w: %q has no data", farfield.ErrAmbiguousElementMapping, name)
			}
			idx := key.Row*cols + key.Col
			if owner[idx] == name {
				continue
			}
			if owner[idx] != "" {
				return nil, fmt.Errorf("%w: %s matches both %q and %q",
					farfield.ErrAmbiguousElementMapping, key.Label(offset), owner[idx], name)
			}
			owner[idx] = name
			set.elems[idx] = samples[name]
		}
	}
	for idx, s := range set.elems {
		if s == nil {
			key := Key{Row: idx / cols, Col: idx % cols}
			return nil, fmt.Errorf("%w: no sample for %s", farfield.ErrAmbiguousElementMapping, key.Label(offset))
		}
	}
	return set, nil
}

// At returns the sample at lattice position (m, n).
func (s *Set) At(m, n int) *Sample {
	return s.elems[m*s.Cols+n]
}

func (s *Set) Len() int {
	return len(s.elems)
}

// CheckGrid verifies that every sample is internally consistent and shares
// the angular grid of the element at (0, 0).
func (s *Set) CheckGrid() error {
	ref := s.elems[0]
	for _, e := range s.elems {
		if err := e.Validate(); err != nil {
			return err
		}
		if !e.SameGrid(ref) {
			nt, np := e.Dims()
			rt, rp := ref.Dims()
			return fmt.Errorf("%w: %s is sampled %dx%d, %s is sampled %dx%d (or angles differ)",
				farfield.ErrInconsistentSampleGrid, e.Name, nt, np, ref.Name, rt, rp)
		}
	}
	return nil
}

// Reference is the sample whose grid the whole set shares.
func (s *Set) Reference() *Sample {
	return s.elems[0]
}
