package element_test

import (
	"errors"
	"testing"

	"github.com/wiless/vlib"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/element"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		name   string
		offset int
		want   element.Key
	}{
		{"Port[1,1]", 0, element.Key{Row: 0, Col: 0}},
		{"Cell_[3,4]:1", 2, element.Key{Row: 0, Col: 1}},
		{"p[2,17]", 0, element.Key{Row: 1, Col: 16}},
	}
	for _, c := range cases {
		got, err := element.ParseKey(c.name, c.offset)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("ParseKey(%q, %d) = %v, want %v", c.name, c.offset, got, c.want)
		}
		if c.want.Label(c.offset) == "" {
			t.Errorf("empty label")
		}
	}
}

func TestParseKeyErrors(t *testing.T) {
	if _, err := element.ParseKey("Port1", 0); !errors.Is(err, element.ErrNoIndex) {
		t.Errorf("expected ErrNoIndex, got %v", err)
	}
	if _, err := element.ParseKey("Port[1,1][2,2]", 0); !errors.Is(err, element.ErrMultipleIndex) {
		t.Errorf("expected ErrMultipleIndex, got %v", err)
	}
	for _, name := range []string{"Port[03,3]", "Port[ 3 , 3 ]", "Port[3,-3]", "Port[3;3]"} {
		if _, err := element.ParseKey(name, 2); !errors.Is(err, element.ErrNoIndex) {
			t.Errorf("%q: expected ErrNoIndex, got %v", name, err)
		}
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := element.ParseKeys("Mon[1,2]_[3,1]", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []element.Key{{Row: 0, Col: 1}, {Row: 2, Col: 0}}
	if len(keys) != len(want) || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("ParseKeys = %v, want %v", keys, want)
	}
}

func newSample(name string) *element.Sample {
	return element.NewSample(name, vlib.VectorF{0, 90}, vlib.VectorF{0, 90, 180})
}

func TestNewSet(t *testing.T) {
	samples := map[string]*element.Sample{
		"Port[3,3]": newSample("Port[3,3]"),
		"Port[3,4]": newSample("Port[3,4]"),
		"Port[4,3]": newSample("Port[4,3]"),
		"Port[4,4]": newSample("Port[4,4]"),
		"Port[5,5]": newSample("Port[5,5]"),
		"Monitor":   newSample("Monitor"),
	}
	set, err := element.NewSet(samples, 2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 4 {
		t.Fatalf("Len() = %d", set.Len())
	}
	if set.At(1, 0).Name != "Port[4,3]" {
		t.Errorf("At(1,0) = %s", set.At(1, 0).Name)
	}
	if err := set.CheckGrid(); err != nil {
		t.Errorf("CheckGrid: %v", err)
	}
}

func TestNewSetAmbiguous(t *testing.T) {
	dup := map[string]*element.Sample{
		"Port[1,1]":   newSample("Port[1,1]"),
		"Port[1,1]:2": newSample("Port[1,1]:2"),
	}
	if _, err := element.NewSet(dup, 1, 1, 0); !errors.Is(err, farfield.ErrAmbiguousElementMapping) {
		t.Errorf("duplicate: expected ErrAmbiguousElementMapping, got %v", err)
	}

	// a multi-index key only matters where one of its groups is in the array
	stray := map[string]*element.Sample{
		"Port[1,1]":         newSample("Port[1,1]"),
		"Monitor[7,7][8,8]": newSample("Monitor[7,7][8,8]"),
	}
	if _, err := element.NewSet(stray, 1, 1, 0); err != nil {
		t.Errorf("out of window groups: %v", err)
	}
	stray["Monitor[7,7][1,1]"] = newSample("Monitor[7,7][1,1]")
	if _, err := element.NewSet(stray, 1, 1, 0); !errors.Is(err, farfield.ErrAmbiguousElementMapping) {
		t.Errorf("in window group: expected ErrAmbiguousElementMapping, got %v", err)
	}

	missing := map[string]*element.Sample{
		"Port[1,1]": newSample("Port[1,1]"),
	}
	if _, err := element.NewSet(missing, 1, 2, 0); !errors.Is(err, farfield.ErrAmbiguousElementMapping) {
		t.Errorf("missing: expected ErrAmbiguousElementMapping, got %v", err)
	}
}

func TestNewSetGeometry(t *testing.T) {
	if _, err := element.NewSet(nil, 0, 2, 0); !errors.Is(err, farfield.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestCheckGridMismatch(t *testing.T) {
	odd := element.NewSample("Port[1,2]", vlib.VectorF{0, 90}, vlib.VectorF{0, 90})
	samples := map[string]*element.Sample{
		"Port[1,1]": newSample("Port[1,1]"),
		"Port[1,2]": odd,
	}
	set, err := element.NewSet(samples, 1, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := set.CheckGrid(); !errors.Is(err, farfield.ErrInconsistentSampleGrid) {
		t.Errorf("expected ErrInconsistentSampleGrid, got %v", err)
	}

	reordered := element.NewSample("Port[1,2]", vlib.VectorF{90, 0}, vlib.VectorF{0, 90, 180})
	samples["Port[1,2]"] = reordered
	set, _ = element.NewSet(samples, 1, 2, 0)
	if err := set.CheckGrid(); !errors.Is(err, farfield.ErrInconsistentSampleGrid) {
		t.Errorf("reordered: expected ErrInconsistentSampleGrid, got %v", err)
	}

	short := newSample("Port[1,2]")
	short.EPhi = short.EPhi[:2]
	samples["Port[1,2]"] = short
	set, _ = element.NewSet(samples, 1, 2, 0)
	if err := set.CheckGrid(); !errors.Is(err, farfield.ErrInconsistentSampleGrid) {
		t.Errorf("short: expected ErrInconsistentSampleGrid, got %v", err)
	}
}
