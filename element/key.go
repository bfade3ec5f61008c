package element

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// indexPattern matches an exact "[r,c]" group: no spaces, no leading zeros.
var indexPattern = regexp.MustCompile(`\[(0|[1-9]\d*),(0|[1-9]\d*)\]`)

var (
	ErrNoIndex       = errors.New("no [row,col] index in key")
	ErrMultipleIndex = errors.New("more than one [row,col] index in key")
)

// Key is the 0-indexed lattice position of an element.
type Key struct {
	Row int
	Col int
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,%d)", k.Row, k.Col)
}

// Label returns the index group a raw port name carries for k, e.g.
// "[3,3]" for Key{0,0} with offset 2.
func (k Key) Label(offset int) string {
	return fmt.Sprintf("[%d,%d]", k.Row+1+offset, k.Col+1+offset)
}

// ParseKey extracts the single "[r,c]" group embedded in a port name and
// converts it to a 0-indexed Key. Raw indices are 1-based and shifted by
// offset, so r = Row+1+offset.
func ParseKey(name string, offset int) (Key, error) {
	keys, err := ParseKeys(name, offset)
	if err != nil {
		return Key{}, err
	}
	if len(keys) > 1 {
		return Key{}, fmt.Errorf("%q: %w", name, ErrMultipleIndex)
	}
	return keys[0], nil
}

// ParseKeys returns every "[r,c]" group of a port name, in order.
func ParseKeys(name string, offset int) ([]Key, error) {
	groups := indexPattern.FindAllStringSubmatch(name, -1)
	if len(groups) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoIndex)
	}
	keys := make([]Key, len(groups))
	for i, g := range groups {
		r, err := strconv.Atoi(g[1])
		if err != nil {
			return nil, fmt.Errorf("%q: row index: %v", name, err)
		}
		c, err := strconv.Atoi(g[2])
		if err != nil {
			return nil, fmt.Errorf("%q: col index: %v", name, err)
		}
		keys[i] = Key{Row: r - 1 - offset, Col: c - 1 - offset}
	}
	return keys, nil
}
