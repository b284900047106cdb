package hex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when coordinate text cannot be read
var ErrMalformed = errors.New("malformed coordinate text")

// ParseCube reads a cube coordinate written as three comma separated
// integers, optionally wrapped in parentheses and whitespace:
//
//	"(1, -1, 0)", "( 1, -1, 0 )", "1, -1, 0", " 1 , -1 , 0 "
//
// Triples that do not sum to zero are rejected with ErrInvalidCoordinate.
func ParseCube(s string) (Cube, error) {
	trimmed := strings.Trim(s, " \t\r\n()")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 3 {
		return Cube{}, fmt.Errorf("%w: %q needs three components", ErrMalformed, s)
	}

	var comps [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Cube{}, fmt.Errorf("%w: %q: %v", ErrMalformed, s, err)
		}
		comps[i] = n
	}

	c := Cube{X: comps[0], Y: comps[1], Z: comps[2]}
	if !c.Valid() {
		return Cube{}, fmt.Errorf("%w: sum%s != 0", ErrInvalidCoordinate, c)
	}
	return c, nil
}

// ParseIndex reads an edge or vertex index, a whole number in [0, 6)
func ParseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformed, s, err)
	}
	if !ValidIndex(n) {
		return 0, fmt.Errorf("%w: index %d must be between 0 and 5", ErrMalformed, n)
	}
	return n, nil
}

// ParseLocation reads "<cube>:<index>", e.g. "(1, -1, 0):3"
func ParseLocation(s string) (Cube, int, error) {
	sep := strings.LastIndex(s, ":")
	if sep < 0 {
		return Cube{}, 0, fmt.Errorf("%w: %q is missing ':<index>'", ErrMalformed, s)
	}
	c, err := ParseCube(s[:sep])
	if err != nil {
		return Cube{}, 0, err
	}
	i, err := ParseIndex(s[sep+1:])
	if err != nil {
		return Cube{}, 0, err
	}
	return c, i, nil
}
