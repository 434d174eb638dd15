package bitconv

import (
	"fmt"
	"strings"
)

// Format renders bits as a string of '0' and '1'.
func Format(bits []bool) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, bit := range bits {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Parse reads a string of '0' and '1'. Spaces and underscores are ignored
// so that "0111 1110" and "0111_1110" are accepted.
func Parse(s string) ([]bool, error) {
	bits := make([]bool, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		case ' ', '_':
		default:
			return nil, fmt.Errorf("invalid bit %q at position %d", c, i)
		}
	}
	return bits, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) []bool {
	bits, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return bits
}

// Count the number of set bits.
func Ones(bits []bool) int {
	n := 0
	for _, bit := range bits {
		if bit {
			n++
		}
	}
	return n
}

// Flip returns a copy of bits with every position in flips inverted.
func Flip(bits []bool, flips ...int) []bool {
	out := make([]bool, len(bits))
	copy(out, bits)
	for _, i := range flips {
		out[i] = !out[i]
	}
	return out
}
