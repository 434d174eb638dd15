// Package edc appends and verifies error detection codes over bit sequences.
package edc

import (
	"fmt"
	"strings"

	"Linksim/pkg/bitconv"
)

// Detector appends a redundancy code and later checks it. Verify returns
// the payload without the code and whether a mismatch was found; it never
// fails, corrupted payloads are handed back as they are.
type Detector interface {
	Add(bits []bool) []bool
	Verify(bits []bool) (payload []bool, hasError bool)
}

// Widths accepted by Checksum and CRC.
var Widths = []int{8, 16, 24, 32}

func checkWidth(width int) error {
	for _, w := range Widths {
		if w == width {
			return nil
		}
	}
	return fmt.Errorf("unsupported width %d, expected one of %v", width, Widths)
}

// splitTrailer separates a trailing width-bit field from the payload.
func splitTrailer(bits []bool, width int) (payload []bool, trailer uint64, ok bool) {
	if len(bits) < width {
		return []bool{}, 0, false
	}
	cut := len(bits) - width
	payload = make([]bool, cut)
	copy(payload, bits[:cut])
	return payload, bitconv.BitsToUint(bits[cut:]), true
}

func appendTrailer(bits []bool, value uint64, width int) []bool {
	out := make([]bool, 0, len(bits)+width)
	out = append(out, bits...)
	return append(out, bitconv.UintToBits(value, width)...)
}

// Kinds accepted by New.
const (
	KindParity   = "parity"
	KindChecksum = "checksum"
	KindCRC      = "crc"
)

// New builds a detector by kind. width is ignored for parity; a zero poly
// selects the default CRC polynomial for width.
func New(kind string, width int, poly uint64) (Detector, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindParity:
		return Parity{}, nil
	case KindChecksum:
		c, err := NewChecksum(width)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindCRC:
		if poly == 0 {
			poly = Polynomials[width]
		}
		c, err := NewCRCWithPolynomial(width, poly)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown error detection %q", kind)
}
