// Package framing delimits bit payloads so the receiver can find where a
// frame starts and ends.
package framing

import (
	"errors"
	"fmt"
	"strings"
)

type Framer interface {
	Frame(payload []bool) ([]bool, error)
	Unframe(frame []bool) []bool
}

var ErrFrameTooLarge = errors.New("frame too large")

// FrameTooLargeError reports a payload that exceeds the configured maximum.
// Both sizes are in bits.
type FrameTooLargeError struct {
	Size int
	Max  int
}

func (e *FrameTooLargeError) Error() string {
	return fmt.Sprintf("frame too large: %d bits > %d bits (max: %d bytes)", e.Size, e.Max, e.Max/8)
}

func (e *FrameTooLargeError) Is(target error) bool {
	return target == ErrFrameTooLarge
}

// MaxBits converts a maximum frame size in bytes to bits.
func MaxBits(maxFrameBytes int) int {
	return maxFrameBytes * 8
}

func checkSize(payload []bool, maxBits int) error {
	if len(payload) > maxBits {
		return &FrameTooLargeError{Size: len(payload), Max: maxBits}
	}
	return nil
}

// Names accepted by New.
const (
	NameByteCount    = "byte-count"
	NameBitStuffing  = "bit-stuffing"
	NameByteStuffing = "byte-stuffing"
)

// New builds the framer called name with a payload limit of maxFrameBytes.
// Underscores and case are ignored in name.
func New(name string, maxFrameBytes int) (Framer, error) {
	maxBits := MaxBits(maxFrameBytes)
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case NameByteCount, "bytecount", "count":
		return ByteCount{MaxBits: maxBits}, nil
	case NameBitStuffing, "bitstuffing", "bit":
		return BitStuffing{MaxBits: maxBits}, nil
	case NameByteStuffing, "bytestuffing", "byte":
		return ByteStuffing{MaxBits: maxBits}, nil
	}
	return nil, fmt.Errorf("unknown framing %q", name)
}
