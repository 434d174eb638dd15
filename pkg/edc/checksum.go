package edc

import "Linksim/pkg/bitconv"

// Checksum appends the one's complement of the byte sum, reduced modulo
// 2^Width, as a Width-bit big-endian field.
type Checksum struct {
	width int
	mask  uint64
}

func NewChecksum(width int) (*Checksum, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	return &Checksum{width: width, mask: 1<<width - 1}, nil
}

func (c *Checksum) Width() int {
	return c.width
}

// Calculate the checksum of the complete bytes in bits.
func (c *Checksum) Calculate(bits []bool) uint64 {
	var sum uint64
	for _, b := range bitconv.BitsToBytes(bits) {
		sum = (sum + uint64(b)) & c.mask
	}
	return (c.mask - sum) & c.mask
}

func (c *Checksum) Add(bits []bool) []bool {
	return appendTrailer(bits, c.Calculate(bits), c.width)
}

func (c *Checksum) Verify(bits []bool) ([]bool, bool) {
	payload, received, ok := splitTrailer(bits, c.width)
	if !ok {
		return payload, true
	}
	return payload, received != c.Calculate(payload)
}
