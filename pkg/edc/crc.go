package edc

import (
	"fmt"

	"Linksim/pkg/bitconv"
)

// Default generator polynomials per width, MSB-first without the implicit
// top bit.
var Polynomials = map[int]uint64{
	8:  0xD5,
	16: 0x8005,
	24: 0x864CFB,
	32: 0x04C11DB7,
}

// CRC is a table-driven, MSB-first cyclic redundancy check of a given
// width. The register starts at zero and is not inverted on output.
type CRC struct {
	Poly uint64

	width int
	mask  uint64
	table [256]uint64
}

func NewCRC(width int) (*CRC, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	return NewCRCWithPolynomial(width, Polynomials[width])
}

func NewCRCWithPolynomial(width int, poly uint64) (*CRC, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	mask := uint64(1)<<width - 1
	if poly == 0 || poly&mask != poly {
		return nil, fmt.Errorf("polynomial %#x does not fit in %d bits", poly, width)
	}
	c := &CRC{Poly: poly, width: width, mask: mask}
	c.makeTable()
	return c, nil
}

func (c *CRC) makeTable() {
	top := uint64(1) << (c.width - 1)
	for i := range c.table {
		crc := uint64(i) << (c.width - 8)
		for k := 0; k < 8; k++ {
			if crc&top != 0 {
				crc = (crc << 1) ^ c.Poly
			} else {
				crc <<= 1
			}
		}
		c.table[i] = crc & c.mask
	}
}

func (c *CRC) Width() int {
	return c.width
}

// Update feeds one byte into a running register value.
func (c *CRC) Update(crc uint64, b byte) uint64 {
	index := byte(crc>>(c.width-8)) ^ b
	return ((crc << 8) ^ c.table[index]) & c.mask
}

func (c *CRC) Checksum(data []byte) uint64 {
	var crc uint64
	for _, b := range data {
		crc = c.Update(crc, b)
	}
	return crc
}

// Calculate the CRC over the complete bytes in bits.
func (c *CRC) Calculate(bits []bool) uint64 {
	return c.Checksum(bitconv.BitsToBytes(bits))
}

func (c *CRC) Add(bits []bool) []bool {
	return appendTrailer(bits, c.Calculate(bits), c.width)
}

func (c *CRC) Verify(bits []bool) ([]bool, bool) {
	payload, received, ok := splitTrailer(bits, c.width)
	if !ok {
		return payload, true
	}
	return payload, received != c.Calculate(payload)
}
