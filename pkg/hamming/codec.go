// Package hamming implements a generalised single-error-correcting Hamming
// code. Parity bits sit at the power-of-two positions of a 1-indexed
// codeword, data bits fill the remaining positions in order.
package hamming

import (
	"fmt"

	"Linksim/pkg/bitconv"
)

const DefaultDataBits = 4

// ParityBitCount returns the smallest r with 2^r >= m + r + 1.
func ParityBitCount(m int) int {
	r := 0
	for 1<<r < m+r+1 {
		r++
	}
	return r
}

// CodewordLength returns m plus its parity bit count.
func CodewordLength(m int) int {
	return m + ParityBitCount(m)
}

func isPowerOfTwo(p int) bool {
	return p&(p-1) == 0
}

// Encode builds the codeword for data. The codeword length follows from
// len(data).
func Encode(data []bool) []bool {
	n := CodewordLength(len(data))
	code := make([]bool, n+1) // 1-indexed, code[0] unused

	d := 0
	for pos := 1; pos <= n; pos++ {
		if !isPowerOfTwo(pos) {
			code[pos] = data[d]
			d++
		}
	}
	for p := 1; p <= n; p <<= 1 {
		code[p] = coverage(code, p)
	}
	return code[1:]
}

// Decode corrects at most one flipped bit and extracts the data bits. A
// nonzero syndrome is the 1-indexed position that was flipped back; with two
// or more errors in the block the correction lands on the wrong bit and
// nothing tells the caller.
func Decode(codeword []bool) (data []bool, syndrome int) {
	n := len(codeword)
	code := make([]bool, n+1)
	copy(code[1:], codeword)

	for p := 1; p <= n; p <<= 1 {
		if coverage(code, p) {
			syndrome += p
		}
	}
	if syndrome != 0 && syndrome <= n {
		code[syndrome] = !code[syndrome]
	}

	data = make([]bool, 0, n)
	for pos := 1; pos <= n; pos++ {
		if !isPowerOfTwo(pos) {
			data = append(data, code[pos])
		}
	}
	return data, syndrome
}

// coverage is the XOR of every position j with j&p != 0. When computing a
// parity bit its own slot still holds false, so the result is the parity
// value; on a received word it is the syndrome bit for p.
func coverage(code []bool, p int) bool {
	v := false
	for j := p; j < len(code); j++ {
		if j&p != 0 {
			v = v != code[j]
		}
	}
	return v
}

// Codec applies Encode and Decode block-wise over byte streams.
type Codec struct {
	DataBits int
}

func New(dataBits int) (*Codec, error) {
	if dataBits < 1 {
		return nil, fmt.Errorf("hamming block needs at least one data bit, got %d", dataBits)
	}
	return &Codec{DataBits: dataBits}, nil
}

func (c *Codec) dataBits() int {
	if c.DataBits <= 0 {
		return DefaultDataBits
	}
	return c.DataBits
}

// BlockSize is the codeword length in bits.
func (c *Codec) BlockSize() int {
	return CodewordLength(c.dataBits())
}

// AddToBytes encodes data block by block, zero-padding the final block.
func (c *Codec) AddToBytes(data []byte) []bool {
	m := c.dataBits()
	bits := bitconv.BytesToBits(data)
	blocks := (len(bits) + m - 1) / m

	out := make([]bool, 0, blocks*c.BlockSize())
	block := make([]bool, m)
	for i := 0; i < blocks; i++ {
		clear(block)
		copy(block, bits[i*m:min((i+1)*m, len(bits))])
		out = append(out, Encode(block)...)
	}
	return out
}

// VerifyToBytes decodes every complete codeword in coded and reports how
// many blocks needed a correction. Data bits are regrouped into bytes, a
// trailing partial byte is dropped.
func (c *Codec) VerifyToBytes(coded []bool) (data []byte, corrected int) {
	n := c.BlockSize()
	blocks := len(coded) / n

	bits := make([]bool, 0, blocks*c.dataBits())
	for i := 0; i < blocks; i++ {
		d, syndrome := Decode(coded[i*n : (i+1)*n])
		if syndrome != 0 {
			corrected++
		}
		bits = append(bits, d...)
	}
	return bitconv.BitsToBytes(bits), corrected
}
