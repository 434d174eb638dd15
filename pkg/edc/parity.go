package edc

const parityBlock = 8

// Parity appends one even-parity bit after every 8-bit block. Incomplete
// trailing blocks are dropped.
//
// A block with an even number of flipped bits still passes the check; only
// odd error counts are visible.
type Parity struct{}

func (Parity) Add(bits []bool) []bool {
	blocks := len(bits) / parityBlock
	out := make([]bool, 0, blocks*(parityBlock+1))
	for i := 0; i < blocks; i++ {
		block := bits[i*parityBlock : (i+1)*parityBlock]
		out = append(out, block...)
		out = append(out, parityOf(block))
	}
	return out
}

func (Parity) Verify(bits []bool) ([]bool, bool) {
	const size = parityBlock + 1
	blocks := len(bits) / size
	payload := make([]bool, 0, blocks*parityBlock)
	hasError := false
	for i := 0; i < blocks; i++ {
		block := bits[i*size : i*size+parityBlock]
		if parityOf(block) != bits[i*size+parityBlock] {
			hasError = true
		}
		payload = append(payload, block...)
	}
	return payload, hasError
}

func parityOf(block []bool) bool {
	p := false
	for _, bit := range block {
		p = p != bit
	}
	return p
}
