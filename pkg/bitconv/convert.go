package bitconv

// Printable ASCII range kept by BitsToText.
const (
	minPrintable = 32
	maxPrintable = 126
)

// Convert text to bits, 8 bits per character, most significant bit first.
// Characters above 255 are truncated to their low byte.
func TextToBits(text string) []bool {
	bits := make([]bool, 0, len(text)*8)
	for _, r := range text {
		bits = appendByte(bits, byte(r))
	}
	return bits
}

// Convert bits to text. Trailing bits that do not fill a byte are dropped
// and bytes outside the printable ASCII range are silently skipped.
func BitsToText(bits []bool) string {
	text := make([]byte, 0, len(bits)/8)
	for _, b := range BitsToBytes(bits) {
		if b >= minPrintable && b <= maxPrintable {
			text = append(text, b)
		}
	}
	return string(text)
}

// Convert bits to bytes, dropping trailing bits that do not fill a byte.
func BitsToBytes(bits []bool) []byte {
	output := make([]byte, len(bits)/8)
	for i := range output {
		output[i] = packByte(bits[i*8 : i*8+8])
	}
	return output
}

// Convert bytes to bits, 8 bits per byte, most significant bit first.
func BytesToBits(input []byte) []bool {
	bits := make([]bool, 0, len(input)*8)
	for _, b := range input {
		bits = appendByte(bits, b)
	}
	return bits
}

// Convert an unsigned integer to a width-bit big-endian bit field.
func UintToBits(v uint64, width int) []bool {
	bits := make([]bool, width)
	for i := 0; i < width; i++ {
		bits[i] = (v>>(width-1-i))&1 == 1
	}
	return bits
}

// Convert a big-endian bit field back to an unsigned integer.
func BitsToUint(bits []bool) uint64 {
	var v uint64
	for _, bit := range bits {
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v
}

func appendByte(bits []bool, b byte) []bool {
	for i := 7; i >= 0; i-- {
		bits = append(bits, (b>>i)&1 == 1)
	}
	return bits
}

func packByte(bits []bool) byte {
	var b byte
	for j, bit := range bits {
		if bit {
			b |= 1 << (7 - j)
		}
	}
	return b
}
