package framing

import "Linksim/pkg/bitconv"

const (
	lengthFieldBits = 16
	maxLengthField  = 1<<lengthFieldBits - 1
)

// ByteCount prefixes the payload with a 16-bit big-endian length field
// holding the payload size in bits.
type ByteCount struct {
	MaxBits int
}

func (f ByteCount) Frame(payload []bool) ([]bool, error) {
	if err := checkSize(payload, f.MaxBits); err != nil {
		return nil, err
	}
	if len(payload) > maxLengthField {
		return nil, &FrameTooLargeError{Size: len(payload), Max: maxLengthField}
	}

	frame := make([]bool, 0, lengthFieldBits+len(payload))
	frame = append(frame, bitconv.UintToBits(uint64(len(payload)), lengthFieldBits)...)
	frame = append(frame, payload...)
	return frame, nil
}

// Unframe slices out the number of bits announced by the header. A frame
// shorter than announced is truncated silently.
func (f ByteCount) Unframe(frame []bool) []bool {
	if len(frame) < lengthFieldBits {
		return []bool{}
	}
	size := int(bitconv.BitsToUint(frame[:lengthFieldBits]))
	end := min(lengthFieldBits+size, len(frame))

	payload := make([]bool, end-lengthFieldBits)
	copy(payload, frame[lengthFieldBits:end])
	return payload
}
