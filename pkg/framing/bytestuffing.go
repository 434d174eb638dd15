package framing

import "Linksim/pkg/bitconv"

// ByteStuffing wraps the payload with FLAG bytes and escapes every
// byte-aligned FLAG or ESC inside it as ESC, byte^0x20. Trailing bits that
// do not fill a byte are carried through unescaped.
type ByteStuffing struct {
	MaxBits int
}

func (f ByteStuffing) Frame(payload []bool) ([]bool, error) {
	if err := checkSize(payload, f.MaxBits); err != nil {
		return nil, err
	}

	body := make([]bool, 0, len(payload)+len(payload)/4)
	i := 0
	for ; i+8 <= len(payload); i += 8 {
		chunk := payload[i : i+8]
		b := byte(bitconv.BitsToUint(chunk))
		if b == FlagByte || b == EscByte {
			body = append(body, bitconv.UintToBits(EscByte, 8)...)
			body = append(body, bitconv.UintToBits(uint64(b^EscMask), 8)...)
		} else {
			body = append(body, chunk...)
		}
	}
	body = append(body, payload[i:]...)

	return wrapWithFlags(body), nil
}

// Unframe reverses the escaping. An ESC with no complete byte after it ends
// the payload.
func (f ByteStuffing) Unframe(frame []bool) []bool {
	body, ok := stripFlags(frame)
	if !ok {
		return []bool{}
	}

	payload := make([]bool, 0, len(body))
	i := 0
	for ; i+8 <= len(body); i += 8 {
		chunk := body[i : i+8]
		if byte(bitconv.BitsToUint(chunk)) != EscByte {
			payload = append(payload, chunk...)
			continue
		}
		if i+16 > len(body) {
			return payload
		}
		escaped := byte(bitconv.BitsToUint(body[i+8:i+16])) ^ EscMask
		payload = append(payload, bitconv.UintToBits(uint64(escaped), 8)...)
		i += 8
	}
	return append(payload, body[i:]...)
}
