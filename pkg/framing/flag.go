package framing

import "Linksim/pkg/bitconv"

const (
	FlagByte = 0x7e // 01111110
	EscByte  = 0x7d // 01111101
	EscMask  = 0x20 // 00100000

	flagBits = 8
)

var flagPattern = bitconv.UintToBits(FlagByte, flagBits)

func wrapWithFlags(body []bool) []bool {
	frame := make([]bool, 0, len(body)+2*flagBits)
	frame = append(frame, flagPattern...)
	frame = append(frame, body...)
	frame = append(frame, flagPattern...)
	return frame
}

// stripFlags returns the bits between the opening flag and the closing
// flag. The closing flag is the last occurrence of the flag pattern: its
// six ones cannot reappear in the zero padding a modulator may append, so
// this finds the real end of the frame. If no flag follows the opening one
// the last 8 bits are dropped. ok is false when the frame is too short to
// carry any payload.
func stripFlags(frame []bool) (body []bool, ok bool) {
	if len(frame) <= 2*flagBits {
		return nil, false
	}
	end := lastFlag(frame)
	if end < flagBits {
		end = len(frame) - flagBits
	}
	return frame[flagBits:end], true
}

func lastFlag(frame []bool) int {
	for i := len(frame) - flagBits; i >= flagBits; i-- {
		if matchFlag(frame[i : i+flagBits]) {
			return i
		}
	}
	return -1
}

func matchFlag(chunk []bool) bool {
	for i := range flagPattern {
		if chunk[i] != flagPattern[i] {
			return false
		}
	}
	return true
}
