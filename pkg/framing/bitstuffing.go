package framing

// Number of consecutive ones after which a zero is stuffed.
const stuffAfter = 5

// BitStuffing wraps the payload with 01111110 flags and inserts a 0 after
// every run of five 1s so the flag cannot appear inside the frame.
type BitStuffing struct {
	MaxBits int // checked before stuffing
}

func (f BitStuffing) Frame(payload []bool) ([]bool, error) {
	if err := checkSize(payload, f.MaxBits); err != nil {
		return nil, err
	}

	stuffed := make([]bool, 0, len(payload)+len(payload)/stuffAfter)
	ones := 0
	for _, bit := range payload {
		stuffed = append(stuffed, bit)
		if !bit {
			ones = 0
			continue
		}
		ones++
		if ones == stuffAfter {
			stuffed = append(stuffed, false)
			ones = 0
		}
	}
	return wrapWithFlags(stuffed), nil
}

func (f BitStuffing) Unframe(frame []bool) []bool {
	body, ok := stripFlags(frame)
	if !ok {
		return []bool{}
	}

	payload := make([]bool, 0, len(body))
	ones := 0
	for i := 0; i < len(body); i++ {
		bit := body[i]
		payload = append(payload, bit)
		if !bit {
			ones = 0
			continue
		}
		ones++
		if ones == stuffAfter {
			i++ // skip the stuffed zero
			ones = 0
		}
	}
	return payload
}
