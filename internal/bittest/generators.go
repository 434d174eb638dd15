package bittest

import "pgregory.net/rapid"

// PrintableText generates printable ASCII strings for property tests.
func PrintableText() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		codes := rapid.SliceOfN(rapid.IntRange(32, 126), 0, 48).Draw(t, "codes")
		text := make([]byte, len(codes))
		for i, c := range codes {
			text[i] = byte(c)
		}
		return string(text)
	})
}

// RandomBits generates bit sequences of up to maxLen bits for property tests.
func RandomBits(maxLen int) *rapid.Generator[[]bool] {
	return rapid.SliceOfN(rapid.Bool(), 0, maxLen)
}
