package modem

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// QPSK carries two bits per window as the phase of
// Amplitude * cos(2*pi*f*t + phase), Gray coded. An odd trailing bit is
// dropped.
type QPSK struct {
	Params
}

var qpskPhases = map[[2]bool]float64{
	{true, true}:   math.Pi / 4,
	{true, false}:  3 * math.Pi / 4,
	{false, false}: 5 * math.Pi / 4,
	{false, true}:  7 * math.Pi / 4,
}

func (m *QPSK) BitsPerSymbol() int { return 2 }

func (m *QPSK) Modulate(bits []bool) []float64 {
	spb := m.SamplesPerBit()
	symbols := len(bits) / 2
	signal := make([]float64, symbols*spb)
	for i := 0; i < symbols; i++ {
		phase := qpskPhases[[2]bool{bits[2*i], bits[2*i+1]}]
		// sin(x + pi/2) = cos(x)
		copy(signal[i*spb:], m.carrier(m.CarrierFreq, phase+math.Pi/2))
	}
	return signal
}

func (m *QPSK) Demodulate(signal []float64) []bool {
	cos, negSin := m.unit()
	w := windows(signal, m.SamplesPerBit())
	bits := make([]bool, 0, 2*len(w))
	for _, window := range w {
		phase := math.Atan2(floats.Dot(window, negSin), floats.Dot(window, cos))
		bits = append(bits, qpskQuadrant(phase)...)
	}
	return bits
}

func qpskQuadrant(phase float64) []bool {
	switch {
	case phase > -math.Pi/2 && phase <= 0:
		return []bool{false, true}
	case phase > 0 && phase <= math.Pi/2:
		return []bool{true, true}
	case phase > math.Pi/2:
		return []bool{true, false}
	default:
		return []bool{false, false}
	}
}

// QAM16 carries four bits per window: the first pair sets the in-phase
// level, the second the quadrature level, each Gray coded onto
// {-3A, -A, +A, +3A}. Input is zero-padded to a multiple of four bits.
type QAM16 struct {
	Params
}

func (m *QAM16) BitsPerSymbol() int { return 4 }

func (m *QAM16) level(hi, lo bool) float64 {
	switch {
	case hi && !lo:
		return -3 * m.Amplitude
	case hi && lo:
		return -m.Amplitude
	case !hi && lo:
		return m.Amplitude
	default:
		return 3 * m.Amplitude
	}
}

func (m *QAM16) decide(v float64) []bool {
	switch {
	case v > 2*m.Amplitude:
		return []bool{false, false}
	case v > 0:
		return []bool{false, true}
	case v > -2*m.Amplitude:
		return []bool{true, true}
	default:
		return []bool{true, false}
	}
}

func (m *QAM16) Modulate(bits []bool) []float64 {
	padded := make([]bool, (len(bits)+3)/4*4)
	copy(padded, bits)

	spb := m.SamplesPerBit()
	cos, negSin := m.unit()
	symbols := len(padded) / 4
	signal := make([]float64, symbols*spb)
	for i := 0; i < symbols; i++ {
		b := padded[4*i : 4*i+4]
		in, quad := m.level(b[0], b[1]), m.level(b[2], b[3])
		window := signal[i*spb : (i+1)*spb]
		floats.AddScaledTo(window, window, in, cos)
		floats.AddScaledTo(window, window, quad, negSin)
	}
	return signal
}

func (m *QAM16) Demodulate(signal []float64) []bool {
	cos, negSin := m.unit()
	cosEnergy, sinEnergy := floats.Dot(cos, cos), floats.Dot(negSin, negSin)
	w := windows(signal, m.SamplesPerBit())
	bits := make([]bool, 0, 4*len(w))
	for _, window := range w {
		bits = append(bits, m.decide(floats.Dot(window, cos)/cosEnergy)...)
		bits = append(bits, m.decide(floats.Dot(window, negSin)/sinEnergy)...)
	}
	return bits
}
