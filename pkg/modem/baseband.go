package modem

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NRZPolar sends +Amplitude for 1 and -Amplitude for 0.
type NRZPolar struct {
	Params
}

func (m *NRZPolar) BitsPerSymbol() int { return 1 }

func (m *NRZPolar) Modulate(bits []bool) []float64 {
	spb := m.SamplesPerBit()
	signal := make([]float64, len(bits)*spb)
	for i, bit := range bits {
		level := -m.Amplitude
		if bit {
			level = m.Amplitude
		}
		fill(signal[i*spb:(i+1)*spb], level)
	}
	return signal
}

func (m *NRZPolar) Demodulate(signal []float64) []bool {
	spb := m.SamplesPerBit()
	w := windows(signal, spb)
	bits := make([]bool, len(w))
	for i, window := range w {
		bits[i] = floats.Sum(window)/float64(spb) > 0
	}
	return bits
}

// Manchester splits each bit in two halves: 1 is low then high, 0 is high
// then low.
type Manchester struct {
	Params
}

func (m *Manchester) BitsPerSymbol() int { return 1 }

func (m *Manchester) Modulate(bits []bool) []float64 {
	spb := m.SamplesPerBit()
	half := spb / 2
	signal := make([]float64, len(bits)*spb)
	for i, bit := range bits {
		first, second := m.Amplitude, -m.Amplitude
		if bit {
			first, second = -m.Amplitude, m.Amplitude
		}
		window := signal[i*spb : (i+1)*spb]
		fill(window[:half], first)
		fill(window[half:], second)
	}
	return signal
}

func (m *Manchester) Demodulate(signal []float64) []bool {
	spb := m.SamplesPerBit()
	half := spb / 2
	w := windows(signal, spb)
	bits := make([]bool, len(w))
	for i, window := range w {
		first := floats.Sum(window[:half]) / float64(half)
		second := floats.Sum(window[half:]) / float64(spb-half)
		bits[i] = first < second
	}
	return bits
}

// Bipolar is alternate mark inversion: 0 is silence, successive 1s
// alternate between +Amplitude and -Amplitude starting positive. The sign
// state lives only for the duration of one Modulate call.
type Bipolar struct {
	Params
}

func (m *Bipolar) BitsPerSymbol() int { return 1 }

func (m *Bipolar) Modulate(bits []bool) []float64 {
	spb := m.SamplesPerBit()
	signal := make([]float64, len(bits)*spb)
	level := m.Amplitude
	for i, bit := range bits {
		if !bit {
			continue
		}
		fill(signal[i*spb:(i+1)*spb], level)
		level = -level
	}
	return signal
}

// Demodulate ignores polarity, so AMI violations go unnoticed.
func (m *Bipolar) Demodulate(signal []float64) []bool {
	spb := m.SamplesPerBit()
	threshold := m.Amplitude / 2
	w := windows(signal, spb)
	bits := make([]bool, len(w))
	for i, window := range w {
		var sum float64
		for _, v := range window {
			sum += math.Abs(v)
		}
		bits[i] = sum/float64(spb) > threshold
	}
	return bits
}
