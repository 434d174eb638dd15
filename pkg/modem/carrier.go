package modem

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CarrierConfig describes one window of a sinusoid. Every window restarts
// at t = 0, so the same reference serves all windows of a signal.
type CarrierConfig struct {
	Amplitude  float64
	Freq       float64
	Phase      float64
	SampleRate float64
	Size       int
}

// New samples Amplitude * sin(2*pi*Freq*t + Phase).
func (p CarrierConfig) New() []float64 {
	signal := make([]float64, p.Size)
	for i := 0; i < p.Size; i++ {
		t := float64(i) / p.SampleRate
		signal[i] = p.Amplitude * math.Sin(2*math.Pi*p.Freq*t+p.Phase)
	}
	return signal
}

func (p Params) carrier(freq, phase float64) []float64 {
	return CarrierConfig{
		Amplitude:  p.Amplitude,
		Freq:       freq,
		Phase:      phase,
		SampleRate: p.SampleRate,
		Size:       p.SamplesPerBit(),
	}.New()
}

// unit returns cos(2*pi*f*t) and -sin(2*pi*f*t) over one window.
func (p Params) unit() (cos, negSin []float64) {
	cos = CarrierConfig{Amplitude: 1, Freq: p.CarrierFreq, Phase: math.Pi / 2, SampleRate: p.SampleRate, Size: p.SamplesPerBit()}.New()
	negSin = CarrierConfig{Amplitude: -1, Freq: p.CarrierFreq, SampleRate: p.SampleRate, Size: p.SamplesPerBit()}.New()
	return cos, negSin
}

// ASK is on-off keying: 1 is Amplitude * sin(2*pi*f*t), 0 is silence.
type ASK struct {
	Params
}

func (m *ASK) BitsPerSymbol() int { return 1 }

func (m *ASK) Modulate(bits []bool) []float64 {
	spb := m.SamplesPerBit()
	mark := m.carrier(m.CarrierFreq, 0)
	signal := make([]float64, len(bits)*spb)
	for i, bit := range bits {
		if bit {
			copy(signal[i*spb:], mark)
		}
	}
	return signal
}

// Threshold is a quarter of the energy of a full-amplitude window.
func (m *ASK) Threshold() float64 {
	return 0.25 * m.Amplitude * m.Amplitude * float64(m.SamplesPerBit()) * 0.5
}

func (m *ASK) Demodulate(signal []float64) []bool {
	threshold := m.Threshold()
	w := windows(signal, m.SamplesPerBit())
	bits := make([]bool, len(w))
	for i, window := range w {
		bits[i] = floats.Dot(window, window) > threshold
	}
	return bits
}

// FSK sends 0 at the carrier frequency and 1 at twice the carrier
// frequency.
type FSK struct {
	Params
}

func (m *FSK) BitsPerSymbol() int { return 1 }

func (m *FSK) Modulate(bits []bool) []float64 {
	spb := m.SamplesPerBit()
	space := m.carrier(m.CarrierFreq, 0)
	mark := m.carrier(2*m.CarrierFreq, 0)
	signal := make([]float64, len(bits)*spb)
	for i, bit := range bits {
		tone := space
		if bit {
			tone = mark
		}
		copy(signal[i*spb:], tone)
	}
	return signal
}

func (m *FSK) Demodulate(signal []float64) []bool {
	space := m.carrier(m.CarrierFreq, 0)
	mark := m.carrier(2*m.CarrierFreq, 0)
	w := windows(signal, m.SamplesPerBit())
	bits := make([]bool, len(w))
	for i, window := range w {
		bits[i] = math.Abs(floats.Dot(window, mark)) > math.Abs(floats.Dot(window, space))
	}
	return bits
}
