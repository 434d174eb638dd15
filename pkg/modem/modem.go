// Package modem maps bit sequences to sampled signals and back.
//
// Every modulator works on fixed windows of SamplesPerBit samples, one
// window per bit (baseband, ASK, FSK) or per symbol (QPSK, QAM16).
// Demodulators decode complete windows only; a trailing partial window is
// ignored.
package modem

import (
	"fmt"
	"math"
	"strings"
)

type Modulator interface {
	Modulate(bits []bool) []float64
	Demodulate(signal []float64) []bool
	// BitsPerSymbol is the number of bits carried by one window.
	BitsPerSymbol() int
}

// Params are the physical layer settings shared by all schemes.
type Params struct {
	SampleRate  float64 // Hz
	BitRate     float64 // windows per second
	CarrierFreq float64 // Hz, carrier schemes only
	Amplitude   float64 // V
}

func (p Params) SamplesPerBit() int {
	return int(p.SampleRate / p.BitRate)
}

func (p Params) check() error {
	if p.SampleRate <= 0 || p.BitRate <= 0 {
		return fmt.Errorf("sample rate and bit rate must be positive, got %v and %v", p.SampleRate, p.BitRate)
	}
	if p.SamplesPerBit() < 1 {
		return fmt.Errorf("bit rate %v exceeds sample rate %v", p.BitRate, p.SampleRate)
	}
	if math.IsNaN(p.Amplitude) || p.Amplitude <= 0 {
		return fmt.Errorf("amplitude must be positive, got %v", p.Amplitude)
	}
	return nil
}

type Scheme string

const (
	SchemeNRZPolar   Scheme = "nrz-polar"
	SchemeManchester Scheme = "manchester"
	SchemeBipolar    Scheme = "bipolar"
	SchemeASK        Scheme = "ask"
	SchemeFSK        Scheme = "fsk"
	SchemeQPSK       Scheme = "qpsk"
	SchemeQAM16      Scheme = "qam16"
)

var Schemes = []Scheme{
	SchemeNRZPolar, SchemeManchester, SchemeBipolar,
	SchemeASK, SchemeFSK, SchemeQPSK, SchemeQAM16,
}

// ParseScheme accepts scheme names case-insensitively, with '_' or ' '
// in place of '-'.
func ParseScheme(name string) (Scheme, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(name)))
	switch normalized {
	case "nrz", "nrzpolar", "nrz-polar":
		return SchemeNRZPolar, nil
	case "ami", "bipolar", "bipolar-ami":
		return SchemeBipolar, nil
	case "16qam", "16-qam", "qam-16", "qam16":
		return SchemeQAM16, nil
	}
	for _, s := range Schemes {
		if string(s) == normalized {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown modulation %q", name)
}

// New builds the modulator for scheme.
func New(scheme Scheme, p Params) (Modulator, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	switch scheme {
	case SchemeNRZPolar:
		return &NRZPolar{Params: p}, nil
	case SchemeManchester:
		if p.SamplesPerBit() < 2 {
			return nil, fmt.Errorf("manchester needs at least 2 samples per bit, got %d", p.SamplesPerBit())
		}
		return &Manchester{Params: p}, nil
	case SchemeBipolar:
		return &Bipolar{Params: p}, nil
	}

	if p.CarrierFreq <= 0 {
		return nil, fmt.Errorf("carrier frequency must be positive, got %v", p.CarrierFreq)
	}
	switch scheme {
	case SchemeASK:
		return &ASK{Params: p}, nil
	case SchemeFSK:
		return &FSK{Params: p}, nil
	case SchemeQPSK:
		return &QPSK{Params: p}, nil
	case SchemeQAM16:
		return &QAM16{Params: p}, nil
	}
	return nil, fmt.Errorf("unknown modulation %q", scheme)
}

// windows splits signal into complete windows of size samples.
func windows(signal []float64, size int) [][]float64 {
	n := len(signal) / size
	out := make([][]float64, n)
	for i := range out {
		out[i] = signal[i*size : (i+1)*size]
	}
	return out
}

func fill(out []float64, v float64) {
	for i := range out {
		out[i] = v
	}
}
