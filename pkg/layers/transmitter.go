// Package layers chains the link codecs into a transmitter and a receiver.
//
// TX: text -> bits -> Hamming -> error detection -> frame -> signal
// RX: signal -> bits -> unframe -> verify -> Hamming -> text
package layers

import (
	"errors"
	"fmt"

	"Linksim/pkg/bitconv"
	"Linksim/pkg/edc"
	"Linksim/pkg/framing"
	"Linksim/pkg/hamming"
	"Linksim/pkg/modem"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Transmitter struct {
	Modulator modem.Modulator
	Framer    framing.Framer
	Detector  edc.Detector
	Hamming   *hamming.Codec // nil disables error correction

	Logger  *log.Logger
	Metrics *Metrics

	history
}

// Transmit turns text into a signal. The only failure is a frame larger
// than the framer allows; it matches framing.ErrFrameTooLarge.
func (t *Transmitter) Transmit(text string) ([]float64, error) {
	id := uuid.New()
	logger := loggerOrDiscard(t.Logger).With("id", id)

	bits := bitconv.TextToBits(text)
	t.record(id, "text %q converted to %d bits", text, len(bits))
	logger.Debug("converted text", "stage", "bits", "bits", len(bits))

	if t.Hamming != nil {
		// whole octets, so byte-oriented detectors cover every coded bit
		bits = padTo(t.Hamming.AddToBytes(bitconv.BitsToBytes(bits)), 8)
		t.record(id, "hamming encoded to %d bits", len(bits))
		logger.Debug("hamming encoded", "stage", "hamming", "bits", len(bits))
	}

	bits = t.Detector.Add(bits)
	t.record(id, "error detection code added, %d bits", len(bits))
	logger.Debug("added error detection", "stage", "edc", "bits", len(bits))

	frame, err := t.Framer.Frame(bits)
	if err != nil {
		t.Metrics.rejected()
		t.record(id, "framing failed: %v", err)
		logger.Error("framing failed", "stage", "frame", "err", err)
		if errors.Is(err, framing.ErrFrameTooLarge) {
			return nil, fmt.Errorf("frame too large, try a shorter message: %w", err)
		}
		return nil, fmt.Errorf("framing: %w", err)
	}
	t.record(id, "framed to %d bits", len(frame))
	logger.Debug("framed", "stage", "frame", "bits", len(frame))

	frame = padTo(frame, t.Modulator.BitsPerSymbol())
	samples := t.Modulator.Modulate(frame)
	t.record(id, "modulated to %d samples", len(samples))
	logger.Debug("modulated", "stage", "modulate", "samples", len(samples))

	t.Metrics.sent(len(samples))
	return samples, nil
}

// padTo appends zero bits until len(bits) is a multiple of n.
func padTo(bits []bool, n int) []bool {
	if n <= 1 || len(bits)%n == 0 {
		return bits
	}
	return append(bits, make([]bool, n-len(bits)%n)...)
}
