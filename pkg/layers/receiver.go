package layers

import (
	"sync"

	"Linksim/pkg/bitconv"
	"Linksim/pkg/edc"
	"Linksim/pkg/framing"
	"Linksim/pkg/hamming"
	"Linksim/pkg/modem"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Status describes the most recent reception.
type Status struct {
	ErrorDetected   bool
	ErrorsCorrected int // Hamming blocks with a nonzero syndrome
}

// Receiver mirrors a Transmitter. It must be built from the same component
// variants.
type Receiver struct {
	Modulator modem.Modulator
	Framer    framing.Framer
	Detector  edc.Detector
	Hamming   *hamming.Codec

	Logger  *log.Logger
	Metrics *Metrics

	history

	mu     sync.Mutex
	status Status
}

// Receive always runs every stage. Corruption is reported through Status,
// the text comes back best effort.
func (r *Receiver) Receive(samples []float64) string {
	id := uuid.New()
	logger := loggerOrDiscard(r.Logger).With("id", id)

	bits := r.Modulator.Demodulate(samples)
	r.record(id, "demodulated %d samples to %d bits", len(samples), len(bits))
	logger.Debug("demodulated", "stage", "demodulate", "samples", len(samples), "bits", len(bits))

	bits = r.Framer.Unframe(bits)
	r.record(id, "unframed %d bits", len(bits))
	logger.Debug("unframed", "stage", "frame", "bits", len(bits))

	bits, hasError := r.Detector.Verify(bits)
	if hasError {
		r.record(id, "error detected")
		logger.Warn("error detection code mismatch", "stage", "edc", "bits", len(bits))
	} else {
		r.record(id, "error detection passed")
	}

	corrected := 0
	if r.Hamming != nil {
		var data []byte
		data, corrected = r.Hamming.VerifyToBytes(bits)
		bits = bitconv.BytesToBits(data)
		r.record(id, "hamming corrected %d blocks", corrected)
		if corrected > 0 {
			logger.Warn("hamming corrected blocks", "stage", "hamming", "corrected", corrected)
		}
	}

	text := bitconv.BitsToText(bits)
	r.record(id, "received text %q", text)
	logger.Debug("converted bits", "stage", "bits", "text", text)

	status := Status{ErrorDetected: hasError, ErrorsCorrected: corrected}
	r.mu.Lock()
	r.status = status
	r.mu.Unlock()
	r.Metrics.received(status)

	return text
}

func (r *Receiver) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}
