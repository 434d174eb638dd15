package layers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts link activity. A nil *Metrics records nothing.
type Metrics struct {
	framesSent      prometheus.Counter
	framesRejected  prometheus.Counter
	samplesSent     prometheus.Counter
	framesReceived  prometheus.Counter
	errorsDetected  prometheus.Counter
	blocksCorrected prometheus.Counter
}

// NewMetrics registers the link counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "linksim_frames_sent_total",
			Help: "Frames modulated by the transmitter",
		}),
		framesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "linksim_frames_rejected_total",
			Help: "Messages refused because the frame exceeded the maximum size",
		}),
		samplesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "linksim_samples_sent_total",
			Help: "Signal samples produced by the transmitter",
		}),
		framesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "linksim_frames_received_total",
			Help: "Signals processed by the receiver",
		}),
		errorsDetected: factory.NewCounter(prometheus.CounterOpts{
			Name: "linksim_errors_detected_total",
			Help: "Received frames whose error detection code did not match",
		}),
		blocksCorrected: factory.NewCounter(prometheus.CounterOpts{
			Name: "linksim_hamming_blocks_corrected_total",
			Help: "Hamming codewords in which a bit was corrected",
		}),
	}
}

func (m *Metrics) sent(samples int) {
	if m == nil {
		return
	}
	m.framesSent.Inc()
	m.samplesSent.Add(float64(samples))
}

func (m *Metrics) rejected() {
	if m == nil {
		return
	}
	m.framesRejected.Inc()
}

func (m *Metrics) received(s Status) {
	if m == nil {
		return
	}
	m.framesReceived.Inc()
	if s.ErrorDetected {
		m.errorsDetected.Inc()
	}
	m.blocksCorrected.Add(float64(s.ErrorsCorrected))
}
