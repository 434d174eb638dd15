// Package channel carries sampled signals from a transmitter to a receiver.
package channel

import (
	"sync"

	"golang.org/x/exp/rand"
)

type Channel interface {
	Transmit(samples []float64) []float64
}

// Loopback delivers a copy of the signal untouched.
type Loopback struct{}

func (Loopback) Transmit(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	return out
}

// AWGN adds independent Gaussian noise N(mean, stddev) to every sample.
// The noise parameters may be changed while other goroutines transmit.
type AWGN struct {
	mu     sync.Mutex
	mean   float64
	stddev float64
	rng    *rand.Rand
}

// NewAWGN seeds the noise source with seed; runs with the same seed and
// parameters produce the same noise.
func NewAWGN(mean, stddev float64, seed uint64) *AWGN {
	return &AWGN{
		mean:   mean,
		stddev: stddev,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (c *AWGN) Transmit(samples []float64) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s + c.mean + c.stddev*c.rng.NormFloat64()
	}
	return out
}

func (c *AWGN) SetMean(mean float64) {
	c.mu.Lock()
	c.mean = mean
	c.mu.Unlock()
}

func (c *AWGN) SetStdDev(stddev float64) {
	c.mu.Lock()
	c.stddev = stddev
	c.mu.Unlock()
}

// Noise returns the current mean and standard deviation.
func (c *AWGN) Noise() (mean, stddev float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mean, c.stddev
}
