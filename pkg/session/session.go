// Package session runs a link on its own goroutine so callers such as a
// user interface never block on a transmission.
package session

import (
	"errors"
	"io"
	"sync"
	"time"

	"Linksim/pkg/layers"

	"github.com/charmbracelet/log"
)

var (
	ErrClosed  = errors.New("session closed")
	ErrNoNoise = errors.New("channel has no adjustable noise")
)

const DefaultQueueSize = 16

type Result struct {
	layers.Result
	Err     error
	Elapsed time.Duration
}

type request struct {
	text  string
	reply chan<- Result
}

// NoiseSetter is implemented by channels whose noise can change between
// messages.
type NoiseSetter interface {
	SetMean(mean float64)
	SetStdDev(stddev float64)
}

// Session owns a link. Messages are processed one at a time in submission
// order.
type Session struct {
	link   *layers.Link
	logger *log.Logger

	mu       sync.RWMutex
	closed   bool
	requests chan request
	done     chan struct{}
}

// New starts the worker. A nil logger discards log output.
func New(link *layers.Link, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		link:     link,
		logger:   logger,
		requests: make(chan request, DefaultQueueSize),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Session) run() {
	defer close(s.done)
	for req := range s.requests {
		start := time.Now()
		result, err := s.link.Send(req.text)
		elapsed := time.Since(start)
		if err != nil {
			s.logger.Error("send failed", "err", err)
		} else {
			s.logger.Debug("message delivered", "samples", result.Samples, "elapsed", elapsed)
		}
		req.reply <- Result{Result: result, Err: err, Elapsed: elapsed}
	}
}

// Submit queues text and returns a channel that yields exactly one Result.
// It blocks only while the queue is full.
func (s *Session) Submit(text string) <-chan Result {
	reply := make(chan Result, 1)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		reply <- Result{Err: ErrClosed}
		return reply
	}
	s.requests <- request{text: text, reply: reply}
	return reply
}

// Send submits text and waits for its result.
func (s *Session) Send(text string) Result {
	return <-s.Submit(text)
}

// SetNoise changes the channel noise for the messages that follow.
func (s *Session) SetNoise(mean, stddev float64) error {
	ch, ok := s.link.Channel.(NoiseSetter)
	if !ok {
		return ErrNoNoise
	}
	ch.SetMean(mean)
	ch.SetStdDev(stddev)
	s.logger.Info("noise changed", "mean", mean, "stddev", stddev)
	return nil
}

// Close stops accepting messages, waits for the queued ones to finish and
// stops the worker. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.requests)
	s.mu.Unlock()
	<-s.done
}
