package config

import (
	"io"
	"time"

	"Linksim/pkg/channel"
	"Linksim/pkg/edc"
	"Linksim/pkg/framing"
	"Linksim/pkg/hamming"
	"Linksim/pkg/layers"
	"Linksim/pkg/modem"

	"github.com/charmbracelet/log"
)

func (c *Config) Params() modem.Params {
	return modem.Params{
		SampleRate:  c.PhysicalLayer.SampleRate,
		BitRate:     c.PhysicalLayer.BitRate,
		CarrierFreq: c.PhysicalLayer.CarrierFrequency,
		Amplitude:   c.PhysicalLayer.Amplitude,
	}
}

func CreateModulator(config *Config) (modem.Modulator, error) {
	scheme, err := modem.ParseScheme(config.PhysicalLayer.Modulation)
	if err != nil {
		return nil, err
	}
	return modem.New(scheme, config.Params())
}

func CreateFramer(config *Config) (framing.Framer, error) {
	return framing.New(config.DataLinkLayer.Framing, config.DataLinkLayer.MaxFrameSize)
}

func (c *Config) newDetector() (edc.Detector, error) {
	ed := c.DataLinkLayer.ErrorDetection
	return edc.New(ed.Kind, ed.Width, ed.Polynomial)
}

func CreateDetector(config *Config) (edc.Detector, error) {
	return config.newDetector()
}

// CreateHamming returns nil when error correction is disabled.
func CreateHamming(config *Config) (*hamming.Codec, error) {
	h := config.DataLinkLayer.Hamming
	if !h.Enabled {
		return nil, nil
	}
	return hamming.New(h.BlockSize)
}

func CreateChannel(config *Config) *channel.AWGN {
	seed := config.Channel.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return channel.NewAWGN(config.Channel.NoiseMean, config.Channel.NoiseStd, seed)
}

func CreateLogger(config *Config, w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(config.Log.Level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}

func withPrefix(logger *log.Logger, prefix string) *log.Logger {
	if logger == nil {
		return nil
	}
	return logger.WithPrefix(prefix)
}

type codecs struct {
	modulator modem.Modulator
	framer    framing.Framer
	detector  edc.Detector
	hamming   *hamming.Codec
}

func createCodecs(config *Config) (codecs, error) {
	var c codecs
	var err error
	if c.modulator, err = CreateModulator(config); err != nil {
		return c, err
	}
	if c.framer, err = CreateFramer(config); err != nil {
		return c, err
	}
	if c.detector, err = CreateDetector(config); err != nil {
		return c, err
	}
	if c.hamming, err = CreateHamming(config); err != nil {
		return c, err
	}
	return c, nil
}

func CreateTransmitter(config *Config, logger *log.Logger, metrics *layers.Metrics) (*layers.Transmitter, error) {
	c, err := createCodecs(config)
	if err != nil {
		return nil, err
	}
	return &layers.Transmitter{
		Modulator: c.modulator,
		Framer:    c.framer,
		Detector:  c.detector,
		Hamming:   c.hamming,
		Logger:    withPrefix(logger, "tx"),
		Metrics:   metrics,
	}, nil
}

func CreateReceiver(config *Config, logger *log.Logger, metrics *layers.Metrics) (*layers.Receiver, error) {
	c, err := createCodecs(config)
	if err != nil {
		return nil, err
	}
	return &layers.Receiver{
		Modulator: c.modulator,
		Framer:    c.framer,
		Detector:  c.detector,
		Hamming:   c.hamming,
		Logger:    withPrefix(logger, "rx"),
		Metrics:   metrics,
	}, nil
}

// CreateLink builds a matching transmitter and receiver joined by an AWGN
// channel.
func CreateLink(config *Config, logger *log.Logger, metrics *layers.Metrics) (*layers.Link, error) {
	tx, err := CreateTransmitter(config, logger, metrics)
	if err != nil {
		return nil, err
	}
	rx, err := CreateReceiver(config, logger, metrics)
	if err != nil {
		return nil, err
	}
	return &layers.Link{
		Transmitter: tx,
		Channel:     CreateChannel(config),
		Receiver:    rx,
	}, nil
}
