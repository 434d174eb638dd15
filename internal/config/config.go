// Package config loads the link settings from YAML and builds the link
// components from them.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"Linksim/pkg/edc"
	"Linksim/pkg/framing"
	"Linksim/pkg/modem"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	PhysicalLayer struct {
		SampleRate       float64 `yaml:"sample_rate"`       // Hz
		BitRate          float64 `yaml:"bit_rate"`          // bps
		CarrierFrequency float64 `yaml:"carrier_frequency"` // Hz
		Amplitude        float64 `yaml:"amplitude"`         // V
		Modulation       string  `yaml:"modulation"`
	} `yaml:"physical_layer"`

	DataLinkLayer struct {
		Framing      string `yaml:"framing"`
		MaxFrameSize int    `yaml:"max_frame_size"` // bytes

		ErrorDetection struct {
			Kind       string `yaml:"kind"`
			Width      int    `yaml:"width"`
			Polynomial uint64 `yaml:"polynomial"` // 0 selects the default for width
		} `yaml:"error_detection"`

		Hamming struct {
			Enabled   bool `yaml:"enabled"`
			BlockSize int  `yaml:"block_size"` // data bits per codeword
		} `yaml:"hamming"`
	} `yaml:"data_link_layer"`

	Channel struct {
		NoiseMean float64 `yaml:"noise_mean"`
		NoiseStd  float64 `yaml:"noise_std"`
		Seed      uint64  `yaml:"seed"` // 0 seeds from the clock
	} `yaml:"channel"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Default() *Config {
	var c Config

	c.PhysicalLayer.SampleRate = 1000
	c.PhysicalLayer.BitRate = 10
	c.PhysicalLayer.CarrierFrequency = 100
	c.PhysicalLayer.Amplitude = 5
	c.PhysicalLayer.Modulation = string(modem.SchemeNRZPolar)

	c.DataLinkLayer.Framing = framing.NameByteCount
	c.DataLinkLayer.MaxFrameSize = 256
	c.DataLinkLayer.ErrorDetection.Kind = edc.KindCRC
	c.DataLinkLayer.ErrorDetection.Width = 32
	c.DataLinkLayer.Hamming.Enabled = true
	c.DataLinkLayer.Hamming.BlockSize = 4

	c.Channel.NoiseStd = 0.5
	c.Channel.Seed = 1

	c.Log.Level = "info"
	return &c
}

// LoadConfig reads filename over the defaults and validates the result.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %v out of range [%v, %v]", name, v, lo, hi)
	}
	return nil
}

// Validate checks every setting against its allowed range. All problems
// are reported together.
func (c *Config) Validate() error {
	p := c.PhysicalLayer
	d := c.DataLinkLayer
	errs := []error{
		checkRange("sample_rate", p.SampleRate, 100, 10000),
		checkRange("bit_rate", p.BitRate, 1, 1000),
		checkRange("carrier_frequency", p.CarrierFrequency, 10, 1000),
		checkRange("max_frame_size", float64(d.MaxFrameSize), 64, 1024),
	}

	if p.BitRate > 0 && math.Mod(p.SampleRate, p.BitRate) != 0 {
		errs = append(errs, fmt.Errorf("sample_rate %v is not a multiple of bit_rate %v", p.SampleRate, p.BitRate))
	}
	if p.Amplitude <= 0 {
		errs = append(errs, fmt.Errorf("amplitude must be positive, got %v", p.Amplitude))
	}
	if _, err := CreateModulator(c); err != nil {
		errs = append(errs, err)
	}
	if _, err := framing.New(d.Framing, d.MaxFrameSize); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.newDetector(); err != nil {
		errs = append(errs, err)
	}
	if d.Hamming.Enabled && d.Hamming.BlockSize < 1 {
		errs = append(errs, fmt.Errorf("hamming block_size must be at least 1, got %d", d.Hamming.BlockSize))
	}
	if c.Channel.NoiseStd < 0 {
		errs = append(errs, fmt.Errorf("noise_std must not be negative, got %v", c.Channel.NoiseStd))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}
