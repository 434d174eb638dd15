package main

import (
	"fmt"
	"os"

	"Linksim/internal/config"
	"Linksim/pkg/layers"
	"Linksim/pkg/session"
	"Linksim/pkg/sim"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

func main() {
	var configFile = pflag.StringP("config", "c", "", "YAML configuration file. Defaults are used when empty.")
	var message = pflag.StringP("message", "m", "Hello, World!", "Text to send.")
	var noise = pflag.Float64P("noise", "n", 0, "Noise standard deviation, overrides the configuration.")
	var trials = pflag.IntP("trials", "t", 1, "Number of times the message is sent.")
	var modulation = pflag.String("modulation", "", "nrz-polar, manchester, bipolar, ask, fsk, qpsk or qam16.")
	var framing = pflag.String("framing", "", "byte-count, bit-stuffing or byte-stuffing.")
	var detector = pflag.String("detector", "", "parity, checksum or crc.")
	var width = pflag.Int("width", 0, "Checksum or CRC width: 8, 16, 24 or 32.")
	var hamming = pflag.Bool("hamming", true, "Protect the message with a Hamming code.")
	var logLevel = pflag.String("log-level", "", "debug, info, warn or error.")
	var dumpConfig = pflag.Bool("dump-config", false, "Print the effective configuration and exit.")
	var showMetrics = pflag.Bool("metrics", false, "Print link counters after sending.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Simulate a digital communication link.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadConfig(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	changed := pflag.CommandLine.Changed
	if changed("noise") {
		cfg.Channel.NoiseStd = *noise
	}
	if *modulation != "" {
		cfg.PhysicalLayer.Modulation = *modulation
	}
	if *framing != "" {
		cfg.DataLinkLayer.Framing = *framing
	}
	if *detector != "" {
		cfg.DataLinkLayer.ErrorDetection.Kind = *detector
	}
	if *width != 0 {
		cfg.DataLinkLayer.ErrorDetection.Width = *width
		cfg.DataLinkLayer.ErrorDetection.Polynomial = 0
	}
	if changed("hamming") {
		cfg.DataLinkLayer.Hamming.Enabled = *hamming
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dumpConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	logger, err := config.CreateLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	link, err := config.CreateLink(cfg, logger, layers.NewMetrics(registry))
	if err != nil {
		logger.Fatal("cannot build link", "err", err)
	}

	if *trials > 1 {
		report, err := sim.Run(link, *message, *trials)
		if err != nil {
			logger.Fatal("simulation failed", "err", err)
		}
		fmt.Println(report)
	} else {
		s := session.New(link, logger)
		result := s.Send(*message)
		s.Close()
		if result.Err != nil {
			logger.Fatal("send failed", "err", result.Err)
		}
		fmt.Printf("sent:      %q\n", *message)
		fmt.Printf("received:  %q\n", result.Text)
		fmt.Printf("samples:   %d\n", result.Samples)
		fmt.Printf("detected:  %v\n", result.Status.ErrorDetected)
		fmt.Printf("corrected: %d\n", result.Status.ErrorsCorrected)
	}

	if *showMetrics {
		families, err := registry.Gather()
		if err != nil {
			logger.Fatal("cannot gather metrics", "err", err)
		}
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				fmt.Printf("%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			}
		}
	}
}
