package sim

import (
	"strings"
	"testing"

	"Linksim/pkg/channel"
	"Linksim/pkg/edc"
	"Linksim/pkg/framing"
	"Linksim/pkg/hamming"
	"Linksim/pkg/layers"
	"Linksim/pkg/modem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NRZ-Polar + byte count + CRC-32 + Hamming(7,4)
func newLink(t *testing.T, samplesPerBit int, ch channel.Channel) *layers.Link {
	t.Helper()
	m, err := modem.New(modem.SchemeNRZPolar, modem.Params{
		SampleRate: float64(1000 * samplesPerBit),
		BitRate:    1000,
		Amplitude:  5,
	})
	require.NoError(t, err)
	crc, err := edc.NewCRC(32)
	require.NoError(t, err)
	f := framing.ByteCount{MaxBits: framing.MaxBits(256)}
	h := &hamming.Codec{DataBits: 4}

	return &layers.Link{
		Transmitter: &layers.Transmitter{Modulator: m, Framer: f, Detector: crc, Hamming: h},
		Channel:     ch,
		Receiver:    &layers.Receiver{Modulator: m, Framer: f, Detector: crc, Hamming: h},
	}
}

func TestCleanChannel(t *testing.T) {
	report, err := Run(newLink(t, 100, channel.NewAWGN(0, 0, 1)), "Hi", 10)
	require.NoError(t, err)

	assert.Equal(t, 10, report.Delivered)
	assert.Equal(t, 1.0, report.DeliveryRate())
	assert.Zero(t, report.Detected)
	assert.Zero(t, report.Undetected)
	assert.Zero(t, report.CorrectedMean)
	assert.Zero(t, report.CorrectedStd)
	assert.Zero(t, report.CharErrorRate)
}

// With one sample per bit nothing averages the noise out: sigma = 3 against
// an amplitude of 5 flips about 5% of the bits.
func TestHeavyNoiseIsNoticed(t *testing.T) {
	report, err := Run(newLink(t, 1, channel.NewAWGN(0, 3, 2024)), "Hi", 200)
	require.NoError(t, err)

	noticed := report.Detected + (report.Trials - report.Delivered)
	assert.Greater(t, float64(noticed)/float64(report.Trials), 0.8, report.String())
	assert.Greater(t, report.CorrectedMean, 0.0)
	assert.Greater(t, report.CharErrorRate, 0.0)
}

func TestRejectedMessage(t *testing.T) {
	_, err := Run(newLink(t, 1, nil), strings.Repeat("x", 1000), 3)
	assert.ErrorIs(t, err, framing.ErrFrameTooLarge)

	_, err = Run(newLink(t, 1, nil), "Hi", 0)
	assert.Error(t, err)
}

func TestSingleTrial(t *testing.T) {
	report, err := Run(newLink(t, 10, nil), "ok", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Delivered)
	assert.Zero(t, report.CorrectedStd)
}

func TestCharErrors(t *testing.T) {
	assert.Equal(t, 0, CharErrors("Hi", "Hi"))
	assert.Equal(t, 1, CharErrors("Hi", "Ha"))
	assert.Equal(t, 2, CharErrors("Hello", "Hel"))
	assert.Equal(t, 3, CharErrors("", "abc"))
}

func TestReportString(t *testing.T) {
	r := Report{Trials: 4, Delivered: 3, Detected: 1}
	assert.Equal(t, 0.75, r.DeliveryRate())
	assert.Contains(t, r.String(), "delivered=75.0%")
	assert.Contains(t, r.String(), "detected=25.0%")
}
