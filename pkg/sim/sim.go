// Package sim sends the same message over a link many times and summarises
// how the link coped.
package sim

import (
	"errors"
	"fmt"

	"Linksim/pkg/layers"

	"gonum.org/v1/gonum/stat"
)

type Report struct {
	Trials    int
	Delivered int // text received intact
	Detected  int // error detection flagged the frame
	// Undetected counts corrupted texts that passed error detection.
	Undetected int

	CorrectedMean float64 // Hamming corrections per trial
	CorrectedStd  float64
	// CharErrorRate is the fraction of characters received wrong, counting
	// missing and extra characters as errors.
	CharErrorRate float64
}

func (r Report) DeliveryRate() float64 {
	return ratio(r.Delivered, r.Trials)
}

func (r Report) DetectionRate() float64 {
	return ratio(r.Detected, r.Trials)
}

func (r Report) String() string {
	return fmt.Sprintf("trials=%d delivered=%.1f%% detected=%.1f%% undetected=%d corrected=%.2f±%.2f cer=%.4f",
		r.Trials, 100*r.DeliveryRate(), 100*r.DetectionRate(), r.Undetected,
		r.CorrectedMean, r.CorrectedStd, r.CharErrorRate)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Run sends text over link trials times. It fails only when the message
// cannot be transmitted at all.
func Run(link *layers.Link, text string, trials int) (Report, error) {
	if trials < 1 {
		return Report{}, errors.New("at least one trial is required")
	}

	report := Report{Trials: trials}
	corrected := make([]float64, trials)
	charErrors := 0

	for i := 0; i < trials; i++ {
		result, err := link.Send(text)
		if err != nil {
			return Report{}, err
		}

		intact := result.Text == text
		if intact {
			report.Delivered++
		}
		if result.Status.ErrorDetected {
			report.Detected++
		} else if !intact {
			report.Undetected++
		}
		corrected[i] = float64(result.Status.ErrorsCorrected)
		charErrors += CharErrors(text, result.Text)
	}

	if trials > 1 {
		report.CorrectedMean, report.CorrectedStd = stat.MeanStdDev(corrected, nil)
	} else {
		report.CorrectedMean = corrected[0]
	}
	report.CharErrorRate = ratio(charErrors, trials*max(len(text), 1))
	return report, nil
}

// CharErrors counts positions where sent and received differ plus the
// length difference.
func CharErrors(sent, received string) int {
	n := min(len(sent), len(received))
	errs := max(len(sent), len(received)) - n
	for i := 0; i < n; i++ {
		if sent[i] != received[i] {
			errs++
		}
	}
	return errs
}
