package ir

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDecayCurve writes curve as tab-separated text, one line per sample:
// time in seconds and level in dB. The first line is a '#' header.
func WriteDecayCurve(w io.Writer, curve []float64, sampleRate float64) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# time_s\tlevel_db"); err != nil {
		return fmt.Errorf("ir: failed to write decay curve: %w", err)
	}

	for i, v := range curve {
		if _, err := fmt.Fprintf(bw, "%.6f\t%.2f\n", float64(i)/sampleRate, v); err != nil {
			return fmt.Errorf("ir: failed to write decay curve: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ir: failed to write decay curve: %w", err)
	}

	return nil
}
