package tsp

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-roomir/dsp/fft"
	"github.com/cwbudde/algo-roomir/dsp/signal"
)

func BenchmarkSynthesize(b *testing.B) {
	for _, n := range []int{1 << 14, 1 << 18} {
		p := ParamsForLength(n)
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				_, _ = Synthesize(p, 48000)
			}
		})
	}
}

func BenchmarkDeconvolve(b *testing.B) {
	const n = 1 << 16
	exc, err := Synthesize(ParamsForLength(n), 48000)
	if err != nil {
		b.Fatal(err)
	}
	played, _ := Repeat(exc, 2)
	resp := signal.New(played.Samples, 48000)

	for name, planner := range map[string]fft.Planner{"radix2": fft.NewRadix2, "algofft": fft.NewAlgoFFT} {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				_, _ = Deconvolve(exc, resp, WithPlanner(planner))
			}
		})
	}
}
