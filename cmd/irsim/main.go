// Command irsim simulates a measurement: it plays an excitation through a
// known impulse response and writes what a microphone would record.
//
// Usage:
//
//	irsim [flags] excitation.wav ir.wav out.wav
//
// The excitation is repeated -periods times, convolved with the impulse
// response by FFT overlap-add, cut to the playback length and scaled by
// -gain. Optional white noise models the background of a real room.
//
// Examples:
//
//	irsim tsp_signal.wav hall.wav tsp_response.wav
//	irsim -periods 2 -noise 0.001 tsp_signal.wav hall.wav tsp_response.wav
//	irsim -gain 0.5 white_noise_180s.wav hall.wav white_noise_response.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-roomir/audio/pcmwav"
	"github.com/cwbudde/algo-roomir/dsp/conv"
	"github.com/cwbudde/algo-roomir/dsp/core"
	"github.com/cwbudde/algo-roomir/dsp/signal"
	"github.com/cwbudde/algo-roomir/internal/cli"
	"github.com/cwbudde/algo-roomir/measure/tsp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("irsim", flag.ContinueOnError)
	periods := fs.Int("periods", 1, "number of back-to-back excitation periods")
	gain := fs.Float64("gain", 1, "linear gain applied to the simulated recording")
	noise := fs.Float64("noise", 0, "amplitude of added white background noise (0 = none)")
	seed := fs.Int64("seed", 1, "background noise seed")
	lenient := fs.Bool("lenient", false, "accept WAV files with extra chunks")

	var common cli.Common
	common.Register(fs)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: irsim [flags] excitation.wav ir.wav out.wav\n\n")
		fmt.Fprintf(fs.Output(), "Simulates recording an excitation through an impulse response.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if code, ok := cli.Parse(fs, args); !ok {
		return code
	}

	if fs.NArg() != 3 {
		fs.Usage()
		return cli.ExitUsage
	}

	log, err := common.Logger("irsim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}
	defer func() { _ = log.Sync() }()

	excPath, irPath, out := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	excitation, h, err := cli.LoadPair(excPath, irPath, *lenient)
	if err != nil {
		return cli.Fail(log, "load failed", err)
	}

	played, err := tsp.Repeat(excitation, *periods)
	if err != nil {
		return cli.Fail(log, "invalid periods", err)
	}

	rec, err := conv.OverlapAddConvolve(played.Samples, h.Samples, nil)
	if err != nil {
		return cli.Fail(log, "convolution failed", err)
	}

	rec = core.PadTo(rec, played.Len())
	vecmath.ScaleBlockInPlace(rec, *gain)

	if *noise > 0 {
		gen := signal.NewGeneratorWithOptions(
			[]core.MeasurementOption{core.WithSampleRate(played.SampleRate)},
			signal.WithSeed(*seed),
		)
		bg, err := gen.WhiteNoise(*noise, len(rec))
		if err != nil {
			return cli.Fail(log, "noise generation failed", err)
		}
		vecmath.AddBlockInPlace(rec, bg.Samples)
	}

	recording := signal.New(rec, played.SampleRate)
	if peak := signal.Peak(rec); peak > 1 {
		log.Warn("recording clips", zap.Float64("peak", peak))
	}

	if err := pcmwav.WriteFile(out, recording); err != nil {
		return cli.Fail(log, "write failed", err)
	}

	tw := cli.Table(stdout)
	fmt.Fprintf(tw, "file\t%s\n", out)
	fmt.Fprintf(tw, "samples\t%d\n", recording.Len())
	fmt.Fprintf(tw, "periods\t%d\n", *periods)
	fmt.Fprintf(tw, "ir length\t%d samples\n", h.Len())
	fmt.Fprintf(tw, "peak\t%.3f\n", signal.Peak(rec))
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", recording.SampleRate)
	if err := tw.Flush(); err != nil {
		return cli.Fail(log, "output failed", err)
	}

	return cli.ExitOK
}
