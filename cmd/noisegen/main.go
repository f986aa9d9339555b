// Command noisegen writes a uniform white-noise excitation for adaptive
// (NLMS) impulse-response measurement.
//
// Usage:
//
//	noisegen [flags] [out.wav]
//
// The output defaults to white_noise_180s.wav. A seed of 0 derives the
// seed from the current time; any other seed reproduces the same file.
//
// Examples:
//
//	noisegen
//	noisegen -duration 30 -amplitude 0.25 -seed 42 noise_30s.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-roomir/audio/pcmwav"
	"github.com/cwbudde/algo-roomir/dsp/core"
	"github.com/cwbudde/algo-roomir/dsp/signal"
	"github.com/cwbudde/algo-roomir/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("noisegen", flag.ContinueOnError)
	rate := fs.Int("rate", cli.EnvIntOr("ROOMIR_SAMPLE_RATE", 48000), "sample rate in Hz (env ROOMIR_SAMPLE_RATE)")
	duration := fs.Float64("duration", 180, "duration in seconds")
	amplitude := fs.Float64("amplitude", 0.5, "peak amplitude in [0, 1]")
	seed := fs.Int64("seed", 0, "noise seed (0 = time based)")

	var common cli.Common
	common.Register(fs)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: noisegen [flags] [out=white_noise_180s.wav]\n\n")
		fmt.Fprintf(fs.Output(), "Writes uniform white noise as mono 16-bit WAV.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if code, ok := cli.Parse(fs, args); !ok {
		return code
	}

	log, err := common.Logger("noisegen")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}
	defer func() { _ = log.Sync() }()

	out := cli.Arg(fs, 0, "white_noise_180s.wav")

	if *rate <= 0 {
		return cli.Fail(log, "invalid sample rate", fmt.Errorf("%w: %d", signal.ErrInvalidSampleRate, *rate))
	}

	samples := int(math.Round(*duration * float64(*rate)))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.MeasurementOption{core.WithSampleRate(*rate)},
		signal.WithSeed(*seed),
	)

	noise, err := gen.WhiteNoise(*amplitude, samples)
	if err != nil {
		return cli.Fail(log, "generation failed", err)
	}

	if err := pcmwav.WriteFile(out, noise); err != nil {
		return cli.Fail(log, "write failed", err)
	}

	log.Debug("wrote noise", zap.String("path", out), zap.Int64("seed", gen.Seed()))

	tw := cli.Table(stdout)
	fmt.Fprintf(tw, "file\t%s\n", out)
	fmt.Fprintf(tw, "samples\t%d\n", noise.Len())
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", noise.SampleRate)
	fmt.Fprintf(tw, "duration\t%.3f s\n", noise.Duration().Seconds())
	fmt.Fprintf(tw, "amplitude\t%.3f\n", *amplitude)
	fmt.Fprintf(tw, "seed\t%d\n", gen.Seed())
	if err := tw.Flush(); err != nil {
		return cli.Fail(log, "output failed", err)
	}

	return cli.ExitOK
}
