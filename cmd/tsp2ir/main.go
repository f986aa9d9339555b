// Command tsp2ir recovers an impulse response from a recorded TSP
// measurement.
//
// Usage:
//
//	tsp2ir [flags] [tsp.wav] [response.wav] [out.wav]
//
// The positional arguments default to tsp_signal.wav, tsp_response.wav and
// impulse_response.wav. When the response holds at least two sweep periods
// the analysis starts at the second period. The FFT spans the whole
// response unless -periodic restricts it to one TSP period. With the
// default inverse filter the direct sound lands at N - n0 (3N/4 for the
// default shift); -align rotates it to the front.
//
// Examples:
//
//	tsp2ir
//	tsp2ir -method division -fft algofft sweep.wav recording.wav ir.wav
//	tsp2ir -periodic -align 196608 -lenient tsp_signal.wav daw_export.wav ir.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-roomir/audio/pcmwav"
	"github.com/cwbudde/algo-roomir/dsp/fft"
	"github.com/cwbudde/algo-roomir/internal/cli"
	"github.com/cwbudde/algo-roomir/measure/tsp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func planner(name string) (fft.Planner, error) {
	switch name {
	case "radix2":
		return fft.NewRadix2, nil
	case "algofft":
		return fft.NewAlgoFFT, nil
	default:
		return nil, fmt.Errorf("unknown FFT backend %q (want radix2 or algofft)", name)
	}
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("tsp2ir", flag.ContinueOnError)
	j := fs.Int("j", 0, "effective length J of the inverse filter (0 = half the TSP length)")
	secondPeriod := fs.Bool("second-period", true, "analyze the second period when the response holds two")
	periodic := fs.Bool("periodic", false, "analyze exactly one period with an FFT of the TSP length")
	methodName := fs.String("method", "inverse", "deconvolution method: inverse or division")
	align := fs.Int("align", 0, "rotate the result left by this many samples (N - n0 moves the direct sound to 0)")
	fftName := fs.String("fft", "radix2", "FFT backend: radix2 or algofft")
	lenient := fs.Bool("lenient", false, "accept WAV files with extra chunks")
	peak := fs.Float64("peak", tsp.OutputPeak, "peak of the normalized impulse response")

	var common cli.Common
	common.Register(fs)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tsp2ir [flags] [tsp=tsp_signal.wav] [response=tsp_response.wav] [out=impulse_response.wav]\n\n")
		fmt.Fprintf(fs.Output(), "Deconvolves a recorded TSP response into an impulse response.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if code, ok := cli.Parse(fs, args); !ok {
		return code
	}

	log, err := common.Logger("tsp2ir")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}
	defer func() { _ = log.Sync() }()

	tspPath := cli.Arg(fs, 0, "tsp_signal.wav")
	respPath := cli.Arg(fs, 1, "tsp_response.wav")
	out := cli.Arg(fs, 2, "impulse_response.wav")

	method, err := tsp.ParseMethod(*methodName)
	if err != nil {
		return cli.Fail(log, "invalid method", err)
	}

	plan, err := planner(*fftName)
	if err != nil {
		return cli.Fail(log, "invalid FFT backend", err)
	}

	excitation, response, err := cli.LoadPair(tspPath, respPath, *lenient)
	if err != nil {
		return cli.Fail(log, "load failed", err)
	}

	log.Debug("loaded signals",
		zap.String("tsp", tspPath),
		zap.Int("tsp_samples", excitation.Len()),
		zap.String("response", respPath),
		zap.Int("response_samples", response.Len()),
		zap.Int("sample_rate", excitation.SampleRate),
	)

	res, err := tsp.Deconvolve(excitation, response,
		tsp.WithEffectiveLength(*j),
		tsp.WithSecondPeriod(*secondPeriod),
		tsp.WithPeriodic(*periodic),
		tsp.WithMethod(method),
		tsp.WithAlignment(*align),
		tsp.WithPeak(*peak),
		tsp.WithPlanner(plan),
	)
	if err != nil {
		return cli.Fail(log, "deconvolution failed", err)
	}

	if res.ZeroedBins > 0 {
		log.Warn("excitation spectrum has silent bins", zap.Int("zeroed_bins", res.ZeroedBins))
	}

	if err := pcmwav.WriteFile(out, res.IR); err != nil {
		return cli.Fail(log, "write failed", err)
	}

	tw := cli.Table(stdout)
	fmt.Fprintf(tw, "file\t%s\n", out)
	fmt.Fprintf(tw, "method\t%s\n", method)
	fmt.Fprintf(tw, "FFT size\t%d\n", res.FFTSize)
	fmt.Fprintf(tw, "segment offset\t%d samples\n", res.SegmentOffset)
	fmt.Fprintf(tw, "effective length J\t%d samples\n", res.EffectiveLength)
	fmt.Fprintf(tw, "zeroed bins\t%d\n", res.ZeroedBins)
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", res.IR.SampleRate)
	if err := tw.Flush(); err != nil {
		return cli.Fail(log, "output failed", err)
	}

	return cli.ExitOK
}
