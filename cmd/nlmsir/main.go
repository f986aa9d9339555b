// Command nlmsir identifies an impulse response from a white-noise
// measurement with an NLMS adaptive filter.
//
// Usage:
//
//	nlmsir [flags] [in.wav] [response.wav] [ir.wav] [order]
//
// The positional arguments default to white_noise_180s.wav,
// white_noise_response.wav, impulse_response_adaptive.wav and an order of
// 48000 taps (env ROOMIR_NLMS_ORDER). The two input files are cut to the
// shorter one.
//
// Examples:
//
//	nlmsir
//	nlmsir -mu 0.05 noise.wav recording.wav ir.wav 24000
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-roomir/internal/cli"
	"github.com/cwbudde/algo-roomir/measure/nlms"
	"github.com/cwbudde/algo-roomir/measure/tsp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	defaults := nlms.DefaultConfig()

	fs := flag.NewFlagSet("nlmsir", flag.ContinueOnError)
	mu := fs.Float64("mu", defaults.StepSize, "step size μ (stable for 0 < μ < 2)")
	beta := fs.Float64("beta", defaults.Regularization, "regularization β added to the input power")
	progress := fs.Int("progress", 10, "log progress every N percent (0 = off)")
	lenient := fs.Bool("lenient", false, "accept WAV files with extra chunks")

	var common cli.Common
	common.Register(fs)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: nlmsir [flags] [in=white_noise_180s.wav] [out=white_noise_response.wav] [ir=impulse_response_adaptive.wav] [order=48000]\n\n")
		fmt.Fprintf(fs.Output(), "Estimates an impulse response with an NLMS adaptive filter.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if code, ok := cli.Parse(fs, args); !ok {
		return code
	}

	log, err := common.Logger("nlmsir")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}
	defer func() { _ = log.Sync() }()

	inPath := cli.Arg(fs, 0, "white_noise_180s.wav")
	respPath := cli.Arg(fs, 1, "white_noise_response.wav")
	irPath := cli.Arg(fs, 2, "impulse_response_adaptive.wav")

	order := cli.EnvIntOr("ROOMIR_NLMS_ORDER", defaults.Order)
	if s := fs.Arg(3); s != "" {
		order, err = strconv.Atoi(s)
		if err != nil {
			log.Error("invalid order", zap.String("order", s), zap.Error(err))
			return cli.ExitUsage
		}
	}

	cfg := nlms.Config{Order: order, StepSize: *mu, Regularization: *beta}
	if err := cfg.Validate(); err != nil {
		return cli.Fail(log, "invalid configuration", err)
	}

	input, response, err := cli.LoadPair(inPath, respPath, *lenient)
	if err != nil {
		return cli.Fail(log, "load failed", err)
	}

	total := min(input.Len(), response.Len())
	if input.Len() != response.Len() {
		log.Warn("input lengths differ, using the shorter",
			zap.Int("input_samples", input.Len()),
			zap.Int("response_samples", response.Len()),
		)
	}

	opts := []nlms.Option{nlms.WithConfig(cfg)}
	if *progress > 0 && *progress < 100 {
		every := max(total*(*progress)/100, 1)
		opts = append(opts, nlms.WithProgress(every, func(done, n int) {
			log.Info("adapting",
				zap.Int("samples", done),
				zap.Float64("percent", 100*float64(done)/float64(n)),
			)
		}))
	}

	res, err := nlms.Identify(input, response, opts...)
	if err != nil {
		return cli.Fail(log, "identification failed", err)
	}

	if err := cli.WriteNormalized(irPath, res.Taps, input.SampleRate, tsp.OutputPeak); err != nil {
		return cli.Fail(log, "write failed", err)
	}

	tw := cli.Table(stdout)
	fmt.Fprintf(tw, "file\t%s\n", irPath)
	fmt.Fprintf(tw, "order\t%d taps\n", cfg.Order)
	fmt.Fprintf(tw, "step size\t%g\n", cfg.StepSize)
	fmt.Fprintf(tw, "regularization\t%g\n", cfg.Regularization)
	fmt.Fprintf(tw, "samples\t%d\n", res.Samples)
	fmt.Fprintf(tw, "residual RMS\t%.3g\n", res.ResidualRMS)
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", input.SampleRate)
	if err := tw.Flush(); err != nil {
		return cli.Fail(log, "output failed", err)
	}

	return cli.ExitOK
}
