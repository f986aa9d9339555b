// Command tspgen writes a time-stretched pulse (TSP) excitation signal.
//
// Usage:
//
//	tspgen [flags] [out.wav]
//
// The output defaults to tsp_signal.wav. With -periods 2 the sweep is
// written twice back to back, so that tsp2ir can analyze the second,
// steady-state period of the recorded response.
//
// Examples:
//
//	tspgen
//	tspgen -n 65536 -rate 44100 short_tsp.wav
//	tspgen -periods 2 -dither-seed 7 tsp_two_periods.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-roomir/audio/pcmwav"
	"github.com/cwbudde/algo-roomir/internal/cli"
	"github.com/cwbudde/algo-roomir/measure/tsp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("tspgen", flag.ContinueOnError)
	n := fs.Int("n", 1<<18, "TSP length N in samples (power of two)")
	j := fs.Int("j", 0, "effective length J in samples (0 = N/2)")
	shift := fs.Int("shift", -1, "circular shift n0 in samples (-1 = N/4)")
	rate := fs.Int("rate", cli.EnvIntOr("ROOMIR_SAMPLE_RATE", 48000), "sample rate in Hz (env ROOMIR_SAMPLE_RATE)")
	periods := fs.Int("periods", 1, "number of back-to-back sweep periods")
	ditherSeed := fs.Int64("dither-seed", 0, "add TPDF dither with this seed (0 = no dither)")

	var common cli.Common
	common.Register(fs)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tspgen [flags] [out=tsp_signal.wav]\n\n")
		fmt.Fprintf(fs.Output(), "Writes a TSP excitation as mono 16-bit WAV.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if code, ok := cli.Parse(fs, args); !ok {
		return code
	}

	log, err := common.Logger("tspgen")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}
	defer func() { _ = log.Sync() }()

	out := cli.Arg(fs, 0, "tsp_signal.wav")

	p := tsp.ParamsForLength(*n)
	if *j > 0 {
		p.EffectiveLength = *j
	}
	if *shift >= 0 {
		p.Shift = *shift
	}

	sweep, err := tsp.Synthesize(p, *rate)
	if err != nil {
		return cli.Fail(log, "synthesis failed", err)
	}

	excitation, err := tsp.Repeat(sweep, *periods)
	if err != nil {
		return cli.Fail(log, "synthesis failed", err)
	}

	var opts []pcmwav.EncodeOption
	if *ditherSeed != 0 {
		opts = append(opts, pcmwav.WithDither(*ditherSeed))
	}

	if err := pcmwav.WriteFile(out, excitation, opts...); err != nil {
		return cli.Fail(log, "write failed", err)
	}

	log.Debug("wrote excitation", zap.String("path", out), zap.Int("samples", excitation.Len()))

	tw := cli.Table(stdout)
	fmt.Fprintf(tw, "file\t%s\n", out)
	fmt.Fprintf(tw, "length N\t%d samples\n", p.Length)
	fmt.Fprintf(tw, "effective length J\t%d samples\n", p.EffectiveLength)
	fmt.Fprintf(tw, "shift n0\t%d samples\n", p.Shift)
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", *rate)
	fmt.Fprintf(tw, "periods\t%d\n", *periods)
	fmt.Fprintf(tw, "duration\t%.3f s\n", excitation.Duration().Seconds())
	if err := tw.Flush(); err != nil {
		return cli.Fail(log, "output failed", err)
	}

	return cli.ExitOK
}
