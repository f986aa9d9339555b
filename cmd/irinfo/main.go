// Command irinfo prints reverberation and clarity metrics of an impulse
// response.
//
// Usage:
//
//	irinfo [flags] [ir.wav] [curve]
//
// The impulse response defaults to impulse_response.wav and is analyzed from
// its first sample; -from-peak skips everything before the peak. Each decay
// line ends with the fitted interval in seconds from the start of the file.
// When a curve path is given the Schroeder decay curve is exported to it: .parquet writes a
// Parquet table, any other name a tab-separated text file, compressed when
// the name ends in .gz, .zst, .br, .lz4 or .sz.
//
// Examples:
//
//	irinfo
//	irinfo -t20 -5:-25 hall.wav hall_decay.tsv.gz
//	irinfo impulse_response.wav decay.parquet
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-roomir/dsp/core"
	"github.com/cwbudde/algo-roomir/dsp/signal"
	"github.com/cwbudde/algo-roomir/internal/cli"
	"github.com/cwbudde/algo-roomir/internal/export"
	"github.com/cwbudde/algo-roomir/measure/ir"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("irinfo", flag.ContinueOnError)
	t10 := fs.String("t10", "-5:-15", "T10 evaluation range START:END in dB")
	t20 := fs.String("t20", "-5:-25", "T20 evaluation range START:END in dB")
	lenient := fs.Bool("lenient", false, "accept WAV files with extra chunks")
	fromPeak := fs.Bool("from-peak", false, "start the analysis at the peak sample")

	var common cli.Common
	common.Register(fs)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: irinfo [flags] [ir=impulse_response.wav] [curve]\n\n")
		fmt.Fprintf(fs.Output(), "Prints decay times and clarity metrics of an impulse response.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if code, ok := cli.Parse(fs, args); !ok {
		return code
	}

	log, err := common.Logger("irinfo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}
	defer func() { _ = log.Sync() }()

	irPath := cli.Arg(fs, 0, "impulse_response.wav")
	curvePath := fs.Arg(1)

	t10Start, t10End, err := cli.ParseRange(*t10)
	if err != nil {
		log.Error("invalid -t10", zap.Error(err))
		return cli.ExitUsage
	}

	t20Start, t20End, err := cli.ParseRange(*t20)
	if err != nil {
		log.Error("invalid -t20", zap.Error(err))
		return cli.ExitUsage
	}

	s, err := cli.ReadWAV(irPath, *lenient)
	if err != nil {
		return cli.Fail(log, "load failed", err)
	}

	rate := float64(s.SampleRate)
	analyzer := ir.NewAnalyzer(rate,
		ir.WithT10Range(t10Start, t10End),
		ir.WithT20Range(t20Start, t20End),
		ir.WithPeakStart(*fromPeak),
	)

	report, err := analyzer.Analyze(s.Samples)
	if err != nil {
		return cli.Fail(log, "analysis failed", err)
	}

	if curvePath != "" {
		if err := export.WriteDecayCurve(curvePath, report.Curve, rate); err != nil {
			return cli.Fail(log, "curve export failed", err)
		}
		log.Info("wrote decay curve",
			zap.String("path", curvePath),
			zap.Int("points", len(report.Curve)),
			zap.Int("start", report.Start),
			zap.Stringer("compression", export.CompressionFor(curvePath)),
		)
	}

	tw := cli.Table(stdout)
	fmt.Fprintf(tw, "file\t%s\n", irPath)
	fmt.Fprintf(tw, "samples\t%d\n", s.Len())
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", s.SampleRate)
	fmt.Fprintf(tw, "peak index\t%d\n", report.PeakIndex)
	fmt.Fprintf(tw, "peak level\t%.2f dBFS\n", core.LinearToDB(signal.Peak(s.Samples)))
	span := interval{start: report.Start, rate: rate}
	span.write(tw, "EDT", ir.RangeEDT, report.EDT)
	span.write(tw, "T10", analyzer.T10Range(), report.T10)
	span.write(tw, "T20", analyzer.T20Range(), report.T20)
	span.write(tw, "T30", ir.RangeT30, report.T30)
	if rt60, ok := report.RT60(); ok {
		fmt.Fprintf(tw, "RT60\t%.3f s\t\n", rt60)
	} else {
		fmt.Fprintf(tw, "RT60\tundetermined\t\n")
	}
	fmt.Fprintf(tw, "C50\t%.2f dB\t\n", report.C50)
	fmt.Fprintf(tw, "C80\t%.2f dB\t\n", report.C80)
	fmt.Fprintf(tw, "D50\t%.3f\t\n", report.D50)
	fmt.Fprintf(tw, "center time\t%.2f ms\t\n", report.CenterTime*1000)
	if err := tw.Flush(); err != nil {
		return cli.Fail(log, "output failed", err)
	}

	return cli.ExitOK
}

// interval maps fitted curve indices back to seconds in the file.
type interval struct {
	start int
	rate  float64
}

func (iv interval) seconds(index int) float64 {
	return float64(iv.start+index) / iv.rate
}

func (iv interval) write(w io.Writer, name string, r ir.Range, est ir.DecayEstimate) {
	label := fmt.Sprintf("%s (%g to %g dB)", name, r.Start, r.End)
	if !est.Determined {
		fmt.Fprintf(w, "%s\tundetermined\t\n", label)
		return
	}

	fmt.Fprintf(w, "%s\t%.3f s\tRT60 %.3f s\tfit %.4f-%.4f s\n", label, est.Span, est.RT60,
		iv.seconds(est.StartIndex), iv.seconds(est.EndIndex))
}
