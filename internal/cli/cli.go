// Package cli holds the plumbing shared by the roomir commands: logging,
// environment defaults, WAV loading and result output.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-roomir/audio/pcmwav"
	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// EnvLogLevel names the environment variable holding the default log level.
const EnvLogLevel = "ROOMIR_LOG_LEVEL"

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrBadRange is returned by ParseRange for malformed level ranges.
var ErrBadRange = errors.New("cli: range must be START:END with START > END")

// EnvOr returns the trimmed value of key, or def when it is unset or empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int value of key or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// NewLogger builds a console logger writing to stderr at the given level
// ("debug", "info", "warn", "error").
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("cli: invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if development {
		cfg.Development = true
		cfg.Sampling = nil
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return cfg.Build()
}

// Common holds the flags every command accepts.
type Common struct {
	LogLevel    string
	Development bool
}

// Register adds -log-level and -dev to fs.
func (c *Common) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", EnvOr(EnvLogLevel, "info"),
		"log level: debug, info, warn, error (env "+EnvLogLevel+")")
	fs.BoolVar(&c.Development, "dev", false, "development logging (colored levels, stack traces on warn)")
}

// Logger builds the command logger and reports the detected SIMD features
// at debug level.
func (c *Common) Logger(command string) (*zap.Logger, error) {
	log, err := NewLogger(c.LogLevel, c.Development)
	if err != nil {
		return nil, err
	}

	log = log.Named(command)
	log.Debug("cpu features", zap.String("features", fmt.Sprintf("%+v", cpu.DetectFeatures())))

	return log, nil
}

// Parse parses args into fs. When ok is false the command should return
// code: ExitOK after -h, ExitUsage after a flag error.
func Parse(fs *flag.FlagSet, args []string) (code int, ok bool) {
	err := fs.Parse(args)
	switch {
	case err == nil:
		return ExitOK, true
	case errors.Is(err, flag.ErrHelp):
		return ExitOK, false
	default:
		return ExitUsage, false
	}
}

// Arg returns positional argument i of fs, or def when absent.
func Arg(fs *flag.FlagSet, i int, def string) string {
	if v := fs.Arg(i); v != "" {
		return v
	}
	return def
}

// Fail logs err and returns ExitFailure.
func Fail(log *zap.Logger, msg string, err error) int {
	log.Error(msg, zap.Error(err))
	return ExitFailure
}

// ReadWAV loads a mono 16-bit WAV file, through the chunk-walking decoder
// when lenient is set.
func ReadWAV(path string, lenient bool) (signal.Signal, error) {
	if lenient {
		return pcmwav.ReadFileLenient(path)
	}
	return pcmwav.ReadFile(path)
}

// LoadPair reads two WAV files that must share a sample rate.
func LoadPair(first, second string, lenient bool) (signal.Signal, signal.Signal, error) {
	a, err := ReadWAV(first, lenient)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, err
	}

	b, err := ReadWAV(second, lenient)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, err
	}

	if err := signal.CheckSameRate(a, b); err != nil {
		return signal.Signal{}, signal.Signal{}, fmt.Errorf("%s and %s: %w", first, second, err)
	}

	return a, b, nil
}

// WriteNormalized scales samples to peak and writes them as a WAV file.
func WriteNormalized(path string, samples []float64, sampleRate int, peak float64) error {
	scaled, err := signal.Normalize(samples, peak)
	if err != nil {
		return err
	}
	return pcmwav.WriteFile(path, signal.New(scaled, sampleRate))
}

// ParseRange parses "START:END" in dB, e.g. "-5:-15".
func ParseRange(s string) (start, end float64, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadRange, s)
	}

	start, err = strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadRange, s)
	}

	end, err = strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadRange, s)
	}

	if start <= end {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadRange, s)
	}

	return start, end, nil
}

// Table returns an aligned writer for human-readable summaries.
// Callers must Flush it.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
