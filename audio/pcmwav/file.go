package pcmwav

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// ReadFile decodes the WAV file at path with Decode.
func ReadFile(path string) (signal.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("pcmwav: failed to open input file: %w", err)
	}
	defer f.Close()

	s, err := Decode(bufio.NewReader(f))
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// ReadFileLenient decodes the WAV file at path with DecodeLenient.
func ReadFileLenient(path string) (signal.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("pcmwav: failed to open input file: %w", err)
	}
	defer f.Close()

	s, err := DecodeLenient(f)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// WriteFile encodes s into a new file at path. A partially written file is
// removed on error.
func WriteFile(path string, s signal.Signal, opts ...EncodeOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pcmwav: failed to create output file: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("pcmwav: failed to close output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return Encode(f, s, opts...)
}
