package pcmwav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// DecodeLenient reads a mono 16-bit PCM WAV stream through a chunk-walking
// RIFF parser, accepting files that carry extra chunks (LIST, bext, JUNK)
// or a fmt chunk longer than 16 bytes, as field recorders commonly write.
func DecodeLenient(r io.ReadSeeker) (signal.Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return signal.Signal{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}

		return signal.Signal{}, ErrInvalidHeader
	}

	if dec.WavAudioFormat != formatPCM || dec.NumChans != 1 || dec.BitDepth != bitsPerSample {
		return signal.Signal{}, fmt.Errorf("%w: format %d, %d channels, %d bits (want PCM mono 16-bit)",
			ErrUnsupportedFormat, dec.WavAudioFormat, dec.NumChans, dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return signal.Signal{}, fmt.Errorf("pcmwav: failed to read samples: %w", err)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) * decodeScale
	}

	return signal.New(samples, int(dec.SampleRate)), nil
}
