package pcmwav

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-roomir/dsp/core"
	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// Errors returned by the codec.
var (
	ErrInvalidHeader     = errors.New("pcmwav: invalid WAV header")
	ErrUnsupportedFormat = errors.New("pcmwav: unsupported WAV format")
	ErrTruncated         = errors.New("pcmwav: truncated WAV data")
)

const (
	// HeaderSize is the size of the canonical RIFF/WAVE header.
	HeaderSize = 44

	formatPCM     = 1
	bitsPerSample = 16
	bytesPerFrame = 2
	fmtChunkSize  = 16

	// decodeScale maps int16 to [-1, 1).
	decodeScale = 1.0 / 32768
	// encodeScale maps [-1, 1] to int16 without overflow at +1.
	encodeScale = 32767
)

// Decode reads a canonical 44-byte-header mono 16-bit PCM WAV stream.
// Samples are scaled by 1/32768. A trailing odd payload byte is ignored.
func Decode(r io.Reader) (signal.Signal, error) {
	var h [HeaderSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return signal.Signal{}, fmt.Errorf("%w: header shorter than %d bytes", ErrTruncated, HeaderSize)
		}

		return signal.Signal{}, fmt.Errorf("pcmwav: failed to read header: %w", err)
	}

	for _, tag := range []struct {
		off  int
		want string
	}{{0, "RIFF"}, {8, "WAVE"}, {12, "fmt "}, {36, "data"}} {
		if got := string(h[tag.off : tag.off+4]); got != tag.want {
			return signal.Signal{}, fmt.Errorf("%w: tag %q at offset %d, want %q", ErrInvalidHeader, got, tag.off, tag.want)
		}
	}

	format := binary.LittleEndian.Uint16(h[20:22])
	channels := binary.LittleEndian.Uint16(h[22:24])
	rate := binary.LittleEndian.Uint32(h[24:28])
	bits := binary.LittleEndian.Uint16(h[34:36])
	dataSize := binary.LittleEndian.Uint32(h[40:44])

	if format != formatPCM || channels != 1 || bits != bitsPerSample {
		return signal.Signal{}, fmt.Errorf("%w: format %d, %d channels, %d bits (want PCM mono 16-bit)",
			ErrUnsupportedFormat, format, channels, bits)
	}

	if rate == 0 || rate > math.MaxInt32 {
		return signal.Signal{}, fmt.Errorf("%w: sample rate %d", ErrInvalidHeader, rate)
	}

	payload, err := io.ReadAll(io.LimitReader(r, int64(dataSize)))
	if err != nil {
		return signal.Signal{}, fmt.Errorf("pcmwav: failed to read samples: %w", err)
	}

	if len(payload) < int(dataSize) {
		return signal.Signal{}, fmt.Errorf("%w: %d of %d payload bytes", ErrTruncated, len(payload), dataSize)
	}

	samples := make([]float64, len(payload)/bytesPerFrame)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(payload[i*bytesPerFrame:]))) * decodeScale
	}

	return signal.New(samples, int(rate)), nil
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	dither bool
	seed   int64
}

// WithDither adds ±1 LSB TPDF dither before quantization, seeded for
// reproducible output.
func WithDither(seed int64) EncodeOption {
	return func(c *encodeConfig) {
		c.dither = true
		c.seed = seed
	}
}

// Encode writes s as a canonical mono 16-bit PCM WAV stream. Samples are
// clamped to [-1, 1], scaled by 32767 and truncated toward zero.
func Encode(w io.Writer, s signal.Signal, opts ...EncodeOption) error {
	if s.SampleRate <= 0 || s.SampleRate > math.MaxInt32/bytesPerFrame {
		return fmt.Errorf("pcmwav: %w: %d", signal.ErrInvalidSampleRate, s.SampleRate)
	}

	dataSize := len(s.Samples) * bytesPerFrame
	if int64(dataSize) > math.MaxUint32-(HeaderSize-8) {
		return fmt.Errorf("pcmwav: %d samples exceed the RIFF size limit", len(s.Samples))
	}

	var cfg encodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	samples := s.Samples
	if cfg.dither {
		samples = append([]float64(nil), s.Samples...)
		vecmath.AddDitherTPDF(samples, 1.0/encodeScale, vecmath.NewDitherState(cfg.seed))
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header(s.SampleRate, dataSize)); err != nil {
		return fmt.Errorf("pcmwav: failed to write header: %w", err)
	}

	var frame [bytesPerFrame]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint16(frame[:], uint16(Quantize(v)))
		if _, err := bw.Write(frame[:]); err != nil {
			return fmt.Errorf("pcmwav: failed to write samples: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("pcmwav: failed to write samples: %w", err)
	}

	return nil
}

// Quantize converts one sample to int16: clamp to [-1, 1], scale by 32767,
// truncate toward zero. NaN maps to zero.
func Quantize(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}

	return int16(core.Clamp(v, -1, 1) * encodeScale)
}

func header(sampleRate, dataSize int) []byte {
	h := make([]byte, HeaderSize)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(HeaderSize-8+dataSize))
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(h[20:22], formatPCM)
	binary.LittleEndian.PutUint16(h[22:24], 1)
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate*bytesPerFrame))
	binary.LittleEndian.PutUint16(h[32:34], bytesPerFrame)
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(dataSize))

	return h
}
