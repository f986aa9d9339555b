package pcmwav

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// rawWAV assembles a WAV stream from explicit header fields.
func rawWAV(format, channels uint16, rate uint32, bits uint16, payload []byte) []byte {
	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+len(payload)))
	b.WriteString("WAVEfmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, format)
	_ = binary.Write(&b, binary.LittleEndian, channels)
	_ = binary.Write(&b, binary.LittleEndian, rate)
	_ = binary.Write(&b, binary.LittleEndian, rate*uint32(channels)*uint32(bits/8))
	_ = binary.Write(&b, binary.LittleEndian, channels*bits/8)
	_ = binary.Write(&b, binary.LittleEndian, bits)
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(len(payload)))
	b.Write(payload)
	return b.Bytes()
}

func pcm16(values ...int16) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

func TestEncodeHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, signal.New([]float64{0, 0.5, -0.5}, 48000)))

	want := rawWAV(1, 1, 48000, 16, pcm16(0, 16383, -16383))
	assert.Equal(t, want, buf.Bytes())
	assert.Len(t, buf.Bytes(), HeaderSize+6)
}

func TestEncodeQuantization(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int16
	}{
		{name: "full scale", in: 1, want: 32767},
		{name: "negative full scale", in: -1, want: -32767},
		{name: "clip high", in: 1.5, want: 32767},
		{name: "clip low", in: -3, want: -32767},
		{name: "truncate positive", in: 0.99999, want: 32766},
		{name: "truncate negative toward zero", in: -0.00002, want: 0},
		{name: "half", in: 0.5, want: 16383},
		{name: "NaN", in: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantize(tt.in))

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, signal.New([]float64{tt.in}, 8000)))
			got := int16(binary.LittleEndian.Uint16(buf.Bytes()[HeaderSize:]))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	in := signal.New([]float64{0, 0.25, -0.25, 0.9, -0.9, 1, -1}, 44100)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 44100, out.SampleRate)
	require.Len(t, out.Samples, in.Len())

	for i, v := range in.Samples {
		assert.InDelta(t, float64(Quantize(v))/32768, out.Samples[i], 1e-15, "sample %d", i)
		assert.InDelta(t, v, out.Samples[i], 2.0/32768, "sample %d", i)
	}
}

func TestDecodeScaling(t *testing.T) {
	s, err := Decode(bytes.NewReader(rawWAV(1, 1, 16000, 16, pcm16(-32768, 32767, 16384, 0))))
	require.NoError(t, err)

	assert.Equal(t, []float64{-1, 32767.0 / 32768, 0.5, 0}, s.Samples)
	assert.Equal(t, 16000, s.SampleRate)
}

func TestDecodeErrors(t *testing.T) {
	valid := rawWAV(1, 1, 48000, 16, pcm16(1, 2, 3))

	withTag := func(off int, tag string) []byte {
		b := append([]byte(nil), valid...)
		copy(b[off:], tag)
		return b
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: ErrTruncated},
		{name: "short header", data: valid[:20], want: ErrTruncated},
		{name: "bad RIFF", data: withTag(0, "RIFX"), want: ErrInvalidHeader},
		{name: "bad WAVE", data: withTag(8, "AVI "), want: ErrInvalidHeader},
		{name: "bad fmt", data: withTag(12, "fmt_"), want: ErrInvalidHeader},
		{name: "bad data", data: withTag(36, "LIST"), want: ErrInvalidHeader},
		{name: "float format", data: rawWAV(3, 1, 48000, 16, nil), want: ErrUnsupportedFormat},
		{name: "stereo", data: rawWAV(1, 2, 48000, 16, nil), want: ErrUnsupportedFormat},
		{name: "24 bit", data: rawWAV(1, 1, 48000, 24, nil), want: ErrUnsupportedFormat},
		{name: "zero rate", data: rawWAV(1, 1, 0, 16, nil), want: ErrInvalidHeader},
		{name: "truncated payload", data: valid[:len(valid)-1], want: ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeOddPayload(t *testing.T) {
	s, err := Decode(bytes.NewReader(rawWAV(1, 1, 8000, 16, []byte{0x00, 0x40, 0x7f})))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, s.Samples)
}

func TestEncodeInvalidSampleRate(t *testing.T) {
	err := Encode(&bytes.Buffer{}, signal.New([]float64{0}, 0))
	require.ErrorIs(t, err, signal.ErrInvalidSampleRate)
}

func TestWithDither(t *testing.T) {
	in := make([]float64, 2048)
	for i := range in {
		in[i] = 0.25
	}
	s := signal.New(in, 48000)

	encode := func(opts ...EncodeOption) []byte {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, s, opts...))
		return buf.Bytes()
	}

	plain := encode()
	a := encode(WithDither(1))
	b := encode(WithDither(1))
	c := encode(WithDither(2))

	assert.Equal(t, a, b, "same seed must give identical output")
	assert.NotEqual(t, a, c, "different seeds should differ")
	assert.NotEqual(t, plain, a)

	for _, v := range in {
		require.Equal(t, 0.25, v, "input modified")
	}

	for i := HeaderSize; i < len(a); i += 2 {
		p := int(int16(binary.LittleEndian.Uint16(plain[i:])))
		d := int(int16(binary.LittleEndian.Uint16(a[i:])))
		require.LessOrEqual(t, abs(p-d), 1, "frame %d", (i-HeaderSize)/2)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ir.wav")
	in := signal.New([]float64{0.1, -0.2, 0.3}, 22050)

	require.NoError(t, WriteFile(path, in))

	out, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, out.SampleRate)
	assert.InDeltaSlice(t, in.Samples, out.Samples, 2.0/32768)

	lenient, err := ReadFileLenient(path)
	require.NoError(t, err)
	assert.Equal(t, out, lenient)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.wav"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadFileLenient(filepath.Join(t.TempDir(), "missing.wav"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileRemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")

	err := WriteFile(path, signal.New([]float64{0}, -1))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestGoAudioReadsEncodedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsp.wav")
	samples := []float64{0, 0.5, -0.5, 0.999, -1, 0.001}
	require.NoError(t, WriteFile(path, signal.New(samples, 48000)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)
	assert.Equal(t, uint32(48000), dec.SampleRate)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, len(samples))
	for i, v := range samples {
		assert.Equal(t, int(Quantize(v)), buf.Data[i], "sample %d", i)
	}
}

func TestDecodeLenientExtraChunk(t *testing.T) {
	canonical := rawWAV(1, 1, 32000, 16, pcm16(100, -200, 300))

	// Insert a JUNK chunk between fmt and data.
	var b bytes.Buffer
	b.Write(canonical[:36])
	b.WriteString("JUNK")
	_ = binary.Write(&b, binary.LittleEndian, uint32(4))
	b.Write([]byte{0, 0, 0, 0})
	b.Write(canonical[36:])
	data := b.Bytes()
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(data)-8))

	_, err := Decode(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidHeader)

	s, err := DecodeLenient(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 32000, s.SampleRate)
	assert.Equal(t, []float64{100.0 / 32768, -200.0 / 32768, 300.0 / 32768}, s.Samples)
}

func TestDecodeLenientGoAudioEncoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recorder.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 44100, 16, 1, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           []int{0, 8192, -8192, 32767},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	s, err := ReadFileLenient(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, s.SampleRate)
	assert.Equal(t, []float64{0, 0.25, -0.25, 32767.0 / 32768}, s.Samples)
}

func TestDecodeLenientRejectsStereo(t *testing.T) {
	_, err := DecodeLenient(bytes.NewReader(rawWAV(1, 2, 48000, 16, pcm16(1, 2, 3, 4))))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeLenientRejectsGarbage(t *testing.T) {
	_, err := DecodeLenient(bytes.NewReader([]byte("not a wav file at all")))
	require.ErrorIs(t, err, ErrInvalidHeader)
}
