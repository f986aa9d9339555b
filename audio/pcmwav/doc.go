// Package pcmwav reads and writes mono 16-bit PCM WAV files.
//
// Decode and Encode handle the canonical 44-byte RIFF/WAVE header written
// by most measurement tools. Any mismatching chunk tag is rejected with
// ErrInvalidHeader, non-PCM, multi-channel or non-16-bit data with
// ErrUnsupportedFormat, and short payloads with ErrTruncated.
//
// Samples are normalized to [-1, 1): decoding divides by 32768, encoding
// clamps to [-1, 1], multiplies by 32767 and truncates toward zero.
// WithDither adds seeded TPDF dither before quantization.
//
// DecodeLenient walks the RIFF chunk list instead of assuming a fixed
// layout, for recordings that carry metadata chunks.
//
// # Usage
//
//	s, err := pcmwav.ReadFile("tsp_response.wav")
//	if err != nil {
//		return err
//	}
//	err = pcmwav.WriteFile("copy.wav", s)
package pcmwav
