package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedFrame reports an inbound chunk whose byte length does not line
// up with the 16-bit sample width.
var ErrMalformedFrame = errors.New("audio frame length is not a multiple of the sample width")

// EncodeFrame converts float samples in [-1, 1] to little-endian signed
// 16-bit bytes. Out-of-range samples are clamped rather than rejected.
func EncodeFrame(samples []float32) []byte {
	encoded := make([]byte, len(samples)*EncodingLinear16.ByteSize())
	for i, sample := range samples {
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		binary.LittleEndian.PutUint16(encoded[i*2:], uint16(int16(sample*32767)))
	}
	return encoded
}

// DecodeFrame unpacks little-endian signed 16-bit bytes into samples.
func DecodeFrame(data []byte) ([]int16, error) {
	if len(data)%EncodingLinear16.ByteSize() != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMalformedFrame, len(data))
	}

	samples := make([]int16, len(data)/EncodingLinear16.ByteSize())
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples, nil
}

// PlaybackBuffer is a renderable chunk of normalized audio tagged with the
// layout it should be rendered at. Immutable once built.
type PlaybackBuffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

func (b PlaybackBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}

	frames := len(b.Samples) / b.Channels
	return time.Duration(float64(frames) / float64(b.SampleRate) * float64(time.Second))
}

// BuildPlaybackBuffer normalizes 16-bit samples back to floating-point
// amplitude and packages them with the remote layout.
func BuildPlaybackBuffer(samples []int16, sampleRate, channels int) (PlaybackBuffer, error) {
	if sampleRate <= 0 {
		return PlaybackBuffer{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels <= 0 {
		return PlaybackBuffer{}, fmt.Errorf("invalid channel count: %d", channels)
	}

	normalized := make([]float32, len(samples))
	for i, sample := range samples {
		normalized[i] = float32(sample) / 32768
	}

	return PlaybackBuffer{Samples: normalized, SampleRate: sampleRate, Channels: channels}, nil
}

// DurationOfBytes reports how long the given number of encoded bytes plays
// for under the encoding.
func DurationOfBytes(length int, encodingInfo EncodingInfo) time.Duration {
	bytesPerSecond := encodingInfo.BytesPerSecond()
	if bytesPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(length) / float64(bytesPerSecond) * float64(time.Second))
}

// BytesOfDuration reports how many encoded bytes cover the given duration.
func BytesOfDuration(duration time.Duration, encodingInfo EncodingInfo) int {
	return int(float64(duration) / float64(time.Second) * float64(encodingInfo.BytesPerSecond()))
}
