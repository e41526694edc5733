package audio

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestEncodeFrameRoundTripsWithinQuantizationError(t *testing.T) {
	samples := []float32{0, 0.25, -0.25, 0.5, -0.5, 0.99, -0.99, 1, -1}

	decoded, err := DecodeFrame(EncodeFrame(samples))
	if err != nil {
		t.Fatalf("expected round trip to decode, got error: %v", err)
	}

	if len(decoded) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(decoded))
	}
	for i, sample := range samples {
		got := float64(decoded[i]) / 32767
		if math.Abs(got-float64(sample)) > 1.0/32767 {
			t.Fatalf("sample %d: expected %f within one quantization step, got %f", i, sample, got)
		}
	}
}

func TestEncodeFrameClampsOutOfRangeSamples(t *testing.T) {
	decoded, err := DecodeFrame(EncodeFrame([]float32{2.5, -3.0}))
	if err != nil {
		t.Fatalf("expected clamped frame to decode, got error: %v", err)
	}

	if decoded[0] != 32767 {
		t.Fatalf("expected positive overdrive to clamp to 32767, got %d", decoded[0])
	}
	if decoded[1] != -32767 {
		t.Fatalf("expected negative overdrive to clamp to -32767, got %d", decoded[1])
	}
}

func TestDecodeFrameRejectsOddLength(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x01, 0x02, 0x03}); !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("expected ErrMalformedFrame for odd length, got %v", err)
	}
}

func TestDecodeFrameAcceptsEmptyChunk(t *testing.T) {
	samples, err := DecodeFrame(nil)
	if err != nil {
		t.Fatalf("expected empty chunk to decode, got error: %v", err)
	}
	if len(samples) != 0 {
		t.Fatalf("expected no samples, got %d", len(samples))
	}
}

func TestBuildPlaybackBufferDuration(t *testing.T) {
	samples := make([]int16, PlaybackSampleRate/2)

	buffer, err := BuildPlaybackBuffer(samples, PlaybackSampleRate, 1)
	if err != nil {
		t.Fatalf("expected buffer to build, got error: %v", err)
	}

	if got := buffer.Duration(); got != 500*time.Millisecond {
		t.Fatalf("expected duration 500ms, got %v", got)
	}
}

func TestBuildPlaybackBufferNormalizesAmplitude(t *testing.T) {
	buffer, err := BuildPlaybackBuffer([]int16{-32768, 0, 16384}, PlaybackSampleRate, 1)
	if err != nil {
		t.Fatalf("expected buffer to build, got error: %v", err)
	}

	if got := buffer.Samples[0]; got != -1 {
		t.Fatalf("expected full-scale negative sample to map to -1, got %f", got)
	}
	if got := buffer.Samples[1]; got != 0 {
		t.Fatalf("expected zero sample to map to 0, got %f", got)
	}
	if got := buffer.Samples[2]; got != 0.5 {
		t.Fatalf("expected half-scale sample to map to 0.5, got %f", got)
	}
}

func TestBuildPlaybackBufferRejectsInvalidLayout(t *testing.T) {
	if _, err := BuildPlaybackBuffer([]int16{0}, 0, 1); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := BuildPlaybackBuffer([]int16{0}, PlaybackSampleRate, 0); err == nil {
		t.Fatal("expected error for zero channels")
	}
}

func TestCaptureEncodingMatchesWireLayout(t *testing.T) {
	encodingInfo := GetCaptureEncodingInfo()

	if encodingInfo.SampleRate != CaptureSampleRate {
		t.Fatalf("expected capture rate %d, got %d", CaptureSampleRate, encodingInfo.SampleRate)
	}
	if encodingInfo.Channels != DefaultChannels {
		t.Fatalf("expected %d channel(s), got %d", DefaultChannels, encodingInfo.Channels)
	}
	if got := encodingInfo.BytesPerSecond(); got != 32000 {
		t.Fatalf("expected 32000 bytes per second of capture audio, got %d", got)
	}
}

func TestDurationOfBytesMatchesEncoding(t *testing.T) {
	encodingInfo := GetPlaybackEncodingInfo()

	oneSecond := encodingInfo.BytesPerSecond()
	if got := DurationOfBytes(oneSecond, encodingInfo); got != time.Second {
		t.Fatalf("expected one second worth of bytes to report 1s, got %v", got)
	}
	if got := BytesOfDuration(time.Second, encodingInfo); got != oneSecond {
		t.Fatalf("expected 1s to report %d bytes, got %d", oneSecond, got)
	}
}
