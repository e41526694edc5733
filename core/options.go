package kiosk

import (
	"context"
	"time"

	"github.com/anakkallumkal/kiosk-core/core/audio"
	"github.com/anakkallumkal/kiosk-core/core/live"
)

type SessionOption func(*Session)

// CaptureDevice delivers fixed-length mono float frames from the
// microphone. StartCapture attaches the frame processor; StopCapture
// detaches it and releases the stream.
type CaptureDevice interface {
	StartCapture(ctx context.Context, onFrame func(samples []float32)) error
	StopCapture() error
}

// PlaybackDevice renders buffers at explicit start times against its own
// monotonic clock. The done callback fires exactly once per scheduled
// buffer, on natural completion or forced stop.
type PlaybackDevice interface {
	Now() time.Duration
	Schedule(buffer audio.PlaybackBuffer, start time.Duration, done func()) (PlaybackHandle, error)
}

type PlaybackHandle interface {
	Stop()
}

// AudioDevice is the full device contract the session owns for the duration
// of one connection: a 16 kHz capture context and a 24 kHz playback
// context. Open and Close must be idempotent-friendly across attempts;
// Resume restarts suspended rendering after the transport opens.
type AudioDevice interface {
	CaptureDevice
	PlaybackDevice

	Open(ctx context.Context) error
	Resume() error
	Close() error
}

func WithLiveClient(client live.Client) SessionOption {
	return func(s *Session) { s.client = client }
}

func WithAudioDevice(device AudioDevice) SessionOption {
	return func(s *Session) { s.device = device }
}

// WithCaptureDevice overrides the capture half of the audio device, keeping
// playback on the configured AudioDevice.
func WithCaptureDevice(device CaptureDevice) SessionOption {
	return func(s *Session) { s.captureDevice = device }
}

func WithModel(model string) SessionOption {
	return func(s *Session) { s.config.Model = model }
}

func WithVoice(voice string) SessionOption {
	return func(s *Session) { s.config.Voice = voice }
}

func WithInstruction(instruction string) SessionOption {
	return func(s *Session) { s.config.Instruction = instruction }
}

// WithLogCallback registers a callback for every appended transcript entry.
func WithLogCallback(callback func(entry LogEntry)) SessionOption {
	return func(s *Session) { s.log.SetCallback(callback) }
}

// WithSpeakingStateChangedCallback registers a callback for assistant
// speaking-state updates derived from the playback scheduler's live set.
func WithSpeakingStateChangedCallback(callback func(isSpeaking bool)) SessionOption {
	return func(s *Session) { s.onSpeakingChanged = callback }
}

// WithStateChangedCallback registers a callback for connection state
// transitions.
func WithStateChangedCallback(callback func(state ConnectionState)) SessionOption {
	return func(s *Session) { s.onStateChanged = callback }
}

func WithBookingConfirmedCallback(callback func(booking BookingDetails)) SessionOption {
	return func(s *Session) { s.onBookingConfirmed = callback }
}

func WithOrderConfirmedCallback(callback func(order OrderDetails)) SessionOption {
	return func(s *Session) { s.onOrderConfirmed = callback }
}
