// Package kiosk implements the real-time voice session core for the cafe
// kiosk: microphone capture streamed to a live conversational transport,
// gapless playback of synthesized speech with interruption handling, and
// dispatch of the model's structured tool calls into booking/order state.
package kiosk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/anakkallumkal/kiosk-core/core/audio"
	"github.com/anakkallumkal/kiosk-core/core/live"
)

const (
	DefaultModel = "gemini-2.5-flash-native-audio-preview-09-2025"
	DefaultVoice = "Kore"
)

// Session owns the connection lifecycle and every per-connection resource:
// the transport handle, the audio device, the capture pipeline and the
// playback scheduler. All state transitions go through it; collaborators
// only query it.
type Session struct {
	mu    sync.Mutex
	state ConnectionState

	client live.Client
	handle live.Session
	config live.Config

	device        AudioDevice
	captureDevice CaptureDevice

	capture    *capturePipeline
	scheduler  *playbackScheduler
	dispatcher *toolDispatcher
	log        *sessionLog

	baseContext context.Context
	// teardownOnce guards per-attempt resource release so racing
	// termination paths (remote close after local disconnect) release
	// everything exactly once.
	teardownOnce *sync.Once

	onSpeakingChanged  func(isSpeaking bool)
	onStateChanged     func(state ConnectionState)
	onBookingConfirmed func(booking BookingDetails)
	onOrderConfirmed   func(order OrderDetails)
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		state: StateDisconnected,
		config: live.Config{
			Model:            DefaultModel,
			Voice:            DefaultVoice,
			InputSampleRate:  audio.CaptureSampleRate,
			OutputSampleRate: audio.PlaybackSampleRate,
			Tools:            kioskTools(),
		},
		log:                newSessionLog(),
		baseContext:        context.Background(),
		onSpeakingChanged:  func(bool) {},
		onStateChanged:     func(ConnectionState) {},
		onBookingConfirmed: func(BookingDetails) {},
		onOrderConfirmed:   func(OrderDetails) {},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.captureDevice == nil {
		s.captureDevice = s.device
	}

	s.scheduler = newPlaybackScheduler(s.device)
	s.scheduler.SetCallbacks(func(isSpeaking bool) { s.onSpeakingChanged(isSpeaking) })
	s.capture = newCapturePipeline(s.captureDevice, s.IsConnected, s.sendFrame)
	s.dispatcher = newToolDispatcher(s.log)
	s.dispatcher.SetCallbacks(s.onBookingConfirmed, s.onOrderConfirmed)

	return s
}

// Connect opens the audio device and the live transport session. It is a
// no-op while a connection attempt is already in flight or established, and
// a missing transport credential blocks the attempt entirely, leaving the
// state untouched.
func (s *Session) Connect(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "connect session")
	defer span.End()

	if s.client == nil {
		return fmt.Errorf("no live client configured")
	}

	if ready, ok := s.client.(interface{ Ready() error }); ok {
		if err := ready.Ready(); err != nil {
			s.log.Append(SenderSystem, SeverityWarning, "API Key missing!")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	s.mu.Lock()
	if s.state == StateConnecting || s.state == StateConnected {
		s.mu.Unlock()
		return nil
	}
	s.state = StateConnecting
	attempt := &sync.Once{}
	s.teardownOnce = attempt
	s.baseContext = ctx
	onStateChanged := s.onStateChanged
	s.mu.Unlock()
	onStateChanged(StateConnecting)

	s.log.Append(SenderSystem, SeverityInfo, "Connecting to Babu Joseph...")

	if s.device != nil {
		if err := s.device.Open(ctx); err != nil {
			err = fmt.Errorf("microphone unavailable: %w", err)
			s.failAttempt(span, err)
			return err
		}
	}

	handle, err := s.client.Open(ctx, s.config, live.Callbacks{
		OnOpen:  s.onTransportOpen,
		OnEvent: s.onServerEvent,
		OnClose: s.onTransportClose,
		OnError: s.onTransportError,
	})
	if err != nil {
		s.failAttempt(span, err)
		return err
	}

	s.mu.Lock()
	if s.state != StateConnecting || s.teardownOnce != attempt {
		// The attempt was torn down while the transport was still
		// opening; its resources are already released, so the late
		// handle must be closed here or it leaks.
		s.mu.Unlock()
		_ = handle.Close()
		return nil
	}
	s.handle = handle
	s.mu.Unlock()

	return nil
}

// Disconnect tears the session down and additionally discards all
// in-memory session state so the next connection starts clean.
func (s *Session) Disconnect() {
	s.mu.Lock()
	handle := s.handle
	changed := s.state != StateDisconnected
	s.state = StateDisconnected
	onStateChanged := s.onStateChanged
	s.mu.Unlock()
	if changed {
		onStateChanged(StateDisconnected)
	}

	if handle != nil {
		_ = handle.Close()
	}
	s.teardown()

	s.log.Reset()
	s.dispatcher.Reset()
}

func (s *Session) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsConnected is the authoritative connected query; the capture pipeline
// consults it before every forwarded frame.
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateConnected
}

func (s *Session) IsSpeaking() bool { return s.scheduler.IsSpeaking() }

// Logs returns a point-in-time copy of the session transcript.
func (s *Session) Logs() []LogEntry { return s.log.Entries() }

func (s *Session) ActiveBooking() *BookingDetails { return s.dispatcher.ActiveBooking() }
func (s *Session) ActiveOrder() *OrderDetails     { return s.dispatcher.ActiveOrder() }

func (s *Session) onTransportOpen() {
	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		return
	}
	s.state = StateConnected
	onStateChanged := s.onStateChanged
	ctx := s.baseContext
	s.mu.Unlock()
	onStateChanged(StateConnected)

	s.log.Append(SenderSystem, SeveritySuccess, "Connected! Say Namaskaaram.")

	if s.device != nil {
		if err := s.device.Resume(); err != nil {
			logger.Warn("failed to resume audio device", "error", err)
		}
	}

	if err := s.capture.Start(ctx); err != nil {
		s.log.Append(SenderSystem, SeverityWarning, fmt.Sprintf("Microphone capture failed: %v", err))
	}
}

// onServerEvent is the single dispatch point for the inbound event union.
// Events arrive in order from the transport's read loop.
func (s *Session) onServerEvent(event live.ServerEvent) {
	switch e := event.(type) {
	case live.AudioChunkEvent:
		s.playChunk(e.Data)

	case live.InterruptedEvent:
		s.scheduler.Interrupt()
		s.log.Append(SenderSystem, SeverityInfo, "User interrupted.")

	case live.ToolCallEvent:
		for _, call := range e.Calls {
			s.log.Append(SenderAssistant, SeverityInfo, fmt.Sprintf("Babu is processing: %s", call.Name))
			result := s.dispatcher.Handle(call)
			s.sendToolResult(result)
		}

	case live.TurnCompleteEvent:
		// Playback drains on its own; the scheduler's idle signal marks
		// the end of speech.
	}
}

// playChunk decodes one inbound chunk and hands it to the scheduler. A
// malformed chunk is logged and dropped; the session keeps running.
func (s *Session) playChunk(data []byte) {
	samples, err := audio.DecodeFrame(data)
	if err != nil {
		s.log.Append(SenderSystem, SeverityWarning, fmt.Sprintf("Dropped malformed audio chunk: %v", err))
		return
	}

	buffer, err := audio.BuildPlaybackBuffer(samples, s.config.OutputSampleRate, audio.DefaultChannels)
	if err != nil {
		s.log.Append(SenderSystem, SeverityWarning, fmt.Sprintf("Dropped unplayable audio chunk: %v", err))
		return
	}

	if err := s.scheduler.Enqueue(buffer); err != nil {
		logger.Warn("failed to enqueue playback buffer", "error", err)
	}
}

// sendToolResult is fire-and-forget: a failed send is logged, never fatal,
// so the dispatcher's exactly-once handling is preserved regardless.
func (s *Session) sendToolResult(result live.ToolCallResult) {
	s.mu.Lock()
	handle := s.handle
	s.mu.Unlock()

	if handle == nil {
		return
	}
	if err := handle.SendToolResult(result); err != nil {
		s.log.Append(SenderSystem, SeverityWarning, fmt.Sprintf("Failed to send tool result for %s: %v", result.Name, err))
	}
}

func (s *Session) sendFrame(frame []byte) {
	s.mu.Lock()
	handle := s.handle
	connected := s.state == StateConnected
	s.mu.Unlock()

	if !connected || handle == nil {
		return
	}
	if err := handle.SendAudio(frame); err != nil {
		logger.Warn("failed to send capture frame", "error", err)
	}
}

func (s *Session) onTransportClose() {
	s.mu.Lock()
	wasConnected := s.state == StateConnected
	if wasConnected {
		s.state = StateDisconnected
	}
	onStateChanged := s.onStateChanged
	s.mu.Unlock()

	if wasConnected {
		onStateChanged(StateDisconnected)
		s.log.Append(SenderSystem, SeverityInfo, "Connection closed.")
	}

	s.teardown()
}

func (s *Session) onTransportError(err error) {
	s.mu.Lock()
	changed := s.state != StateError
	s.state = StateError
	onStateChanged := s.onStateChanged
	s.mu.Unlock()
	if changed {
		onStateChanged(StateError)
	}

	s.log.Append(SenderSystem, SeverityWarning, fmt.Sprintf("Session Error: %v", err))
	s.teardown()
}

func (s *Session) failAttempt(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	s.mu.Lock()
	changed := s.state != StateError
	s.state = StateError
	onStateChanged := s.onStateChanged
	s.mu.Unlock()
	if changed {
		onStateChanged(StateError)
	}

	s.log.Append(SenderSystem, SeverityWarning, fmt.Sprintf("Connection failed: %v", err))
	s.teardown()
}

// teardown releases every per-connection resource: capture stopped, device
// closed, playback cleared. It is guarded per attempt so any combination of
// exit paths releases exactly once, and it tolerates partial initialization.
func (s *Session) teardown() {
	s.mu.Lock()
	once := s.teardownOnce
	ctx := s.baseContext
	s.mu.Unlock()
	if once == nil {
		return
	}

	once.Do(func() {
		var errs error
		if err := s.capture.Stop(); err != nil {
			errs = errors.Join(errs, err)
		}

		s.scheduler.Interrupt()

		if s.device != nil {
			if err := s.device.Close(); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		s.mu.Lock()
		s.handle = nil
		s.mu.Unlock()

		if errs != nil {
			recordedErr := fmt.Errorf("failed to release session resources: %w", errs)
			span := trace.SpanFromContext(ctx)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}
	})
}
