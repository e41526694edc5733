package gemini

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/anakkallumkal/kiosk-core/core/live"
)

type liveSession struct {
	conn            *websocket.Conn
	callbacks       live.Callbacks
	inputSampleRate int

	connMu    sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool
}

func (s *liveSession) SendAudio(frame []byte) error {
	if err := s.writeJSON(buildRealtimeInput(frame, s.inputSampleRate)); err != nil {
		return fmt.Errorf("failed to write audio to gemini: %w", err)
	}
	return nil
}

func (s *liveSession) SendToolResult(result live.ToolCallResult) error {
	if err := s.writeJSON(buildToolResponse(result)); err != nil {
		return fmt.Errorf("failed to write tool response to gemini: %w", err)
	}
	return nil
}

func (s *liveSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)

		s.connMu.Lock()
		_ = s.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		s.connMu.Unlock()

		err = s.conn.Close()
	})
	return err
}

func (s *liveSession) writeJSON(message any) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.conn.WriteJSON(message)
}

// readAndProcessMessages drains the socket until it fails or closes. Every
// termination reports through exactly one of OnClose or OnError.
func (s *liveSession) readAndProcessMessages() {
	opened := false

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			_ = s.conn.Close()
			if s.closed.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if s.callbacks.OnClose != nil {
					s.callbacks.OnClose()
				}
			} else if s.callbacks.OnError != nil {
				s.callbacks.OnError(&live.RuntimeError{Err: err})
			}
			return
		}

		events, setupComplete, err := parseServerMessage(raw)
		if err != nil {
			logger.Warn("dropping unparsable gemini message", "error", err)
		}

		if setupComplete && !opened {
			opened = true
			if s.callbacks.OnOpen != nil {
				s.callbacks.OnOpen()
			}
		}

		for _, event := range events {
			if s.callbacks.OnEvent != nil {
				s.callbacks.OnEvent(event)
			}
		}
	}
}
