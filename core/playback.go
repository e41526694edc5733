package kiosk

import (
	"fmt"
	"sync"
	"time"

	"github.com/anakkallumkal/kiosk-core/core/audio"
	"github.com/google/uuid"
)

// playbackScheduler owns the monotonic "next start time" cursor and the set
// of in-flight playback handles. Buffers are scheduled back-to-back so
// sequential chunks render gaplessly; an interruption hard-stops everything
// and resets the cursor to zero.
type playbackScheduler struct {
	mu sync.Mutex

	device PlaybackDevice

	cursor time.Duration
	live   map[string]PlaybackHandle
	// generation invalidates schedules that were in flight when an
	// interrupt arrived.
	generation uint64

	onSpeakingChanged func(isSpeaking bool)
}

func newPlaybackScheduler(device PlaybackDevice) *playbackScheduler {
	return &playbackScheduler{
		device:            device,
		live:              map[string]PlaybackHandle{},
		onSpeakingChanged: func(bool) {},
	}
}

func (s *playbackScheduler) SetCallbacks(onSpeakingChanged func(isSpeaking bool)) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if onSpeakingChanged != nil {
		s.onSpeakingChanged = onSpeakingChanged
	}
}

// Enqueue schedules the buffer to start at max(cursor, device clock) and
// advances the cursor by the buffer's duration.
func (s *playbackScheduler) Enqueue(buffer audio.PlaybackBuffer) error {
	if s == nil || s.device == nil {
		return nil
	}

	s.mu.Lock()
	start := s.cursor
	if now := s.device.Now(); now > start {
		start = now
	}
	s.cursor = start + buffer.Duration()

	id := uuid.NewString()
	s.live[id] = nil
	generation := s.generation
	wasIdle := len(s.live) == 1
	onSpeakingChanged := s.onSpeakingChanged
	s.mu.Unlock()

	if wasIdle {
		onSpeakingChanged(true)
	}

	handle, err := s.device.Schedule(buffer, start, func() { s.finish(id) })
	if err != nil {
		s.finish(id)
		return fmt.Errorf("failed to schedule playback buffer: %w", err)
	}

	s.mu.Lock()
	if s.generation != generation {
		// An interrupt raced the schedule; this buffer must not play.
		delete(s.live, id)
		s.mu.Unlock()
		handle.Stop()
		return nil
	}
	if _, ok := s.live[id]; ok {
		s.live[id] = handle
	}
	s.mu.Unlock()

	return nil
}

// finish removes one handle from the live set, exactly once per handle.
func (s *playbackScheduler) finish(id string) {
	s.mu.Lock()
	if _, ok := s.live[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.live, id)
	idle := len(s.live) == 0
	onSpeakingChanged := s.onSpeakingChanged
	s.mu.Unlock()

	if idle {
		onSpeakingChanged(false)
	}
}

// Interrupt force-stops every live handle, clears the set, and resets the
// cursor to zero. Safe to call at any time, including when nothing is
// playing.
func (s *playbackScheduler) Interrupt() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.generation++
	handles := make([]PlaybackHandle, 0, len(s.live))
	for _, handle := range s.live {
		if handle != nil {
			handles = append(handles, handle)
		}
	}
	wasLive := len(s.live) > 0
	s.live = map[string]PlaybackHandle{}
	s.cursor = 0
	onSpeakingChanged := s.onSpeakingChanged
	s.mu.Unlock()

	for _, handle := range handles {
		handle.Stop()
	}
	if wasLive {
		onSpeakingChanged(false)
	}
}

// IsSpeaking reports whether any playback is currently in flight.
func (s *playbackScheduler) IsSpeaking() bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live) > 0
}

func (s *playbackScheduler) cursorPosition() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *playbackScheduler) liveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
