package kiosk

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/anakkallumkal/kiosk-core/core/audio"
)

// capturePipeline owns the microphone frame stream. Every delivered frame is
// encoded and forwarded to the sink, but only while the gate reports the
// session as connected; frames outside that window are dropped, never
// queued.
type capturePipeline struct {
	device CaptureDevice

	// gate is the authoritative connected query, consulted before every
	// forward.
	gate func() bool
	sink func(frame []byte)

	started atomic.Bool
}

func newCapturePipeline(device CaptureDevice, gate func() bool, sink func(frame []byte)) *capturePipeline {
	if gate == nil {
		gate = func() bool { return false }
	}
	if sink == nil {
		sink = func([]byte) {}
	}

	return &capturePipeline{device: device, gate: gate, sink: sink}
}

func (p *capturePipeline) Start(ctx context.Context) error {
	if p == nil || p.device == nil {
		return nil
	}

	if !p.started.CompareAndSwap(false, true) {
		return nil
	}

	if err := p.device.StartCapture(ctx, p.onFrame); err != nil {
		p.started.Store(false)
		return fmt.Errorf("failed to start capture: %w", err)
	}

	return nil
}

// Stop detaches the frame processor and releases the stream. Idempotent.
func (p *capturePipeline) Stop() error {
	if p == nil || p.device == nil {
		return nil
	}

	if !p.started.CompareAndSwap(true, false) {
		return nil
	}

	if err := p.device.StopCapture(); err != nil {
		return fmt.Errorf("failed to stop capture: %w", err)
	}

	return nil
}

func (p *capturePipeline) onFrame(samples []float32) {
	if !p.gate() {
		return
	}

	p.sink(audio.EncodeFrame(samples))
}
