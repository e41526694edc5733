package kiosk

import (
	"context"
	"sync"
	"testing"

	"github.com/anakkallumkal/kiosk-core/core/audio"
)

type fakeCaptureDevice struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	onFrame    func(samples []float32)

	startErr error
	stopErr  error
}

func (d *fakeCaptureDevice) StartCapture(_ context.Context, onFrame func(samples []float32)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.startErr != nil {
		return d.startErr
	}
	d.startCalls++
	d.onFrame = onFrame
	return nil
}

func (d *fakeCaptureDevice) StopCapture() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopErr != nil {
		return d.stopErr
	}
	d.stopCalls++
	d.onFrame = nil
	return nil
}

func (d *fakeCaptureDevice) deliver(samples []float32) {
	d.mu.Lock()
	onFrame := d.onFrame
	d.mu.Unlock()
	if onFrame != nil {
		onFrame(samples)
	}
}

func TestCaptureForwardsFramesOnlyWhileGateOpen(t *testing.T) {
	device := &fakeCaptureDevice{}
	gateOpen := false

	var mu sync.Mutex
	var forwarded [][]byte
	pipeline := newCapturePipeline(device,
		func() bool { return gateOpen },
		func(frame []byte) {
			mu.Lock()
			defer mu.Unlock()
			forwarded = append(forwarded, frame)
		},
	)

	if err := pipeline.Start(context.Background()); err != nil {
		t.Fatalf("expected capture to start, got %v", err)
	}

	samples := []float32{0, 0.5, -0.5, 1}
	device.deliver(samples)

	mu.Lock()
	if len(forwarded) != 0 {
		mu.Unlock()
		t.Fatalf("expected no frames forwarded while disconnected, got %d", len(forwarded))
	}
	mu.Unlock()

	gateOpen = true
	device.deliver(samples)
	gateOpen = false
	device.deliver(samples)

	mu.Lock()
	defer mu.Unlock()
	if len(forwarded) != 1 {
		t.Fatalf("expected exactly 1 frame forwarded while connected, got %d", len(forwarded))
	}

	want := audio.EncodeFrame(samples)
	if len(forwarded[0]) != len(want) {
		t.Fatalf("expected %d encoded bytes, got %d", len(want), len(forwarded[0]))
	}
	for i := range want {
		if forwarded[0][i] != want[i] {
			t.Fatalf("expected encoded frame byte %d to be %d, got %d", i, want[i], forwarded[0][i])
		}
	}
}

func TestCaptureStartIsIdempotent(t *testing.T) {
	device := &fakeCaptureDevice{}
	pipeline := newCapturePipeline(device, func() bool { return true }, func([]byte) {})

	if err := pipeline.Start(context.Background()); err != nil {
		t.Fatalf("expected first start to succeed, got %v", err)
	}
	if err := pipeline.Start(context.Background()); err != nil {
		t.Fatalf("expected repeated start to be a no-op, got %v", err)
	}

	if device.startCalls != 1 {
		t.Fatalf("expected the device to be started once, got %d", device.startCalls)
	}
}

func TestCaptureStopIsIdempotent(t *testing.T) {
	device := &fakeCaptureDevice{}
	pipeline := newCapturePipeline(device, func() bool { return true }, func([]byte) {})

	if err := pipeline.Stop(); err != nil {
		t.Fatalf("expected stop before start to be a no-op, got %v", err)
	}

	if err := pipeline.Start(context.Background()); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if err := pipeline.Stop(); err != nil {
		t.Fatalf("expected stop to succeed, got %v", err)
	}
	if err := pipeline.Stop(); err != nil {
		t.Fatalf("expected repeated stop to be a no-op, got %v", err)
	}

	if device.stopCalls != 1 {
		t.Fatalf("expected the device to be stopped once, got %d", device.stopCalls)
	}
}

func TestCaptureStartFailureAllowsRetry(t *testing.T) {
	device := &fakeCaptureDevice{startErr: errFake}
	pipeline := newCapturePipeline(device, func() bool { return true }, func([]byte) {})

	if err := pipeline.Start(context.Background()); err == nil {
		t.Fatal("expected start to fail when the device refuses")
	}

	device.mu.Lock()
	device.startErr = nil
	device.mu.Unlock()

	if err := pipeline.Start(context.Background()); err != nil {
		t.Fatalf("expected retry after failure to succeed, got %v", err)
	}
	if device.startCalls != 1 {
		t.Fatalf("expected 1 successful device start, got %d", device.startCalls)
	}
}
