// Package miniaudio provides the default audio device for the kiosk,
// backed by the miniaudio library: a 16kHz float32 capture device and a
// 24kHz s16le playback device with sample-clock scheduling.
package miniaudio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
	playbackClient
	captureClient

	mu sync.Mutex
}

func NewClient() *Client {
	return &Client{}
}

// Open initializes the audio backend and both devices. It is a no-op when
// the backend is already initialized, so repeated connection attempts can
// share one context.
func (c *Client) Open(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.audioContext != nil {
		return nil
	}

	audioCtx, err := malgo.InitContext(
		nil,
		malgo.ContextConfig{},
		func(message string) {},
	)
	if err != nil {
		return fmt.Errorf("failed to initialize audio backend: %w", err)
	}
	c.audioContext = audioCtx

	if err := c.playbackClient.Init(audioCtx); err != nil {
		c.closeLocked()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := c.captureClient.Init(audioCtx); err != nil {
		c.closeLocked()
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}

	return nil
}

// Resume starts the playback device. Some backends refuse to start output
// before an input gesture, so this is deferred until the session is open.
func (c *Client) Resume() error {
	return c.playbackClient.Start()
}

func (c *Client) StartCapture(_ context.Context, onFrame func(samples []float32)) error {
	return c.captureClient.Start(onFrame)
}

func (c *Client) StopCapture() error {
	return c.captureClient.Stop()
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	if c.audioContext == nil {
		return nil
	}

	err := errors.Join(
		c.captureClient.Uninit(),
		c.playbackClient.Uninit(),
		c.audioContext.Uninit(),
	)
	c.audioContext.Free()
	c.audioContext = nil
	return err
}
