// Package portaudio provides an alternative capture device for hosts where
// the miniaudio backend cannot open the microphone.
package portaudio

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/anakkallumkal/kiosk-core/core/audio"
)

type Client struct {
	bufferSize int
	stream     *portaudio.Stream

	in []float32

	stop chan struct{}
	mu   sync.Mutex
}

func NewClient(bufferSize int) (*Client, error) {
	if bufferSize <= 0 {
		bufferSize = audio.CaptureFrameSamples
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	encodingInfo := audio.GetCaptureEncodingInfo()
	in := make([]float32, bufferSize)
	stream, err := portaudio.OpenDefaultStream(encodingInfo.Channels, 0, float64(encodingInfo.SampleRate), bufferSize, in)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open PortAudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
	}, nil
}

func (c *Client) StartCapture(ctx context.Context, onFrame func(samples []float32)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return nil
	}

	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start PortAudio stream: %w", err)
	}

	stop := make(chan struct{})
	c.stop = stop

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			default:
				if err := c.stream.Read(); err != nil {
					log.Printf("Failed to read from PortAudio stream: %v", err)
					continue
				}

				frame := make([]float32, len(c.in))
				copy(frame, c.in)
				onFrame(frame)
			}
		}
	}()

	return nil
}

func (c *Client) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return nil
	}

	close(c.stop)
	c.stop = nil

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop PortAudio stream: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	_ = c.StopCapture()
	err := c.stream.Close()
	if terminateErr := portaudio.Terminate(); err == nil {
		err = terminateErr
	}
	return err
}
