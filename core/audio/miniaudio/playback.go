package miniaudio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"

	kiosk "github.com/anakkallumkal/kiosk-core/core"
	"github.com/anakkallumkal/kiosk-core/core/audio"
)

type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	// renderedBytes is the playback sample clock: every byte handed to the
	// device advances it, whether it carried speech or silence.
	renderedBytes int64
	scheduled     []*scheduledBuffer

	mu      sync.Mutex
	queueMu sync.Mutex
}

type scheduledBuffer struct {
	data    []byte
	startAt int64
	done    func()
	stopped bool
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sampleRate := uint32(audio.PlaybackSampleRate)
	channels := audio.DefaultChannels
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	c.config.Periods = 4

	c.audioContext = audioContext

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.processAudio(bytesPerFrame)},
	); err != nil {
		return err
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if c.device.IsStarted() {
		return nil
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

// Now reports the playback clock position. It only moves forward, and only
// while the device is rendering.
func (c *playbackClient) Now() time.Duration {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	return audio.DurationOfBytes(int(c.renderedBytes), audio.GetPlaybackEncodingInfo())
}

// Schedule places a buffer on the playback timeline at the given clock
// position. Buffers are expected not to overlap; gaps between them render
// as silence. The returned handle detaches the buffer from the timeline
// without firing its completion callback.
func (c *playbackClient) Schedule(buffer audio.PlaybackBuffer, start time.Duration, done func()) (kiosk.PlaybackHandle, error) {
	c.mu.Lock()
	device := c.device
	c.mu.Unlock()
	if device == nil {
		return nil, fmt.Errorf("device not initialized")
	}

	info := audio.GetPlaybackEncodingInfo()
	startAt := int64(audio.BytesOfDuration(start, info))
	bytesPerFrame := info.BytesPerSecond() / info.SampleRate
	startAt -= startAt % int64(bytesPerFrame)

	scheduled := &scheduledBuffer{
		data:    audio.EncodeFrame(buffer.Samples),
		startAt: startAt,
		done:    done,
	}

	c.queueMu.Lock()
	c.scheduled = append(c.scheduled, scheduled)
	c.queueMu.Unlock()

	return &playbackHandle{client: c, buffer: scheduled}, nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil || !c.device.IsStarted() {
		return nil
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}

	c.queueMu.Lock()
	c.scheduled = nil
	c.queueMu.Unlock()

	return nil
}

type playbackHandle struct {
	client *playbackClient
	buffer *scheduledBuffer
}

func (h *playbackHandle) Stop() {
	h.client.queueMu.Lock()
	defer h.client.queueMu.Unlock()
	h.buffer.stopped = true
}

// processAudio renders one device period: silence by default, overlaid with
// every scheduled buffer that intersects the period's byte window. Finished
// buffers fire their callbacks off the device thread.
func (c *playbackClient) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int64(frameCount) * int64(bytesPerFrame)
		if need == 0 || int64(len(pOutput)) < need {
			return
		}
		clear(pOutput[:need])

		c.queueMu.Lock()
		windowStart := c.renderedBytes
		windowEnd := windowStart + need
		c.renderedBytes = windowEnd

		var finished []*scheduledBuffer
		remaining := c.scheduled[:0]
		for _, buffer := range c.scheduled {
			if buffer.stopped {
				continue
			}

			bufferEnd := buffer.startAt + int64(len(buffer.data))
			from := max(buffer.startAt, windowStart)
			to := min(bufferEnd, windowEnd)
			if from < to {
				copy(pOutput[from-windowStart:to-windowStart], buffer.data[from-buffer.startAt:to-buffer.startAt])
			}

			if bufferEnd <= windowEnd {
				finished = append(finished, buffer)
				continue
			}
			remaining = append(remaining, buffer)
		}
		c.scheduled = remaining
		c.queueMu.Unlock()

		if len(finished) > 0 {
			go func() {
				for _, buffer := range finished {
					if buffer.done != nil {
						buffer.done()
					}
				}
			}()
		}
	}
}
