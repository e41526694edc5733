package audio

const (
	// CaptureSampleRate is the rate microphone audio is captured and
	// streamed to the model at.
	CaptureSampleRate = 16000
	// PlaybackSampleRate is the rate synthesized speech arrives at.
	PlaybackSampleRate = 24000
	// CaptureFrameSamples is the fixed length of one capture processing
	// frame.
	CaptureFrameSamples = 4096

	DefaultChannels = 1
	DefaultFormat   = "linear16"
)

func GetCaptureEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: CaptureSampleRate, Channels: DefaultChannels, Format: encodingFormat(DefaultFormat)}
}

func GetPlaybackEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: PlaybackSampleRate, Channels: DefaultChannels, Format: encodingFormat(DefaultFormat)}
}

type EncodingInfo struct {
	SampleRate int
	Channels   int
	Format     encodingFormat
}

// BytesPerSecond reports the wire byte rate of this encoding.
func (e EncodingInfo) BytesPerSecond() int {
	channels := e.Channels
	if channels == 0 {
		channels = DefaultChannels
	}
	return e.SampleRate * channels * e.Format.ByteSize()
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case encodingFormat("linear16"):
		return 2
	}
	return -1
}

const (
	EncodingLinear16 encodingFormat = "linear16"
)
