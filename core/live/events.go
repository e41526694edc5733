package live

type EventKind string

const (
	// KindAudioChunk identifies an inbound chunk of synthesized speech.
	KindAudioChunk EventKind = "audio_chunk"
	// KindInterrupted identifies the user talking over the assistant.
	KindInterrupted EventKind = "interrupted"
	// KindToolCall identifies a batch of structured function calls.
	KindToolCall EventKind = "tool_call"
	// KindTurnComplete identifies the end of one assistant turn.
	KindTurnComplete EventKind = "turn_complete"
)

// ServerEvent is the tagged union of inbound session events. One dispatch
// loop consumes these in arrival order.
type ServerEvent interface {
	Kind() EventKind
}

// AudioChunkEvent carries encoded playback audio at the session's declared
// output sample rate.
type AudioChunkEvent struct {
	Data []byte
}

func (AudioChunkEvent) Kind() EventKind { return KindAudioChunk }

// InterruptedEvent signals that everything scheduled for playback should be
// stopped immediately.
type InterruptedEvent struct{}

func (InterruptedEvent) Kind() EventKind { return KindInterrupted }

// ToolCallEvent carries one or more function calls to dispatch.
type ToolCallEvent struct {
	Calls []ToolCallRequest
}

func (ToolCallEvent) Kind() EventKind { return KindToolCall }

// TurnCompleteEvent marks the model's turn as finished.
type TurnCompleteEvent struct{}

func (TurnCompleteEvent) Kind() EventKind { return KindTurnComplete }
