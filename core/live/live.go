// Package live defines the contract the kiosk session manager needs from a
// bidirectional conversational transport: open a stream with a declared
// configuration, push raw audio frames in, receive a tagged stream of
// server events, and push tool results back.
package live

import (
	"context"

	"github.com/invopop/jsonschema"
)

// Client opens live sessions against one conversational backend.
type Client interface {
	Open(ctx context.Context, config Config, callbacks Callbacks) (Session, error)
}

// Session is one open bidirectional stream. SendAudio and SendToolResult are
// fire-and-forget; Close is safe to call more than once.
type Session interface {
	SendAudio(frame []byte) error
	SendToolResult(result ToolCallResult) error
	Close() error
}

// Callbacks are registered at open time and invoked from the session's read
// loop, in arrival order. Exactly one of OnClose or OnError fires when the
// stream ends.
type Callbacks struct {
	OnOpen  func()
	OnEvent func(event ServerEvent)
	OnClose func()
	OnError func(err error)
}

// Config declares what the session should be opened with. The response
// modality is always audio.
type Config struct {
	Model       string
	Instruction string
	Voice       string

	InputSampleRate  int
	OutputSampleRate int

	Tools []ToolDeclaration
}

// ToolDeclaration describes one callable function exposed to the model.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// ToolCallRequest is one structured function call issued by the model. The
// consumer must produce exactly one matching ToolCallResult per request.
type ToolCallRequest struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolCallResult is the structured answer sent back for one request.
type ToolCallResult struct {
	ID       string
	Name     string
	Response map[string]any
}
