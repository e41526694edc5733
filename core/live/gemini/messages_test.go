package gemini

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/invopop/jsonschema"

	"github.com/anakkallumkal/kiosk-core/core/live"
)

func TestBuildSetupCarriesModelVoiceAndTools(t *testing.T) {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&struct {
		Date string `json:"date"`
	}{})

	message, err := buildSetup(live.Config{
		Model:       "gemini-2.5-flash-native-audio-preview-09-2025",
		Voice:       "Kore",
		Instruction: "You are Babu Joseph.",
		Tools: []live.ToolDeclaration{{
			Name:        "confirmBooking",
			Description: "Confirms a table booking.",
			Parameters:  schema,
		}},
	})
	if err != nil {
		t.Fatalf("expected setup to build, got %v", err)
	}

	raw, err := json.Marshal(message)
	if err != nil {
		t.Fatalf("expected setup to marshal, got %v", err)
	}
	payload := string(raw)

	for _, fragment := range []string{
		`"model":"models/gemini-2.5-flash-native-audio-preview-09-2025"`,
		`"responseModalities":["AUDIO"]`,
		`"voiceName":"Kore"`,
		`"text":"You are Babu Joseph."`,
		`"name":"confirmBooking"`,
		`"parametersJsonSchema":`,
	} {
		if !strings.Contains(payload, fragment) {
			t.Fatalf("expected setup payload to contain %s, got %s", fragment, payload)
		}
	}
}

func TestBuildRealtimeInputEncodesFrame(t *testing.T) {
	frame := []byte{0x01, 0x02, 0x03, 0x04}

	message := buildRealtimeInput(frame, 16000)

	chunks := message.RealtimeInput.MediaChunks
	if len(chunks) != 1 {
		t.Fatalf("expected 1 media chunk, got %d", len(chunks))
	}
	if chunks[0].MIMEType != "audio/pcm;rate=16000" {
		t.Fatalf("expected the capture mime type, got %q", chunks[0].MIMEType)
	}
	if chunks[0].Data != base64.StdEncoding.EncodeToString(frame) {
		t.Fatalf("expected base64 frame data, got %q", chunks[0].Data)
	}
}

func TestParseServerMessageSetupComplete(t *testing.T) {
	events, setupComplete, err := parseServerMessage([]byte(`{"setupComplete":{}}`))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if !setupComplete {
		t.Fatal("expected setupComplete to be reported")
	}
	if len(events) != 0 {
		t.Fatalf("expected no content events, got %d", len(events))
	}
}

func TestParseServerMessageAudioAndTurnComplete(t *testing.T) {
	pcm := []byte{0x00, 0x01, 0x00, 0x02}
	raw := `{"serverContent":{"modelTurn":{"parts":[{"inlineData":{"mimeType":"audio/pcm;rate=24000","data":"` +
		base64.StdEncoding.EncodeToString(pcm) + `"}}]},"turnComplete":true}}`

	events, _, err := parseServerMessage([]byte(raw))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	chunk, ok := events[0].(live.AudioChunkEvent)
	if !ok {
		t.Fatalf("expected the first event to be an audio chunk, got %T", events[0])
	}
	if len(chunk.Data) != len(pcm) {
		t.Fatalf("expected %d decoded bytes, got %d", len(pcm), len(chunk.Data))
	}
	if _, ok := events[1].(live.TurnCompleteEvent); !ok {
		t.Fatalf("expected the second event to complete the turn, got %T", events[1])
	}
}

func TestParseServerMessageInterruptedPrecedesAudio(t *testing.T) {
	raw := `{"serverContent":{"interrupted":true,"modelTurn":{"parts":[{"inlineData":{"mimeType":"audio/pcm","data":"AAA="}}]}}}`

	events, _, err := parseServerMessage([]byte(raw))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if _, ok := events[0].(live.InterruptedEvent); !ok {
		t.Fatalf("expected the interruption first, got %T", events[0])
	}
}

func TestParseServerMessageToolCall(t *testing.T) {
	raw := `{"toolCall":{"functionCalls":[{"id":"call-1","name":"confirmOrder","args":{"items":["Beef Roast"],"address":"Pala"}}]}}`

	events, _, err := parseServerMessage([]byte(raw))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	toolCall, ok := events[0].(live.ToolCallEvent)
	if !ok {
		t.Fatalf("expected a tool call event, got %T", events[0])
	}
	if len(toolCall.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(toolCall.Calls))
	}
	call := toolCall.Calls[0]
	if call.ID != "call-1" || call.Name != "confirmOrder" {
		t.Fatalf("expected call identity to be parsed, got %+v", call)
	}
	if call.Args["address"] != "Pala" {
		t.Fatalf("expected call arguments to be parsed, got %v", call.Args)
	}
}

func TestParseServerMessageRejectsInvalidPayloads(t *testing.T) {
	if _, _, err := parseServerMessage([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for malformed json")
	}

	raw := `{"serverContent":{"modelTurn":{"parts":[{"inlineData":{"mimeType":"audio/pcm","data":"!!!"}}]}}}`
	if _, _, err := parseServerMessage([]byte(raw)); err == nil {
		t.Fatal("expected an error for malformed base64 audio")
	}
}

func TestBuildToolResponseWrapsResult(t *testing.T) {
	message := buildToolResponse(live.ToolCallResult{
		ID:       "call-1",
		Name:     "confirmBooking",
		Response: map[string]any{"status": "confirmed"},
	})

	responses := message.ToolResponse.FunctionResponses
	if len(responses) != 1 {
		t.Fatalf("expected 1 function response, got %d", len(responses))
	}
	if responses[0].ID != "call-1" || responses[0].Name != "confirmBooking" {
		t.Fatalf("expected the result identity to be carried, got %+v", responses[0])
	}
	if responses[0].Response["status"] != "confirmed" {
		t.Fatalf("expected the result payload to be carried, got %v", responses[0].Response)
	}
}
