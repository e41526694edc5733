package gemini

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/anakkallumkal/kiosk-core/core/live"
)

type setupMessage struct {
	Setup setupPayload `json:"setup"`
}

type setupPayload struct {
	Model             string           `json:"model"`
	GenerationConfig  generationConfig `json:"generationConfig"`
	SystemInstruction *messageContent  `json:"systemInstruction,omitempty"`
	Tools             []toolPayload    `json:"tools,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type messageContent struct {
	Parts []messagePart `json:"parts"`
}

type messagePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type toolPayload struct {
	FunctionDeclarations []functionDeclaration `json:"functionDeclarations"`
}

type functionDeclaration struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// ParametersJSONSchema carries a raw JSON Schema so reflected schemas
	// pass through without case conversion.
	ParametersJSONSchema json.RawMessage `json:"parametersJsonSchema,omitempty"`
}

type realtimeInputMessage struct {
	RealtimeInput realtimeInput `json:"realtimeInput"`
}

type realtimeInput struct {
	MediaChunks []inlineData `json:"mediaChunks"`
}

type toolResponseMessage struct {
	ToolResponse toolResponse `json:"toolResponse"`
}

type toolResponse struct {
	FunctionResponses []functionResponse `json:"functionResponses"`
}

type functionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type serverMessage struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *serverContent `json:"serverContent,omitempty"`
	ToolCall      *toolCall      `json:"toolCall,omitempty"`
}

type serverContent struct {
	ModelTurn    *messageContent `json:"modelTurn,omitempty"`
	Interrupted  bool            `json:"interrupted,omitempty"`
	TurnComplete bool            `json:"turnComplete,omitempty"`
}

type toolCall struct {
	FunctionCalls []functionCall `json:"functionCalls"`
}

type functionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

func buildSetup(config live.Config) (setupMessage, error) {
	message := setupMessage{Setup: setupPayload{
		Model: "models/" + config.Model,
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
		},
	}}

	if config.Voice != "" {
		message.Setup.GenerationConfig.SpeechConfig = &speechConfig{
			VoiceConfig: voiceConfig{
				PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: config.Voice},
			},
		}
	}

	if config.Instruction != "" {
		message.Setup.SystemInstruction = &messageContent{
			Parts: []messagePart{{Text: config.Instruction}},
		}
	}

	if len(config.Tools) > 0 {
		declarations := make([]functionDeclaration, 0, len(config.Tools))
		for _, tool := range config.Tools {
			schema, err := json.Marshal(tool.Parameters)
			if err != nil {
				return setupMessage{}, fmt.Errorf("failed to marshal schema for tool %q: %w", tool.Name, err)
			}
			declarations = append(declarations, functionDeclaration{
				Name:                 tool.Name,
				Description:          tool.Description,
				ParametersJSONSchema: schema,
			})
		}
		message.Setup.Tools = []toolPayload{{FunctionDeclarations: declarations}}
	}

	return message, nil
}

func buildRealtimeInput(frame []byte, sampleRate int) realtimeInputMessage {
	return realtimeInputMessage{RealtimeInput: realtimeInput{
		MediaChunks: []inlineData{{
			MIMEType: fmt.Sprintf("audio/pcm;rate=%d", sampleRate),
			Data:     base64.StdEncoding.EncodeToString(frame),
		}},
	}}
}

func buildToolResponse(result live.ToolCallResult) toolResponseMessage {
	return toolResponseMessage{ToolResponse: toolResponse{
		FunctionResponses: []functionResponse{{
			ID:       result.ID,
			Name:     result.Name,
			Response: result.Response,
		}},
	}}
}

// parseServerMessage converts one inbound frame into ordered transport
// events. The setupComplete flag is reported separately because it marks
// the session open rather than carrying content.
func parseServerMessage(raw []byte) (events []live.ServerEvent, setupComplete bool, err error) {
	var message serverMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal gemini message: %w", err)
	}

	if message.SetupComplete != nil {
		setupComplete = true
	}

	if message.ToolCall != nil && len(message.ToolCall.FunctionCalls) > 0 {
		calls := make([]live.ToolCallRequest, 0, len(message.ToolCall.FunctionCalls))
		for _, call := range message.ToolCall.FunctionCalls {
			calls = append(calls, live.ToolCallRequest{
				ID:   call.ID,
				Name: call.Name,
				Args: call.Args,
			})
		}
		events = append(events, live.ToolCallEvent{Calls: calls})
	}

	if content := message.ServerContent; content != nil {
		if content.Interrupted {
			events = append(events, live.InterruptedEvent{})
		}

		if content.ModelTurn != nil {
			for _, part := range content.ModelTurn.Parts {
				if part.InlineData == nil || part.InlineData.Data == "" {
					continue
				}
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return events, setupComplete, fmt.Errorf("failed to decode audio payload: %w", err)
				}
				events = append(events, live.AudioChunkEvent{Data: data})
			}
		}

		if content.TurnComplete {
			events = append(events, live.TurnCompleteEvent{})
		}
	}

	return events, setupComplete, nil
}
