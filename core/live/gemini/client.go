// Package gemini implements the live transport over the Gemini Live API's
// bidirectional websocket: audio up as base64 PCM media chunks, audio and
// tool calls down as server content frames.
package gemini

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/gorilla/websocket"

	"github.com/anakkallumkal/kiosk-core/core/live"
)

const (
	websocketEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

	apiKeyEnv = "GEMINI_API_KEY"
)

type Client struct {
	useEphemeralTokens bool
	tokenEndpoint      string
}

type ClientOption func(*Client)

// WithEphemeralTokens mints a short-lived token for each connection instead
// of placing the long-lived API key in the websocket URL.
func WithEphemeralTokens() ClientOption {
	return func(c *Client) { c.useEphemeralTokens = true }
}

// WithTokenEndpoint overrides where ephemeral tokens are minted, for
// proxied deployments.
func WithTokenEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.tokenEndpoint = endpoint }
}

func NewClient(opts ...ClientOption) *Client {
	client := &Client{tokenEndpoint: defaultTokenEndpoint}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Ready reports whether the client has a credential to connect with,
// without touching the network.
func (c *Client) Ready() error {
	if os.Getenv(apiKeyEnv) == "" {
		return fmt.Errorf("%s is not set: %w", apiKeyEnv, live.ErrMissingCredential)
	}
	return nil
}

func (c *Client) Open(ctx context.Context, config live.Config, callbacks live.Callbacks) (live.Session, error) {
	ctx, span := tracer.Start(ctx, "open gemini session")
	defer span.End()

	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, &live.OpenError{Err: fmt.Errorf("%s is not set: %w", apiKeyEnv, live.ErrMissingCredential)}
	}

	endpoint, err := url.Parse(websocketEndpoint)
	if err != nil {
		return nil, &live.OpenError{Err: fmt.Errorf("failed to parse endpoint: %w", err)}
	}

	queryParams := endpoint.Query()
	if c.useEphemeralTokens {
		token, err := c.mintToken(ctx, apiKey)
		if err != nil {
			return nil, &live.OpenError{Err: fmt.Errorf("failed to mint ephemeral token: %w", err)}
		}
		queryParams.Set("access_token", token)
	} else {
		queryParams.Set("key", apiKey)
	}
	endpoint.RawQuery = queryParams.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return nil, &live.OpenError{Err: fmt.Errorf("failed to open socket connection to gemini: %w", err)}
	}

	session := &liveSession{
		conn:            conn,
		callbacks:       callbacks,
		inputSampleRate: config.InputSampleRate,
	}

	setup, err := buildSetup(config)
	if err != nil {
		_ = conn.Close()
		return nil, &live.OpenError{Err: err}
	}
	if err := session.writeJSON(setup); err != nil {
		_ = conn.Close()
		return nil, &live.OpenError{Err: fmt.Errorf("failed to send session setup: %w", err)}
	}

	go session.readAndProcessMessages()

	return session, nil
}
