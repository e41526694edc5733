package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTokenEndpoint = "https://generativelanguage.googleapis.com/v1alpha/auth_tokens"

const tokenLifetime = 30 * time.Minute

var tokenHTTPClient = &http.Client{
	Transport: otelhttp.NewTransport(http.DefaultTransport),
	Timeout:   10 * time.Second,
}

// mintToken exchanges the API key for a single-use ephemeral token so the
// key itself never appears in the websocket URL.
func (c *Client) mintToken(ctx context.Context, apiKey string) (string, error) {
	payload, err := json.Marshal(struct {
		Uses       int    `json:"uses"`
		ExpireTime string `json:"expireTime"`
	}{
		Uses:       1,
		ExpireTime: time.Now().Add(tokenLifetime).UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-goog-api-key", apiKey)

	response, err := tokenHTTPClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d", response.StatusCode)
	}

	var token struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(response.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.Name == "" {
		return "", fmt.Errorf("token response missing token name")
	}

	return token.Name, nil
}
