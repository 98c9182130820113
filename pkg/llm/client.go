package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client calls a hosted text-generation endpoint over HTTP with bearer
// authentication.
type Client struct {
	endpoint   string
	token      string
	logger     *zap.Logger
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint. The token is sent
// as a bearer credential on every request.
func NewClient(endpoint, token string, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		logger:   logger,
		httpClient: &http.Client{
			// Generation requests can be slow, especially on cold models
			Timeout: 5 * time.Minute,
		},
	}
}

// Generate issues exactly one request carrying the prompt and returns
// the raw response body. The body is returned regardless of HTTP
// status: error payloads go through the same shape handling as
// successful ones. The request is not retried.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	reqBody, err := json.Marshal(GenerateRequest{
		Inputs: prompt,
		Parameters: Parameters{
			MaxNewTokens: DefaultMaxNewTokens,
			Temperature:  DefaultTemperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	c.logger.Debug("sending generation request",
		zap.String("endpoint", c.endpoint),
		zap.Int("body_size", len(reqBody)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("received generation response",
		zap.Int("status", httpResp.StatusCode),
		zap.Int("body_size", len(body)),
	)

	return body, nil
}
