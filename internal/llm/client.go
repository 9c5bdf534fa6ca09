// Package llm is a minimal client for OpenAI-compatible chat completion endpoints.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/askdoc/internal/apperr"
	"github.com/hyperjump/askdoc/internal/config"
	"go.uber.org/zap"
)

// ErrNoAPIKey is returned by NewClient when the credential is empty.
var ErrNoAPIKey = errors.New("completion API key is required")

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body posted to /chat/completions.
type ChatRequest struct {
	Messages []Message `json:"messages"`
	Model    string    `json:"model"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client sends single-turn prompts and returns the first choice's content.
type Client struct {
	endpoint        string
	apiKey          string
	model           string
	maxContextChars int
	http            *http.Client
	logger          *zap.Logger
}

// NewClient builds a client from cfg. httpClient may be nil, in which case one is
// created with cfg.TimeoutSeconds (a negative value means no timeout).
func NewClient(cfg config.CompletionConfig, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if httpClient == nil {
		httpClient = &http.Client{}
		if cfg.TimeoutSeconds > 0 {
			httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:        strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		maxContextChars: cfg.MaxContextChars,
		http:            httpClient,
		logger:          logger,
	}, nil
}

// Complete asks question about content. Only the first maxContextChars characters
// of content are sent. Failures are apperr.KindCompletion; nothing is retried.
func (c *Client) Complete(ctx context.Context, question, content string) (string, error) {
	start := time.Now()
	body, err := json.Marshal(ChatRequest{
		Messages: []Message{{Role: "user", Content: BuildPrompt(question, content, c.maxContextChars)}},
		Model:    c.model,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindCompletion, err, "marshal completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Wrap(apperr.KindCompletion, err, "build completion request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("completion request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", apperr.Wrap(apperr.KindCompletion, err, "completion request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindCompletion, err, "read completion response")
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("completion endpoint returned error status",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(raw)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", apperr.New(apperr.KindCompletion,
			fmt.Sprintf("failed to get response from completion API, status code: %d", resp.StatusCode))
	}

	answer, err := firstChoice(raw)
	if err != nil {
		return "", err
	}
	c.logger.Debug("completion ok",
		zap.String("model", c.model),
		zap.Int("answer_len", len(answer)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return answer, nil
}

// firstChoice extracts choices[0].message.content.
func firstChoice(raw []byte) (string, error) {
	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", apperr.Wrap(apperr.KindCompletion, err, "malformed completion response")
	}
	if len(cr.Choices) == 0 {
		return "", apperr.New(apperr.KindCompletion, "malformed completion response: no choices")
	}
	content := cr.Choices[0].Message.Content
	if content == nil {
		return "", apperr.New(apperr.KindCompletion, "malformed completion response: missing message content")
	}
	return *content, nil
}
