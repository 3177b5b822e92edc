/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

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
)

// maxErrorBody caps how much of an error response is kept on StatusError.
const maxErrorBody = 4 << 10

type httpMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type httpRequest struct {
	Model            string        `json:"model"`
	Messages         []httpMessage `json:"messages"`
	Stream           bool          `json:"stream"`
	MaxTokens        int64         `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type httpResponse struct {
	Choices []struct {
		Message httpMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
}

type httpTransport struct {
	client   *http.Client
	url      string
	apiKey   string
	model    string
	system   string
	sampling Sampling
}

func newHTTP(cfg Config) *httpTransport {
	return &httpTransport{
		client:   http.DefaultClient,
		url:      cfg.BaseURL,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		system:   cfg.systemPrompt(),
		sampling: cfg.Sampling(),
	}
}

func (t *httpTransport) complete(ctx context.Context, prompt string) (reply, error) {
	messages := make([]httpMessage, 0, 2)
	if t.system != "" {
		messages = append(messages, httpMessage{Role: "system", Content: t.system})
	}
	messages = append(messages, httpMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(httpRequest{
		Model:            t.model,
		Messages:         messages,
		MaxTokens:        t.sampling.MaxTokens,
		Temperature:      t.sampling.Temperature,
		TopP:             t.sampling.TopP,
		FrequencyPenalty: t.sampling.FrequencyPenalty,
		PresencePenalty:  t.sampling.PresencePenalty,
	})
	if err != nil {
		return reply{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return reply{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return reply{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var out httpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return reply{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(out.Choices) == 0 {
		return reply{}, errors.New("completion contained no choices")
	}
	return reply{
		text:             out.Choices[0].Message.Content,
		promptTokens:     out.Usage.PromptTokens,
		completionTokens: out.Usage.CompletionTokens,
	}, nil
}
