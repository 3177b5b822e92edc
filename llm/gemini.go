/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type geminiTransport struct {
	client   *genai.Client
	model    string
	system   string
	sampling Sampling
}

func newGemini(ctx context.Context, cfg Config) (*geminiTransport, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Project != "" {
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Region,
			Backend:  genai.BackendVertexAI,
		}
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating Google AI client: %w", err)
	}
	return &geminiTransport{
		client:   client,
		model:    cfg.Model,
		system:   cfg.systemPrompt(),
		sampling: cfg.Sampling(),
	}, nil
}

func ptr[T any](v T) *T { return &v }

func (t *geminiTransport) complete(ctx context.Context, prompt string) (reply, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     ptr(float32(t.sampling.Temperature)),
		TopP:            ptr(float32(t.sampling.TopP)),
		MaxOutputTokens: int32(t.sampling.MaxTokens),
	}
	if t.system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: t.system}},
		}
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), config)
	if err != nil {
		return reply{}, err
	}
	text := resp.Text()
	if text == "" {
		return reply{}, errors.New("response contained no text")
	}

	r := reply{text: text}
	if resp.UsageMetadata != nil {
		r.promptTokens = int64(resp.UsageMetadata.PromptTokenCount)
		r.completionTokens = int64(resp.UsageMetadata.CandidatesTokenCount)
	}
	return r, nil
}
