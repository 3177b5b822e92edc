/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"fmt"
	"time"

	"chainguard.dev/cefrassess/llm/retry"
)

// Provider selects the transport behind a Client.
type Provider string

const (
	// OpenAI speaks the OpenAI chat completions protocol. With BaseURL it
	// also reaches OpenAI-compatible servers such as locally served models.
	OpenAI Provider = "openai"
	// Anthropic calls Claude, directly or through Vertex AI when Project is set.
	Anthropic Provider = "anthropic"
	// Gemini calls Gemini, directly or through Vertex AI when Project is set.
	Gemini Provider = "gemini"
	// HTTP posts a chat completion payload to BaseURL with bearer auth.
	HTTP Provider = "http"
)

const (
	// DefaultTimeout bounds each model call when Config.Timeout is zero.
	DefaultTimeout = 60 * time.Second

	// DefaultSystemPrompt is sent when Config.SystemPrompt is empty.
	DefaultSystemPrompt = "You are a helpful assistant"

	// ReasoningSuffix opens the reasoning block for local reasoning models.
	ReasoningSuffix = "\n\nAssistant: <think>\n"
)

// Config selects and configures a model backend. It is usually loaded with
// envconfig under the LLM_ prefix.
type Config struct {
	Provider     Provider      `env:"PROVIDER,default=openai"`
	Model        string        `env:"MODEL"`
	APIKey       string        `env:"API_KEY"`
	BaseURL      string        `env:"BASE_URL"`
	SystemPrompt string        `env:"SYSTEM_PROMPT"`
	Timeout      time.Duration `env:"TIMEOUT,default=60s"`

	// Project and Region route Anthropic and Gemini through Vertex AI.
	Project string `env:"PROJECT"`
	Region  string `env:"REGION,default=us-east5"`

	// Reasoning selects the local reasoning profile: no system prompt, the
	// prompt ends with ReasoningSuffix, and the reasoning preamble is
	// stripped from replies.
	Reasoning bool `env:"REASONING"`
	// StripThinking strips a reasoning preamble ending in </think>.
	StripThinking bool `env:"STRIP_THINKING"`

	// Sampling overrides. Unset fields take the profile defaults.
	Temperature      *float64 `env:"TEMPERATURE,noinit"`
	MaxTokens        *int64   `env:"MAX_TOKENS,noinit"`
	TopP             *float64 `env:"TOP_P,noinit"`
	FrequencyPenalty *float64 `env:"FREQUENCY_PENALTY,noinit"`
	PresencePenalty  *float64 `env:"PRESENCE_PENALTY,noinit"`

	Retry retry.Config `env:",prefix=RETRY_"`
}

// Sampling holds resolved sampling parameters.
type Sampling struct {
	Temperature      float64
	MaxTokens        int64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// HostedSampling are the defaults for hosted chat models.
func HostedSampling() Sampling {
	return Sampling{
		Temperature:      0.7,
		MaxTokens:        2000,
		TopP:             1,
		FrequencyPenalty: 0,
		PresencePenalty:  0.5,
	}
}

// ReasoningSampling are the defaults for local reasoning models, which need
// a large token budget for their preamble.
func ReasoningSampling() Sampling {
	s := HostedSampling()
	s.Temperature = 0.6
	s.MaxTokens = 32000
	return s
}

// Sampling resolves the sampling parameters for c.
func (c Config) Sampling() Sampling {
	s := HostedSampling()
	if c.Reasoning || c.Provider == HTTP {
		s = ReasoningSampling()
	}
	if c.Temperature != nil {
		s.Temperature = *c.Temperature
	}
	if c.MaxTokens != nil {
		s.MaxTokens = *c.MaxTokens
	}
	if c.TopP != nil {
		s.TopP = *c.TopP
	}
	if c.FrequencyPenalty != nil {
		s.FrequencyPenalty = *c.FrequencyPenalty
	}
	if c.PresencePenalty != nil {
		s.PresencePenalty = *c.PresencePenalty
	}
	return s
}

// systemPrompt returns the system message to send, or "" for none.
func (c Config) systemPrompt() string {
	if c.Reasoning {
		return ""
	}
	if c.SystemPrompt == "" {
		return DefaultSystemPrompt
	}
	return c.SystemPrompt
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// Validate reports configuration errors, all wrapping ErrConfig.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", ErrConfig)
	}
	if err := c.Retry.Validate(); err != nil {
		return fmt.Errorf("%w: retry: %w", ErrConfig, err)
	}
	if s := c.Sampling(); s.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive", ErrConfig)
	}

	switch c.Provider {
	case OpenAI:
		// Locally served OpenAI-compatible servers usually take no key.
		if c.APIKey == "" && c.BaseURL == "" {
			return fmt.Errorf("%w: %s requires an API key or a base URL", ErrConfig, c.Provider)
		}
	case Anthropic, Gemini:
		if c.APIKey == "" && c.Project == "" {
			return fmt.Errorf("%w: %s requires an API key or a Vertex AI project", ErrConfig, c.Provider)
		}
		if c.Project != "" && c.Region == "" {
			return fmt.Errorf("%w: %s on Vertex AI requires a region", ErrConfig, c.Provider)
		}
	case HTTP:
		if c.APIKey == "" {
			return fmt.Errorf("%w: %s requires an API key", ErrConfig, c.Provider)
		}
		if c.BaseURL == "" {
			return fmt.Errorf("%w: %s requires a base URL", ErrConfig, c.Provider)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrConfig, c.Provider)
	}
	return nil
}
