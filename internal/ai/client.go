// Package ai generates monthly spending summaries and answers follow-up
// questions through an OpenAI-compatible chat model. Usage is metered per
// user per day.
package ai

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	defaultModel   = openai.GPT4oMini
	requestTimeout = 60 * time.Second
)

var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Completer is the slice of the OpenAI client the service needs; tests swap
// in a canned implementation.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient reads OPENAI_API_KEY and optional OPENAI_MODEL. The key
// must be checked by the caller; an empty key produces a client whose every
// call fails.
func NewOpenAIClient() *OpenAIClient {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &OpenAIClient{
		client: openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		logger.Error().Err(err).Str("model", c.model).Msg("chat completion failed")
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	logger.Info().
		Str("model", c.model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completion ok")
	return resp.Choices[0].Message.Content, nil
}
