package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dejargonizer/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// LLMService implements Generator on top of the GigaChat API.
type LLMService struct {
	client  *gigago.Client
	model   *gigago.GenerativeModel
	timeout time.Duration
	logger  *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.Temperature = 0.3

	return &LLMService{
		client:  client,
		model:   model,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}, nil
}

// Generate sends a rendered prompt and returns the model's raw text
// response. The call is bounded by the configured request timeout.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.logger.Info("Generation completed", zap.Int("response_length", len(content)))

	return content, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
