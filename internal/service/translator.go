package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dejargonizer/pkg/config"

	"go.uber.org/zap"
)

// GoogleTranslator implements Translator against the public Google
// translate endpoint. The source language is always auto-detected.
type GoogleTranslator struct {
	httpClient *http.Client
	endpoint   string
	logger     *zap.Logger
}

func NewGoogleTranslator(cfg *config.TranslatorConfig, logger *zap.Logger) *GoogleTranslator {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GoogleTranslator{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		logger:     logger,
	}
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create translate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	// The endpoint answers with nested arrays: the first element holds
	// translated segments as [["translated", "original", ...], ...]
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translate response shape: %w", err)
	}

	var builder strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			return "", fmt.Errorf("unexpected translate segment shape: %w", err)
		}
		builder.WriteString(part)
	}

	translated := builder.String()
	if translated == "" {
		return "", fmt.Errorf("no translation in response")
	}

	return translated, nil
}
