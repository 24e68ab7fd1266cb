package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/speedminds/internal/config"
	"github.com/BerylCAtieno/speedminds/internal/extractor"
	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

var (
	ErrMalformedResponse = errors.New("malformed model response")
	ErrEmptyResponse     = errors.New("empty model response")
)

// Analyzer talks to the hosted model. Implementations must not retry.
type Analyzer interface {
	Analyze(ctx context.Context, content *extractor.Content) (*models.AnalysisResult, error)
	Ask(ctx context.Context, content *extractor.Content, question string) (string, error)
}

// New builds the analyzer selected by cfg.LLMProvider, rate limited when
// cfg.LLMRateLimit is set.
func New(ctx context.Context, cfg *config.Config, logger *utils.Logger) (Analyzer, error) {
	var (
		a   Analyzer
		err error
	)

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		a, err = NewGeminiAnalyzer(ctx, GeminiOptions{
			APIKey: cfg.GoogleAPIKey,
			Model:  cfg.GeminiModel,
		}, logger)
	case config.ProviderOpenRouter:
		a = NewOpenRouterAnalyzer(OpenRouterOptions{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.OpenRouterModel,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}

	return NewRateLimited(a, cfg.LLMRateLimit), nil
}

// parseAnalysis decodes the model reply and checks the fields the schema
// marks as required.
func parseAnalysis(raw string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := ValidateResult(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ValidateResult rejects replies missing a summary, with no topics, or with a
// topic lacking its name or explanation.
func ValidateResult(result *models.AnalysisResult) error {
	if strings.TrimSpace(result.Summary) == "" {
		return fmt.Errorf("%w: summary is empty", ErrMalformedResponse)
	}
	if len(result.Topics) == 0 {
		return fmt.Errorf("%w: no topics returned", ErrMalformedResponse)
	}
	for i, t := range result.Topics {
		if strings.TrimSpace(t.Topic) == "" || strings.TrimSpace(t.Explanation) == "" {
			return fmt.Errorf("%w: topic %d is incomplete", ErrMalformedResponse, i+1)
		}
	}
	return nil
}
