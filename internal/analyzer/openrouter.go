package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/BerylCAtieno/speedminds/internal/extractor"
	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

type OpenRouterOptions struct {
	APIKey  string
	BaseURL string
	Model   string
}

// openRouterAnalyzer speaks the OpenAI chat completions protocol, so it works
// against OpenRouter and any other compatible endpoint.
type openRouterAnalyzer struct {
	client openai.Client
	model  string
	logger *utils.Logger
}

func NewOpenRouterAnalyzer(opts OpenRouterOptions, logger *utils.Logger) Analyzer {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("HTTP-Referer", "https://github.com/BerylCAtieno/speedminds"),
		option.WithHeader("X-Title", "SpeedMinds"),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &openRouterAnalyzer{
		client: openai.NewClient(reqOpts...),
		model:  opts.Model,
		logger: logger,
	}
}

func (a *openRouterAnalyzer) Analyze(ctx context.Context, content *extractor.Content) (*models.AnalysisResult, error) {
	text, err := content.PlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to read document text: %w", err)
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(documentPrompt(text, AnalysisPrompt)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "document_analysis",
					Schema: analysisJSONSchema(),
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openrouter chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	// Not every routed model honors the response format; some still wrap the
	// object in a markdown fence.
	raw := extractJSON(strings.TrimSpace(resp.Choices[0].Message.Content))
	result, err := parseAnalysis(raw)
	if err != nil {
		a.logger.Error("Failed to parse OpenRouter analysis", "error", err, "response_length", len(raw))
		return nil, err
	}

	return result, nil
}

func (a *openRouterAnalyzer) Ask(ctx context.Context, content *extractor.Content, question string) (string, error) {
	text, err := content.PlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read document text: %w", err)
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(documentPrompt(text, QAPrompt(question))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openrouter chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyResponse
	}

	return answer, nil
}

func documentPrompt(text, instruction string) string {
	return fmt.Sprintf("Document text:\n%s\n\n%s", text, instruction)
}

// extractJSON attempts to extract JSON from markdown code blocks
func extractJSON(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	start := strings.Index(content, "\n")
	end := strings.LastIndex(content, "```")
	if start == -1 || end <= start {
		return content
	}

	return strings.TrimSpace(content[start+1 : end])
}
