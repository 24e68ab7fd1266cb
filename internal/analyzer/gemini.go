package analyzer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/BerylCAtieno/speedminds/internal/extractor"
	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

type GeminiOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty means the SDK default.
	BaseURL string
}

type geminiAnalyzer struct {
	client *genai.Client
	model  string
	logger *utils.Logger
}

// analysisSchema mirrors analysisJSONSchema in the SDK's schema type.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: summaryDescription,
		},
		"topics": {
			Type:        genai.TypeArray,
			Description: topicsDescription,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: topicDescription,
					},
					"explanation": {
						Type:        genai.TypeString,
						Description: explanationDescription,
					},
				},
				Required: []string{"topic", "explanation"},
			},
		},
	},
	Required: []string{"summary", "topics"},
}

func NewGeminiAnalyzer(ctx context.Context, opts GeminiOptions, logger *utils.Logger) (Analyzer, error) {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiAnalyzer{
		client: client,
		model:  opts.Model,
		logger: logger,
	}, nil
}

func (a *geminiAnalyzer) Analyze(ctx context.Context, content *extractor.Content) (*models.AnalysisResult, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			documentPart(content),
			genai.NewPartFromText(AnalysisPrompt),
		}, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	raw := resp.Text()
	result, err := parseAnalysis(raw)
	if err != nil {
		a.logger.Error("Failed to parse Gemini analysis", "error", err, "response_length", len(raw))
		return nil, err
	}

	return result, nil
}

func (a *geminiAnalyzer) Ask(ctx context.Context, content *extractor.Content, question string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			documentPart(content),
			genai.NewPartFromText(QAPrompt(question)),
		}, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", ErrEmptyResponse
	}

	return answer, nil
}

// documentPart sends PDFs inline so the model reads them natively.
func documentPart(content *extractor.Content) *genai.Part {
	if content.Kind == extractor.KindBinary {
		return genai.NewPartFromBytes(content.Data, content.MIMEType)
	}
	return genai.NewPartFromText(content.Text)
}
