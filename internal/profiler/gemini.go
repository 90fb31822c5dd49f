package profiler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/BerylCAtieno/icp-generator/internal/models"
	"github.com/BerylCAtieno/icp-generator/internal/validation"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiClient generates profiles with the Gemini API instead of the
// built-in templates.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logger.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, log logger.Logger) (*GeminiClient, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(4096)
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client: client,
		model:  model,
		logger: log.With(map[string]interface{}{"generator": "gemini", "model": modelName}),
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) GenerateCustomerProfile(ctx context.Context, description string) (*models.ProfileResponse, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(description)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	profile, err := parseProfile(text.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	g.logger.Info("profile generated", map[string]interface{}{
		"personas": len(profile.Personas),
		"filters":  len(profile.FilterLogic),
	})

	return &models.ProfileResponse{
		Description: description,
		Template:    models.TemplateExternal,
		Signals:     Classify(description),
		Profile:     *profile,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// parseProfile decodes a model reply, tolerating markdown code fences, and
// validates it against the profile schema.
func parseProfile(text string) (*models.CustomerProfile, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if err := validation.ValidateProfile([]byte(text)); err != nil {
		return nil, err
	}

	var profile models.CustomerProfile
	if err := json.Unmarshal([]byte(text), &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

func buildPrompt(description string) string {
	return fmt.Sprintf(`You are an expert B2B market researcher. Based ONLY on the product description "%s", produce an Ideal Customer Profile for prospecting on LinkedIn, Apollo.io and similar platforms.

Respond with a single JSON object and nothing else, using exactly these keys in this order:

personas: array of 1-2 objects with title, job_titles, company_stage, industry, team_size, region, pain_points, growth_signals
filter_logic: object mapping filter names (job_title_contains, company_size_range, industry_keywords, geography, ...) to a string or an array of strings
sample_keywords: array of short keyword tags
intent_signals: array of observable in-market behaviors

Example persona: {"title": "Head of Sales / Sales Manager", "job_titles": ["Head of Sales", "VP Sales"], "company_stage": "Series A to Series B", "industry": ["SaaS"], "team_size": "25-200", "region": ["US", "UK"], "pain_points": ["Need better lead-to-meeting conversion rates"], "growth_signals": ["Recent expansion of sales team"]}`, description)
}
