package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fintrack/fintrack-backend/internal/domain"
	applog "github.com/fintrack/fintrack-backend/internal/log"
)

// Gemini suggests categories and generates spending insights through the
// GenAI API. Construction requires credentials in the environment
// (GOOGLE_API_KEY or application default credentials).
type Gemini struct {
	client *genai.Client
	model  string
	logger *applog.Logger
}

// NewGemini creates a Gemini-backed advisor
func NewGemini(ctx context.Context, model string, logger *applog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  model,
		logger: logger.WithComponent(applog.ComponentAdvisor),
	}, nil
}

// Suggest returns a category for the described record. Income categories use
// keyword matching; expense categories are picked by the model from a closed
// set. Any failure degrades to the fallback category.
func (g *Gemini) Suggest(ctx context.Context, description string, recordType domain.RecordType) (string, error) {
	if strings.TrimSpace(description) == "" {
		return FallbackCategory, nil
	}
	if recordType == domain.RecordTypeIncome {
		return categorizeIncome(description), nil
	}

	prompt := "You are an expense categorization assistant. Categorize the expense " +
		"into exactly one of these categories: " + strings.Join(ExpenseCategories, ", ") + ". " +
		"Respond with only the category name.\n\n" +
		fmt.Sprintf("Expense: %q", description)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Warn("category suggestion failed", applog.FieldError, err)
		return FallbackCategory, nil
	}

	return validExpenseCategory(strings.TrimSpace(resp.Text())), nil
}

// recordSummary is the trimmed record shape sent to the model
type recordSummary struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

// Insights asks the model for 3-4 observations over the owner's records.
// The model is instructed to answer with a bare JSON array; stray code
// fences are stripped before parsing. Failures degrade to domain.FallbackInsight.
func (g *Gemini) Insights(ctx context.Context, records []*domain.Record) ([]domain.Insight, error) {
	summaries := make([]recordSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, recordSummary{
			Amount:      r.Amount.String(),
			Category:    r.Category,
			Description: r.Description,
			Date:        r.Date.Format("2006-01-02"),
			Type:        string(r.Type),
		})
	}

	data, err := json.Marshal(summaries)
	if err != nil {
		return []domain.Insight{domain.FallbackInsight}, nil
	}

	prompt := "Analyze the following financial records and provide 3-4 actionable insights.\n" +
		"Return a STRICT JSON array of objects with fields: " +
		`"type" ("warning"|"info"|"success"|"tip"), "title", "message", "action", "confidence" (0..1).` + "\n" +
		"Focus on income vs expense comparison, spending patterns, high-spend categories and savings opportunities.\n" +
		"Return ONLY valid raw JSON. Do NOT wrap the response in code fences.\n\n" +
		"Records:\n" + string(data)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Warn("insight generation failed", applog.FieldError, err)
		return []domain.Insight{domain.FallbackInsight}, nil
	}

	var insights []domain.Insight
	if err := json.Unmarshal([]byte(cleanModelJSON(resp.Text())), &insights); err != nil {
		g.logger.Warn("insight response was not valid JSON", applog.FieldError, err)
		return []domain.Insight{domain.FallbackInsight}, nil
	}
	if len(insights) == 0 {
		return []domain.Insight{domain.FallbackInsight}, nil
	}
	for i := range insights {
		if insights[i].Type == "" {
			insights[i].Type = "info"
		}
		if insights[i].Confidence == 0 {
			insights[i].Confidence = 0.8
		}
	}
	return insights, nil
}

// cleanModelJSON strips Markdown fences the model may emit despite
// instructions
func cleanModelJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSuffix(clean, "```")
	}
	return strings.TrimSpace(clean)
}
