package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/kocory1/AllFamilyAI/internal/ports"
	"github.com/kocory1/AllFamilyAI/internal/promptcatalog"
	"github.com/kocory1/AllFamilyAI/services/llm"
)

// Summary implements ports.SummaryGenerator, rendering a period's worth of
// QA text into one headline via "summary_headline". Unlike the derive/
// target generators it does not request JSON mode — the contract is a
// single line of prose, not a structured object, matching the Python
// original's LangChainSummaryGenerator.
type Summary struct {
	client      llm.Client
	template    promptcatalog.Template
	model       string
	temperature float32
}

// NewSummary builds a Summary generator against the "summary_headline"
// catalog template.
func NewSummary(client llm.Client, catalog *promptcatalog.Catalog, model string, temperature float32) *Summary {
	return &Summary{
		client:      client,
		template:    catalog.Get("summary_headline"),
		model:       model,
		temperature: temperature,
	}
}

var _ ports.SummaryGenerator = (*Summary)(nil)

type summaryPromptData struct {
	PeriodLabel string
	AnswerCount int
	QAList      string
}

func (g *Summary) GenerateSummary(ctx context.Context, qaTexts []string, periodLabel string, answerCount int) (string, error) {
	qaList := "(없음)"
	if len(qaTexts) > 0 {
		qaList = strings.Join(qaTexts, "\n")
	}

	system, user, err := g.template.Render(summaryPromptData{
		PeriodLabel: periodLabel,
		AnswerCount: answerCount,
		QAList:      qaList,
	})
	if err != nil {
		return "", fmt.Errorf("generator: rendering summary prompt: %w", err)
	}

	temperature := g.temperature
	content, err := g.client.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.Params{
		Model:               g.model,
		MaxCompletionTokens: 500,
		Temperature:         &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generator: summary chat call: %w", err)
	}
	return strings.TrimSpace(content), nil
}
