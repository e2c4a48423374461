package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kocory1/AllFamilyAI/internal/domain"
	"github.com/kocory1/AllFamilyAI/internal/ports"
	"github.com/kocory1/AllFamilyAI/internal/promptcatalog"
	"github.com/kocory1/AllFamilyAI/services/llm"
)

// personalContextMax is the maximum number of RAG entries shown to the
// model for a personal derive-mode call, per §4.4.
const personalContextMax = 5

// Personal implements ports.QuestionGenerator for the "derive from base
// Q/A" mode used by the Personal RAG use case. It has no target mode: the
// Personal RAG flow never needs one, and the Python original's
// LangchainPersonalGenerator has no generate_question_for_target
// implementation either.
type Personal struct {
	client      llm.Client
	template    promptcatalog.Template
	model       string
	temperature float32
}

// NewPersonal builds a Personal generator against the "personal_generate"
// catalog template.
func NewPersonal(client llm.Client, catalog *promptcatalog.Catalog, model string, temperature float32) *Personal {
	return &Personal{
		client:      client,
		template:    catalog.Get("personal_generate"),
		model:       model,
		temperature: temperature,
	}
}

var _ ports.QuestionGenerator = (*Personal)(nil)

type personalPromptData struct {
	RoleLabel  string
	BaseQA     string
	RAGContext string
}

func (g *Personal) GenerateQuestion(ctx context.Context, baseQA domain.QARecord, ragContext []domain.QARecord) (string, domain.QuestionLevel, error) {
	system, user, err := g.template.Render(personalPromptData{
		RoleLabel:  baseQA.RoleLabel(),
		BaseQA:     formatBaseQA(baseQA),
		RAGContext: formatRAGContext(ragContext, personalContextMax),
	})
	if err != nil {
		return "", 0, fmt.Errorf("generator: rendering personal prompt: %w", err)
	}

	temperature := g.temperature
	content, err := g.client.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.Params{
		Model:               g.model,
		MaxCompletionTokens: 2000,
		Temperature:         &temperature,
		ResponseFormatJSON:  true,
	})
	if err != nil {
		return "", 0, fmt.Errorf("generator: personal chat call: %w", err)
	}

	question, level, err := parseGenerationResult(content)
	if err != nil {
		slog.Warn("generator: personal response failed contract", "member_id", baseQA.MemberID(), "error", err)
		return "", 0, err
	}
	return question, level, nil
}

// GenerateQuestionForTarget is not a mode the personal generator supports;
// the Personal RAG use case never calls it.
func (g *Personal) GenerateQuestionForTarget(ctx context.Context, targetMemberID, targetRoleLabel string, context []domain.QARecord) (string, domain.QuestionLevel, error) {
	return "", 0, fmt.Errorf("generator: personal generator does not support target mode")
}
