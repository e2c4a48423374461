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

// familyContextMax is the maximum number of RAG entries shown to the model
// for a family-scoped call — larger than the personal case because the
// context spans the whole family, per §4.4.
const familyContextMax = 10

// Family implements ports.QuestionGenerator for both family-scoped modes:
// derive (Family RAG) against "family_generate", and target (Family
// Recent) against "family_recent". The Python original splits this the
// same way: LangchainFamilyGenerator implements both
// generate_question and generate_question_for_target, while the personal
// generator only implements the former.
type Family struct {
	client         llm.Client
	deriveTemplate promptcatalog.Template
	targetTemplate promptcatalog.Template
	model          string
	temperature    float32
}

// NewFamily builds a Family generator against the "family_generate" and
// "family_recent" catalog templates.
func NewFamily(client llm.Client, catalog *promptcatalog.Catalog, model string, temperature float32) *Family {
	return &Family{
		client:         client,
		deriveTemplate: catalog.Get("family_generate"),
		targetTemplate: catalog.Get("family_recent"),
		model:          model,
		temperature:    temperature,
	}
}

var _ ports.QuestionGenerator = (*Family)(nil)

type familyDerivePromptData struct {
	RoleLabel  string
	BaseQA     string
	RAGContext string
}

func (g *Family) GenerateQuestion(ctx context.Context, baseQA domain.QARecord, ragContext []domain.QARecord) (string, domain.QuestionLevel, error) {
	system, user, err := g.deriveTemplate.Render(familyDerivePromptData{
		RoleLabel:  baseQA.RoleLabel(),
		BaseQA:     formatBaseQA(baseQA),
		RAGContext: formatRAGContext(ragContext, familyContextMax),
	})
	if err != nil {
		return "", 0, fmt.Errorf("generator: rendering family derive prompt: %w", err)
	}

	question, level, err := g.chatJSON(ctx, system, user)
	if err != nil {
		slog.Warn("generator: family derive response failed contract", "member_id", baseQA.MemberID(), "error", err)
		return "", 0, err
	}
	return question, level, nil
}

type familyTargetPromptData struct {
	TargetRoleLabel string
	Context         string
}

func (g *Family) GenerateQuestionForTarget(ctx context.Context, targetMemberID, targetRoleLabel string, ragContext []domain.QARecord) (string, domain.QuestionLevel, error) {
	system, user, err := g.targetTemplate.Render(familyTargetPromptData{
		TargetRoleLabel: targetRoleLabel,
		Context:         formatRAGContext(ragContext, familyContextMax),
	})
	if err != nil {
		return "", 0, fmt.Errorf("generator: rendering family target prompt: %w", err)
	}

	question, level, err := g.chatJSON(ctx, system, user)
	if err != nil {
		slog.Warn("generator: family target response failed contract", "target_member_id", targetMemberID, "error", err)
		return "", 0, err
	}
	return question, level, nil
}

func (g *Family) chatJSON(ctx context.Context, system, user string) (string, domain.QuestionLevel, error) {
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
		return "", 0, fmt.Errorf("generator: family chat call: %w", err)
	}
	return parseGenerationResult(content)
}
