package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kocory1/AllFamilyAI/internal/apperr"
	"github.com/kocory1/AllFamilyAI/internal/domain"
	"github.com/kocory1/AllFamilyAI/internal/novelty"
	"github.com/kocory1/AllFamilyAI/internal/ports"
)

// familyTopK is the retrieval breadth for Family RAG — wider than personal
// because the context spans every family member, per §4.7.
const familyTopK = 10

// FamilyRAG implements §4.7: identical to Personal RAG except retrieval is
// family-scoped. The novelty probe still targets the answering member, not
// the family, per §4.7's closing note.
type FamilyRAG struct {
	store     ports.VectorStore
	generator ports.QuestionGenerator
	novelty   novelty.Controller
}

// NewFamilyRAG wires a FamilyRAG use case.
func NewFamilyRAG(store ports.VectorStore, generator ports.QuestionGenerator, controller novelty.Controller) *FamilyRAG {
	return &FamilyRAG{store: store, generator: generator, novelty: controller}
}

func (u *FamilyRAG) Execute(ctx context.Context, in RAGQuestionInput) (RAGQuestionOutput, error) {
	roleLabel := resolveRoleLabel(ctx, u.store, in.MemberID, in.RoleLabel)

	baseQA, err := domain.NewQARecord(in.FamilyID, in.MemberID, roleLabel, in.BaseQuestion, in.BaseAnswer, in.AnsweredAt)
	if err != nil {
		return RAGQuestionOutput{}, apperr.Wrap(apperr.InvalidInput, "building base qa record", err)
	}

	rag, err := u.store.SearchByFamily(ctx, in.FamilyID, baseQA, familyTopK)
	if err != nil {
		slog.Warn("usecase: family rag retrieval failed, continuing with empty context", "family_id", in.FamilyID, "error", err)
		rag = nil
	}

	result, err := u.novelty.Run(ctx,
		func(ctx context.Context) (string, domain.QuestionLevel, error) {
			return u.generator.GenerateQuestion(ctx, baseQA, rag)
		},
		func(ctx context.Context, question string) (float64, error) {
			return u.store.SearchSimilarQuestions(ctx, question, in.MemberID)
		},
	)
	if err != nil {
		return RAGQuestionOutput{}, fmt.Errorf("family rag: %w", err)
	}

	stored, err := u.store.Store(ctx, baseQA)
	if err != nil {
		return RAGQuestionOutput{}, apperr.Wrap(apperr.PersistenceFailure, "storing base qa record", err)
	}
	if !stored {
		return RAGQuestionOutput{}, apperr.New(apperr.PersistenceFailure, "vector store reported unsuccessful store")
	}

	return RAGQuestionOutput{
		Question: result.Question,
		Level:    result.Level.Int(),
		Metadata: QuestionMetadata{
			RAGCount:          len(rag),
			MemberID:          in.MemberID,
			FamilyID:          in.FamilyID,
			RegenerationCount: result.Regens,
			SimilarityWarning: result.Warning,
		},
	}, nil
}
