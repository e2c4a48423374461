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

// personalTopK is the retrieval breadth for Personal RAG, per §4.6 step 2.
const personalTopK = 5

// PersonalRAG implements §4.6: member-scoped retrieval, derive-mode
// generation under the novelty controller, then store.
type PersonalRAG struct {
	store     ports.VectorStore
	generator ports.QuestionGenerator
	novelty   novelty.Controller
}

// NewPersonalRAG wires a PersonalRAG use case.
func NewPersonalRAG(store ports.VectorStore, generator ports.QuestionGenerator, controller novelty.Controller) *PersonalRAG {
	return &PersonalRAG{store: store, generator: generator, novelty: controller}
}

// Execute runs the flow: build base_qa, search_by_member, derive under
// novelty control, store, respond. Retrieval happens against the store's
// prior state — base_qa is only appended afterward, so it can never be
// its own RAG context, per §4.6's ordering note.
func (u *PersonalRAG) Execute(ctx context.Context, in RAGQuestionInput) (RAGQuestionOutput, error) {
	roleLabel := resolveRoleLabel(ctx, u.store, in.MemberID, in.RoleLabel)

	baseQA, err := domain.NewQARecord(in.FamilyID, in.MemberID, roleLabel, in.BaseQuestion, in.BaseAnswer, in.AnsweredAt)
	if err != nil {
		return RAGQuestionOutput{}, apperr.Wrap(apperr.InvalidInput, "building base qa record", err)
	}

	rag, err := u.store.SearchByMember(ctx, in.MemberID, baseQA, personalTopK)
	if err != nil {
		slog.Warn("usecase: personal rag retrieval failed, continuing with empty context", "member_id", in.MemberID, "error", err)
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
		return RAGQuestionOutput{}, fmt.Errorf("personal rag: %w", err)
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
