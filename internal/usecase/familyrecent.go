package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kocory1/AllFamilyAI/internal/domain"
	"github.com/kocory1/AllFamilyAI/internal/novelty"
	"github.com/kocory1/AllFamilyAI/internal/ports"
)

// familyRecentLimitPerMember is §4.8 step 1's per-member window.
const familyRecentLimitPerMember = 3

// FamilyRecent implements §4.8: no base Q/A, target-mode generation over
// the family's recent windows, and — deliberately — no store call. The
// result is a prompt to surface, not a recorded exchange.
type FamilyRecent struct {
	store     ports.VectorStore
	generator ports.QuestionGenerator
	novelty   novelty.Controller
}

// NewFamilyRecent wires a FamilyRecent use case.
func NewFamilyRecent(store ports.VectorStore, generator ports.QuestionGenerator, controller novelty.Controller) *FamilyRecent {
	return &FamilyRecent{store: store, generator: generator, novelty: controller}
}

func (u *FamilyRecent) Execute(ctx context.Context, in FamilyRecentInput) (FamilyRecentOutput, error) {
	recentContext, err := u.store.RecentByFamily(ctx, in.FamilyID, familyRecentLimitPerMember)
	if err != nil {
		slog.Warn("usecase: family recent retrieval failed, continuing with empty context", "family_id", in.FamilyID, "error", err)
		recentContext = nil
	}

	result, err := u.novelty.Run(ctx,
		func(ctx context.Context) (string, domain.QuestionLevel, error) {
			return u.generator.GenerateQuestionForTarget(ctx, in.TargetMemberID, in.TargetRoleLabel, recentContext)
		},
		func(ctx context.Context, question string) (float64, error) {
			return u.store.SearchSimilarQuestions(ctx, question, in.TargetMemberID)
		},
	)
	if err != nil {
		return FamilyRecentOutput{}, fmt.Errorf("family recent: %w", err)
	}

	return FamilyRecentOutput{
		Question: result.Question,
		Level:    result.Level.Int(),
		Metadata: QuestionMetadata{
			ContextCount:      len(recentContext),
			TargetMemberID:    in.TargetMemberID,
			FamilyID:          in.FamilyID,
			RegenerationCount: result.Regens,
			SimilarityWarning: result.Warning,
		},
	}, nil
}
