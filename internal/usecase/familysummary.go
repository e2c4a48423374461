package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kocory1/AllFamilyAI/internal/ports"
)

// periodDays maps a period label to its window length, per §3's Period
// Window definition.
var periodDays = map[string]int{
	"weekly":  7,
	"monthly": 30,
}

// periodKoreanLabel is the in-prompt label for each period, matching the
// Python original's PERIOD_LABEL.
var periodKoreanLabel = map[string]string{
	"weekly":  "주간",
	"monthly": "월간",
}

// FamilySummary implements §4.9: range scan, render, headline.
type FamilySummary struct {
	store     ports.VectorStore
	generator ports.SummaryGenerator
	now       func() time.Time
}

// NewFamilySummary wires a FamilySummary use case. now defaults to
// time.Now; tests supply a fixed clock.
func NewFamilySummary(store ports.VectorStore, generator ports.SummaryGenerator) *FamilySummary {
	return &FamilySummary{store: store, generator: generator, now: time.Now}
}

func (u *FamilySummary) Execute(ctx context.Context, in SummaryInput) (SummaryOutput, error) {
	days, ok := periodDays[in.Period]
	if !ok {
		days = periodDays["weekly"]
	}
	label, ok := periodKoreanLabel[in.Period]
	if !ok {
		label = periodKoreanLabel["weekly"]
	}

	end := u.now()
	start := end.AddDate(0, 0, -days)

	docs, err := u.store.InRange(ctx, in.FamilyID, start, end)
	if err != nil {
		slog.Warn("usecase: family summary range scan failed, continuing with no answers", "family_id", in.FamilyID, "error", err)
		docs = nil
	}

	qaTexts := make([]string, 0, len(docs))
	for _, doc := range docs {
		qaTexts = append(qaTexts, doc.RenderedEmbeddingText())
	}

	context_, err := u.generator.GenerateSummary(ctx, qaTexts, label, len(docs))
	if err != nil {
		return SummaryOutput{}, fmt.Errorf("family summary: %w", err)
	}

	return SummaryOutput{Context: context_}, nil
}
