package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/kocory1/AllFamilyAI/internal/domain"
)

// TestFamilySummary_S5_WeeklyZeroAnswers reproduces spec.md's S5 scenario:
// an empty store still produces a non-empty headline, and the range scan
// is invoked with a 7-day window.
func TestFamilySummary_S5_WeeklyZeroAnswers(t *testing.T) {
	store := &mockStore{inRangeResult: nil}
	gen := &mockSummaryGenerator{headline: "이번 주는 기록된 답변이 없었어요. 다음 주에 함께 이야기해봐요!"}
	fixedNow := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	uc := &FamilySummary{store: store, generator: gen, now: func() time.Time { return fixedNow }}

	out, err := uc.Execute(context.Background(), SummaryInput{FamilyID: "F1", Period: "weekly"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if out.Context == "" {
		t.Fatal("expected a non-empty headline even with zero answers")
	}
	if gen.gotCount != 0 {
		t.Fatalf("answerCount passed to generator = %d, want 0", gen.gotCount)
	}
	if !store.inRangeEnd.Equal(fixedNow) || !store.inRangeStart.Equal(fixedNow.AddDate(0, 0, -7)) {
		t.Fatalf("range scan window = [%v, %v], want the 7 days ending %v", store.inRangeStart, store.inRangeEnd, fixedNow)
	}
}

func TestFamilySummary_RendersDocsWithEmbeddingFormat(t *testing.T) {
	qa, err := domain.NewQARecord("F1", "M1", "첫째 딸", "오늘 뭐 했어?", "놀았어요",
		time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	store := &mockStore{inRangeResult: []domain.QARecord{qa}}
	gen := &mockSummaryGenerator{headline: "headline"}
	fixedNow := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	uc := &FamilySummary{store: store, generator: gen, now: func() time.Time { return fixedNow }}

	out, err := uc.Execute(context.Background(), SummaryInput{FamilyID: "F1", Period: "weekly"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if out.Context != "headline" {
		t.Fatalf("Context = %q, want %q", out.Context, "headline")
	}
	if gen.gotCount != 1 {
		t.Fatalf("answerCount = %d, want 1", gen.gotCount)
	}
	if len(gen.gotTexts) != 1 || gen.gotTexts[0] != qa.RenderedEmbeddingText() {
		t.Fatalf("generator did not receive the rendered embedding text: %v", gen.gotTexts)
	}
	if gen.gotLabel != "주간" {
		t.Fatalf("periodLabel = %q, want 주간", gen.gotLabel)
	}
}

func TestFamilySummary_UnknownPeriodDefaultsToWeekly(t *testing.T) {
	store := &mockStore{}
	gen := &mockSummaryGenerator{headline: "headline"}
	fixedNow := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	uc := &FamilySummary{store: store, generator: gen, now: func() time.Time { return fixedNow }}

	_, err := uc.Execute(context.Background(), SummaryInput{FamilyID: "F1", Period: "unknown"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if gen.gotLabel != "주간" {
		t.Fatalf("periodLabel for an unrecognized period = %q, want the weekly fallback", gen.gotLabel)
	}
}
