package domain

import (
	"testing"
	"time"
)

func mustQA(t *testing.T, family, member, role, question, answer string, at time.Time) QARecord {
	t.Helper()
	qa, err := NewQARecord(family, member, role, question, answer, at)
	if err != nil {
		t.Fatalf("NewQARecord: unexpected error: %v", err)
	}
	return qa
}

func TestNewQARecord_RejectsEmptyIdentifiers(t *testing.T) {
	at := time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC)

	if _, err := NewQARecord("", "m1", "role", "q", "a", at); err == nil {
		t.Fatal("expected an error for empty family id")
	}
	if _, err := NewQARecord("f1", "", "role", "q", "a", at); err == nil {
		t.Fatal("expected an error for empty member id")
	}
	if _, err := NewQARecord("f1", "m1", "role", "q", "a", time.Time{}); err == nil {
		t.Fatal("expected an error for a zero answered_at")
	}
}

func TestQARecord_RenderedEmbeddingText_Deterministic(t *testing.T) {
	at := time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC)
	qa := mustQA(t, "F1", "M1", "첫째 딸", "오늘 뭐 했어?", "친구들과 놀았어요", at)

	first := qa.RenderedEmbeddingText()
	second := qa.RenderedEmbeddingText()
	if first != second {
		t.Fatalf("rendered text is not deterministic: %q != %q", first, second)
	}

	want := "2026년 1월 20일에 첫째 딸이(가) 받은 질문: 오늘 뭐 했어?\n답변: 친구들과 놀았어요"
	if first != want {
		t.Fatalf("rendered text = %q, want %q", first, want)
	}
}

func TestQARecord_DateParts(t *testing.T) {
	at := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	qa := mustQA(t, "F1", "M1", "role", "q", "a", at)

	y, m, d := qa.DateParts()
	if y != 2026 || m != 3 || d != 5 {
		t.Fatalf("DateParts() = (%d, %d, %d), want (2026, 3, 5)", y, m, d)
	}
}

func TestQARecord_Immutable(t *testing.T) {
	at := time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC)
	qa := mustQA(t, "F1", "M1", "role", "q", "a", at)

	// Accessors return copies of value types; nothing on QARecord exposes
	// a pointer a caller could mutate through, so repeated reads must
	// stay identical across the record's lifetime.
	if qa.FamilyID() != "F1" || qa.MemberID() != "M1" || qa.Question() != "q" || qa.Answer() != "a" {
		t.Fatal("accessor values changed from construction")
	}
}
