// Package ports declares the capability interfaces the use-case layer
// depends on. Concrete adapters are bound to these interfaces at startup
// in cmd/server; no use case ever names a concrete adapter type.
package ports

import (
	"context"
	"time"

	"github.com/kocory1/AllFamilyAI/internal/domain"
)

// VectorStore abstracts the RAG backing store: append-only persistence of
// QA Records plus the handful of filtered lookups the use cases need.
// Every method is fallible; see individual method docs for which
// failures degrade (return a zero value) versus surface to the caller.
type VectorStore interface {
	// Store appends qa as a new vector. There is no dedup and no update
	// path: a newer exchange is always a new record. Returns false only
	// on a transport/quota failure; callers treat false as fatal.
	Store(ctx context.Context, qa domain.QARecord) (bool, error)

	// SearchByMember returns up to k records owned by memberID, ranked by
	// cosine similarity of their rendered text to query's rendered text,
	// most similar first. Fewer than k is allowed.
	SearchByMember(ctx context.Context, memberID string, query domain.QARecord, k int) ([]domain.QARecord, error)

	// SearchByFamily is SearchByMember filtered by familyID instead.
	SearchByFamily(ctx context.Context, familyID string, query domain.QARecord, k int) ([]domain.QARecord, error)

	// SearchSimilarQuestions embeds the raw question text (not the
	// rendered form) and returns the top-1 cosine similarity among
	// memberID's stored vectors, clamped to [0,1]. Returns 0 when the
	// member owns no vectors yet. This is the novelty probe.
	SearchSimilarQuestions(ctx context.Context, questionText string, memberID string) (float64, error)

	// RecentByMember returns memberID's limit most recent records,
	// newest first.
	RecentByMember(ctx context.Context, memberID string, limit int) ([]domain.QARecord, error)

	// RecentByFamily scans familyID's records, groups by member, and
	// within each group returns the limitPerMember most recent. The
	// concatenated result's cross-group ordering is unspecified.
	RecentByFamily(ctx context.Context, familyID string, limitPerMember int) ([]domain.QARecord, error)

	// InRange returns familyID's records with start <= AnsweredAt <= end
	// (closed-closed), ascending by time.
	InRange(ctx context.Context, familyID string, start, end time.Time) ([]domain.QARecord, error)

	// DeleteByMember deletes every record owned by memberID and returns
	// the count deleted. 0 means the member never stored anything.
	DeleteByMember(ctx context.Context, memberID string) (int, error)
}

// QuestionGenerator produces candidate questions in one of two modes.
type QuestionGenerator interface {
	// GenerateQuestion is "derive" mode: given a base exchange and up to
	// N related prior exchanges, produce one new question that deepens
	// or personalizes the base, plus an inferred difficulty.
	GenerateQuestion(ctx context.Context, baseQA domain.QARecord, ragContext []domain.QARecord) (string, domain.QuestionLevel, error)

	// GenerateQuestionForTarget is "target" mode: no base exchange; the
	// question is addressed to targetRoleLabel and must fit the thread
	// implied by context, a heterogeneous list spanning family members.
	GenerateQuestionForTarget(ctx context.Context, targetMemberID, targetRoleLabel string, context []domain.QARecord) (string, domain.QuestionLevel, error)
}

// SummaryGenerator renders a period's worth of QA text into one headline.
type SummaryGenerator interface {
	GenerateSummary(ctx context.Context, qaTexts []string, periodLabel string, answerCount int) (string, error)
}
