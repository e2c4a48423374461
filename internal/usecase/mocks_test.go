package usecase

import (
	"context"
	"time"

	"github.com/kocory1/AllFamilyAI/internal/domain"
)

// mockStore is a hand-rolled ports.VectorStore test double — the pack
// carries no mocking library, so this follows the teacher's own
// interface-backed struct-field mock style (routes_test.go's
// mockLLMClient).
type mockStore struct {
	searchByMemberResult []domain.QARecord
	searchByMemberErr    error
	searchByMemberCalls  int
	searchByMemberK      int

	searchByFamilyResult []domain.QARecord
	searchByFamilyErr    error
	searchByFamilyCalls  int
	searchByFamilyK      int

	similarity             float64
	similarityErr          error
	lastSimilarityMemberID string

	recentByMemberResult []domain.QARecord
	recentByMemberErr    error

	recentByFamilyResult []domain.QARecord
	recentByFamilyErr    error

	inRangeResult []domain.QARecord
	inRangeErr    error
	inRangeStart  time.Time
	inRangeEnd    time.Time

	deleteCount int
	deleteErr   error

	storeCalls     int
	storeReturn    bool
	storeReturnSet bool
	storeErr       error
	stored         []domain.QARecord
}

// Store defaults to reporting success (storeReturn=true) unless a test
// explicitly sets storeReturn=false via storeReturnSet, matching the
// common case where only a handful of tests care about the persistence
// failure path.
func (m *mockStore) Store(ctx context.Context, qa domain.QARecord) (bool, error) {
	m.storeCalls++
	m.stored = append(m.stored, qa)
	if m.storeErr != nil {
		return false, m.storeErr
	}
	if m.storeReturnSet {
		return m.storeReturn, nil
	}
	return true, nil
}

func (m *mockStore) SearchByMember(ctx context.Context, memberID string, query domain.QARecord, k int) ([]domain.QARecord, error) {
	m.searchByMemberCalls++
	m.searchByMemberK = k
	return m.searchByMemberResult, m.searchByMemberErr
}

func (m *mockStore) SearchByFamily(ctx context.Context, familyID string, query domain.QARecord, k int) ([]domain.QARecord, error) {
	m.searchByFamilyCalls++
	m.searchByFamilyK = k
	return m.searchByFamilyResult, m.searchByFamilyErr
}

func (m *mockStore) SearchSimilarQuestions(ctx context.Context, questionText, memberID string) (float64, error) {
	m.lastSimilarityMemberID = memberID
	return m.similarity, m.similarityErr
}

func (m *mockStore) RecentByMember(ctx context.Context, memberID string, limit int) ([]domain.QARecord, error) {
	return m.recentByMemberResult, m.recentByMemberErr
}

func (m *mockStore) RecentByFamily(ctx context.Context, familyID string, limitPerMember int) ([]domain.QARecord, error) {
	return m.recentByFamilyResult, m.recentByFamilyErr
}

func (m *mockStore) InRange(ctx context.Context, familyID string, start, end time.Time) ([]domain.QARecord, error) {
	m.inRangeStart, m.inRangeEnd = start, end
	return m.inRangeResult, m.inRangeErr
}

func (m *mockStore) DeleteByMember(ctx context.Context, memberID string) (int, error) {
	return m.deleteCount, m.deleteErr
}

// mockGenerator is a hand-rolled ports.QuestionGenerator test double that
// always returns a fixed candidate, recording call counts so tests can
// assert the novelty controller drove the right number of attempts.
type mockGenerator struct {
	question string
	level    domain.QuestionLevel
	err      error
	calls    int
}

func (m *mockGenerator) GenerateQuestion(ctx context.Context, baseQA domain.QARecord, ragContext []domain.QARecord) (string, domain.QuestionLevel, error) {
	m.calls++
	return m.question, m.level, m.err
}

func (m *mockGenerator) GenerateQuestionForTarget(ctx context.Context, targetMemberID, targetRoleLabel string, context []domain.QARecord) (string, domain.QuestionLevel, error) {
	m.calls++
	return m.question, m.level, m.err
}

// mockSummaryGenerator is a hand-rolled ports.SummaryGenerator test double.
type mockSummaryGenerator struct {
	headline string
	err      error
	gotTexts []string
	gotLabel string
	gotCount int
}

func (m *mockSummaryGenerator) GenerateSummary(ctx context.Context, qaTexts []string, periodLabel string, answerCount int) (string, error) {
	m.gotTexts = qaTexts
	m.gotLabel = periodLabel
	m.gotCount = answerCount
	return m.headline, m.err
}
