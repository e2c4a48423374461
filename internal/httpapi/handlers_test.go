package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kocory1/AllFamilyAI/internal/answer"
	"github.com/kocory1/AllFamilyAI/internal/domain"
	"github.com/kocory1/AllFamilyAI/internal/novelty"
	"github.com/kocory1/AllFamilyAI/internal/usecase"
	"github.com/kocory1/AllFamilyAI/services/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubStore implements ports.VectorStore with fields a test can set
// directly; every method returns zero values unless configured.
type stubStore struct {
	storeFails    bool
	storeErr      error
	searchResult  []domain.QARecord
	searchErr     error
	similarity    float64
	similarityErr error
	recentMember  []domain.QARecord
	recentFamily  []domain.QARecord
	inRangeResult []domain.QARecord
	deleteCount   int
	deleteErr     error
}

func (s *stubStore) Store(ctx context.Context, qa domain.QARecord) (bool, error) {
	if s.storeErr != nil {
		return false, s.storeErr
	}
	if s.storeFails {
		return false, nil
	}
	return true, nil
}

func (s *stubStore) SearchByMember(ctx context.Context, memberID string, query domain.QARecord, k int) ([]domain.QARecord, error) {
	return s.searchResult, s.searchErr
}

func (s *stubStore) SearchByFamily(ctx context.Context, familyID string, query domain.QARecord, k int) ([]domain.QARecord, error) {
	return s.searchResult, s.searchErr
}

func (s *stubStore) SearchSimilarQuestions(ctx context.Context, questionText, memberID string) (float64, error) {
	return s.similarity, s.similarityErr
}

func (s *stubStore) RecentByMember(ctx context.Context, memberID string, limit int) ([]domain.QARecord, error) {
	return s.recentMember, nil
}

func (s *stubStore) RecentByFamily(ctx context.Context, familyID string, limitPerMember int) ([]domain.QARecord, error) {
	return s.recentFamily, nil
}

func (s *stubStore) InRange(ctx context.Context, familyID string, start, end time.Time) ([]domain.QARecord, error) {
	return s.inRangeResult, nil
}

func (s *stubStore) DeleteByMember(ctx context.Context, memberID string) (int, error) {
	return s.deleteCount, s.deleteErr
}

// stubGenerator implements ports.QuestionGenerator with a fixed answer.
type stubGenerator struct {
	question string
	level    domain.QuestionLevel
	err      error
}

func (g *stubGenerator) GenerateQuestion(ctx context.Context, baseQA domain.QARecord, ragContext []domain.QARecord) (string, domain.QuestionLevel, error) {
	return g.question, g.level, g.err
}

func (g *stubGenerator) GenerateQuestionForTarget(ctx context.Context, targetMemberID, targetRoleLabel string, context []domain.QARecord) (string, domain.QuestionLevel, error) {
	return g.question, g.level, g.err
}

// stubSummaryGenerator implements ports.SummaryGenerator.
type stubSummaryGenerator struct {
	headline string
	err      error
}

func (g *stubSummaryGenerator) GenerateSummary(ctx context.Context, qaTexts []string, periodLabel string, answerCount int) (string, error) {
	return g.headline, g.err
}

// stubLLM implements llm.Client for the answer analyzer.
type stubLLM struct {
	response string
	err      error
}

func (c *stubLLM) Chat(ctx context.Context, messages []llm.Message, params llm.Params) (string, error) {
	return c.response, c.err
}

func newTestHandler(store *stubStore, gen *stubGenerator, summaryGen *stubSummaryGenerator, llmClient llm.Client) *Handler {
	controller := novelty.Controller{Threshold: novelty.DefaultThreshold, MaxAttempts: novelty.DefaultMaxAttempts}
	personal := usecase.NewPersonalRAG(store, gen, controller)
	family := usecase.NewFamilyRAG(store, gen, controller)
	familyRecent := usecase.NewFamilyRecent(store, gen, controller)
	summary := usecase.NewFamilySummary(store, summaryGen)
	lifecycle := usecase.NewMemberLifecycle(store)
	analyzer := answer.NewAnalyzer(llmClient, "gpt-4o-mini")
	return NewHandler(personal, family, familyRecent, summary, lifecycle, analyzer, nil)
}

func newTestRouter(h *Handler) *gin.Engine {
	engine := gin.New()
	NewRouter(engine, h, nil)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGeneratePersonal_HappyPathReturnsPriority2(t *testing.T) {
	store := &stubStore{similarity: 0.1}
	gen := &stubGenerator{question: "새로운 질문", level: 3}
	engine := newTestRouter(newTestHandler(store, gen, &stubSummaryGenerator{}, &stubLLM{}))

	rec := doJSON(t, engine, http.MethodPost, "/questions/generate/personal", map[string]any{
		"familyId":     "F1",
		"memberId":     "M1",
		"roleLabel":    "첫째 딸",
		"baseQuestion": "오늘 뭐 했어?",
		"baseAnswer":   "놀았어요",
		"answeredAt":   time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Priority)
	assert.Equal(t, "새로운 질문", resp.Content)
	assert.Equal(t, 3, resp.Level)
}

func TestGenerateFamily_HappyPathReturnsPriority3(t *testing.T) {
	store := &stubStore{similarity: 0.1}
	gen := &stubGenerator{question: "가족 질문", level: 2}
	engine := newTestRouter(newTestHandler(store, gen, &stubSummaryGenerator{}, &stubLLM{}))

	rec := doJSON(t, engine, http.MethodPost, "/questions/generate/family", map[string]any{
		"familyId":     "F1",
		"memberId":     "M1",
		"roleLabel":    "첫째 딸",
		"baseQuestion": "q",
		"baseAnswer":   "a",
		"answeredAt":   time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Priority)
}

func TestGenerateFamilyRecent_HappyPathReturnsPriority4(t *testing.T) {
	store := &stubStore{similarity: 0.1}
	gen := &stubGenerator{question: "대상 질문", level: 1}
	engine := newTestRouter(newTestHandler(store, gen, &stubSummaryGenerator{}, &stubLLM{}))

	rec := doJSON(t, engine, http.MethodPost, "/questions/generate/family-recent", map[string]any{
		"familyId":        "F1",
		"targetMemberId":  "M2",
		"targetRoleLabel": "아빠",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Priority)
	assert.Equal(t, "M2", resp.MemberID)
}

func TestGeneratePersonal_MalformedBodyIs422(t *testing.T) {
	engine := newTestRouter(newTestHandler(&stubStore{}, &stubGenerator{}, &stubSummaryGenerator{}, &stubLLM{}))

	rec := doJSON(t, engine, http.MethodPost, "/questions/generate/personal", map[string]any{
		"familyId": "F1",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestSummary_MissingQueryParamsIs422(t *testing.T) {
	engine := newTestRouter(newTestHandler(&stubStore{}, &stubGenerator{}, &stubSummaryGenerator{}, &stubLLM{}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary?familyId=F1", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestSummary_HappyPath(t *testing.T) {
	store := &stubStore{inRangeResult: nil}
	summaryGen := &stubSummaryGenerator{headline: "이번 주는 평온했어요"}
	engine := newTestRouter(newTestHandler(store, &stubGenerator{}, summaryGen, &stubLLM{}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary?familyId=F1&period=weekly", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp summaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "이번 주는 평온했어요", resp.Context)
}

func TestDeleteMember_NotFoundMapsTo400(t *testing.T) {
	store := &stubStore{deleteCount: 0}
	engine := newTestRouter(newTestHandler(store, &stubGenerator{}, &stubSummaryGenerator{}, &stubLLM{}))

	rec := doJSON(t, engine, http.MethodPost, "/members/delete", map[string]any{"memberId": "M_unknown"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestDeleteMember_HappyPathReturns200(t *testing.T) {
	store := &stubStore{deleteCount: 3}
	engine := newTestRouter(newTestHandler(store, &stubGenerator{}, &stubSummaryGenerator{}, &stubLLM{}))

	rec := doJSON(t, engine, http.MethodPost, "/members/delete", map[string]any{"memberId": "M1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp deleteMemberResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.DeletedCount)
}

func TestAnalyzeAnswer_HappyPath(t *testing.T) {
	llmClient := &stubLLM{response: `{"summary": "요약", "categories": ["가족"], "scores": {"sentiment": 0.8}}`}
	engine := newTestRouter(newTestHandler(&stubStore{}, &stubGenerator{}, &stubSummaryGenerator{}, llmClient))

	rec := doJSON(t, engine, http.MethodPost, "/analysis/answer", map[string]any{
		"userId":          "U1",
		"questionContent": "오늘 뭐 했어?",
		"answerText":      "놀았어요",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp analyzeAnswerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "요약", resp.Summary)
	assert.True(t, resp.ParseOk)
}

func TestAnalyzeAnswer_ChatFailureIs500(t *testing.T) {
	llmClient := &stubLLM{err: context.DeadlineExceeded}
	engine := newTestRouter(newTestHandler(&stubStore{}, &stubGenerator{}, &stubSummaryGenerator{}, llmClient))

	rec := doJSON(t, engine, http.MethodPost, "/analysis/answer", map[string]any{
		"userId":          "U1",
		"questionContent": "q",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
}

func TestHealth_ReturnsOK(t *testing.T) {
	engine := newTestRouter(newTestHandler(&stubStore{}, &stubGenerator{}, &stubSummaryGenerator{}, &stubLLM{}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
