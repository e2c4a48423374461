package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kocory1/AllFamilyAI/internal/answer"
	"github.com/kocory1/AllFamilyAI/internal/apperr"
	"github.com/kocory1/AllFamilyAI/internal/usecase"
)

// Metrics is the subset of *observability.Metrics the handlers record
// against; declared here as an interface so httpapi does not need to
// import the observability package's OTel setup, only the call shape it
// exposes.
type Metrics interface {
	RecordRequest(ctx context.Context, endpoint string, success bool)
	RecordNovelty(ctx context.Context, endpoint string, regenerations int, warning bool)
	RecordContractViolation(ctx context.Context, endpoint string)
	RecordDuration(ctx context.Context, endpoint string, seconds float64)
}

// Handler wires the five use cases and the answer analyzer behind the
// wire shapes of spec §6. It holds no business logic of its own: every
// method does bind -> translate -> call use case -> translate -> respond.
type Handler struct {
	personal     *usecase.PersonalRAG
	family       *usecase.FamilyRAG
	familyRecent *usecase.FamilyRecent
	summary      *usecase.FamilySummary
	lifecycle    *usecase.MemberLifecycle
	analyzer     *answer.Analyzer
	metrics      Metrics
}

// NewHandler builds a Handler over the already-wired use cases. metrics
// may be nil, in which case no instrumentation is recorded (useful for
// tests that do not care about observability).
func NewHandler(
	personal *usecase.PersonalRAG,
	family *usecase.FamilyRAG,
	familyRecent *usecase.FamilyRecent,
	summary *usecase.FamilySummary,
	lifecycle *usecase.MemberLifecycle,
	analyzer *answer.Analyzer,
	metrics Metrics,
) *Handler {
	return &Handler{
		personal:     personal,
		family:       family,
		familyRecent: familyRecent,
		summary:      summary,
		lifecycle:    lifecycle,
		analyzer:     analyzer,
		metrics:      metrics,
	}
}

func (h *Handler) record(ctx context.Context, endpoint string, start time.Time, err error) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordRequest(ctx, endpoint, err == nil)
	h.metrics.RecordDuration(ctx, endpoint, time.Since(start).Seconds())
	if kind, ok := apperr.KindOf(err); ok && kind == apperr.ContractViolation {
		h.metrics.RecordContractViolation(ctx, endpoint)
	}
}

// GeneratePersonal handles POST questions/generate/personal, §4.6.
func (h *Handler) GeneratePersonal(c *gin.Context) {
	const endpoint = "questions.generate.personal"
	start := time.Now()

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	out, err := h.personal.Execute(c.Request.Context(), usecase.RAGQuestionInput{
		FamilyID:     req.FamilyID,
		MemberID:     req.MemberID,
		RoleLabel:    req.RoleLabel,
		BaseQuestion: req.BaseQuestion,
		BaseAnswer:   req.BaseAnswer,
		AnsweredAt:   req.AnsweredAt,
	})
	h.record(c.Request.Context(), endpoint, start, err)
	if err != nil {
		slog.Error("httpapi: personal generation failed", "error", err)
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordNovelty(c.Request.Context(), endpoint, out.Metadata.RegenerationCount, out.Metadata.SimilarityWarning)
	}

	c.JSON(http.StatusOK, generateResponse{
		MemberID: out.Metadata.MemberID,
		Content:  out.Question,
		Level:    out.Level,
		Priority: 2,
		Metadata: questionMetadata{
			RAGCount:          out.Metadata.RAGCount,
			MemberID:          out.Metadata.MemberID,
			FamilyID:          out.Metadata.FamilyID,
			RegenerationCount: out.Metadata.RegenerationCount,
			SimilarityWarning: out.Metadata.SimilarityWarning,
		},
	})
}

// GenerateFamily handles POST questions/generate/family, §4.7.
func (h *Handler) GenerateFamily(c *gin.Context) {
	const endpoint = "questions.generate.family"
	start := time.Now()

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	out, err := h.family.Execute(c.Request.Context(), usecase.RAGQuestionInput{
		FamilyID:     req.FamilyID,
		MemberID:     req.MemberID,
		RoleLabel:    req.RoleLabel,
		BaseQuestion: req.BaseQuestion,
		BaseAnswer:   req.BaseAnswer,
		AnsweredAt:   req.AnsweredAt,
	})
	h.record(c.Request.Context(), endpoint, start, err)
	if err != nil {
		slog.Error("httpapi: family generation failed", "error", err)
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordNovelty(c.Request.Context(), endpoint, out.Metadata.RegenerationCount, out.Metadata.SimilarityWarning)
	}

	c.JSON(http.StatusOK, generateResponse{
		MemberID: out.Metadata.MemberID,
		Content:  out.Question,
		Level:    out.Level,
		Priority: 3,
		Metadata: questionMetadata{
			RAGCount:          out.Metadata.RAGCount,
			MemberID:          out.Metadata.MemberID,
			FamilyID:          out.Metadata.FamilyID,
			RegenerationCount: out.Metadata.RegenerationCount,
			SimilarityWarning: out.Metadata.SimilarityWarning,
		},
	})
}

// GenerateFamilyRecent handles POST questions/generate/family-recent, §4.8.
func (h *Handler) GenerateFamilyRecent(c *gin.Context) {
	const endpoint = "questions.generate.family-recent"
	start := time.Now()

	var req familyRecentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	out, err := h.familyRecent.Execute(c.Request.Context(), usecase.FamilyRecentInput{
		FamilyID:        req.FamilyID,
		TargetMemberID:  req.TargetMemberID,
		TargetRoleLabel: req.TargetRoleLabel,
		MemberIDs:       req.MemberIDs,
	})
	h.record(c.Request.Context(), endpoint, start, err)
	if err != nil {
		slog.Error("httpapi: family-recent generation failed", "error", err)
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordNovelty(c.Request.Context(), endpoint, out.Metadata.RegenerationCount, out.Metadata.SimilarityWarning)
	}

	c.JSON(http.StatusOK, generateResponse{
		MemberID: out.Metadata.TargetMemberID,
		Content:  out.Question,
		Level:    out.Level,
		Priority: 4,
		Metadata: questionMetadata{
			ContextCount:      out.Metadata.ContextCount,
			TargetMemberID:    out.Metadata.TargetMemberID,
			FamilyID:          out.Metadata.FamilyID,
			RegenerationCount: out.Metadata.RegenerationCount,
			SimilarityWarning: out.Metadata.SimilarityWarning,
		},
	})
}

// Summary handles GET summary, §4.9.
func (h *Handler) Summary(c *gin.Context) {
	const endpoint = "summary"
	start := time.Now()

	familyID := c.Query("familyId")
	period := c.Query("period")
	if familyID == "" || (period != "weekly" && period != "monthly") {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "familyId is required and period must be 'weekly' or 'monthly'"})
		return
	}

	out, err := h.summary.Execute(c.Request.Context(), usecase.SummaryInput{FamilyID: familyID, Period: period})
	h.record(c.Request.Context(), endpoint, start, err)
	if err != nil {
		slog.Error("httpapi: summary failed", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaryResponse{Context: out.Context})
}

// DeleteMember handles POST members/delete, §4.10.
func (h *Handler) DeleteMember(c *gin.Context) {
	const endpoint = "members.delete"
	start := time.Now()

	var req deleteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	count, err := h.lifecycle.DeleteMember(c.Request.Context(), req.MemberID)
	h.record(c.Request.Context(), endpoint, start, err)
	if err != nil {
		slog.Error("httpapi: member deletion failed", "member_id", req.MemberID, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteMemberResponse{DeletedCount: count})
}

// AnalyzeAnswer handles POST analysis/answer, §6's sibling summary.
func (h *Handler) AnalyzeAnswer(c *gin.Context) {
	const endpoint = "analysis.answer"
	start := time.Now()

	var req analyzeAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), answer.AnalysisRequest{
		UserID:           req.UserID,
		AnswerText:       req.AnswerText,
		Language:         req.Language,
		QuestionContent:  req.QuestionContent,
		QuestionCategory: req.QuestionCategory,
		QuestionTags:     req.QuestionTags,
		QuestionTone:     req.QuestionTone,
	})
	h.record(c.Request.Context(), endpoint, start, err)
	if err != nil {
		slog.Error("httpapi: answer analysis failed", "user_id", req.UserID, "error", err)
		respondError(c, apperr.Wrap(apperr.UpstreamUnavailable, "analyzing answer", err))
		return
	}

	c.JSON(http.StatusOK, analyzeAnswerResponse{
		Summary:         result.Summary,
		Categories:      result.Categories,
		Keywords:        result.Keywords,
		Scores:          result.Scores,
		AnalysisVersion: result.AnalysisVersion,
		ParseOk:         result.AnalysisRaw.ParseOk,
	})
}

// Health handles GET health, the startup-health-check's runtime sibling:
// reachability only, not a re-run of the fail-fast checks in §5.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
