// Package httpapi is the boundary adapter of §9's port/adapter layering:
// it translates the external request/response shapes of spec §6
// (camelCase JSON) to and from the use-case DTOs in internal/usecase, and
// maps internal/apperr.Kind to HTTP status codes. No use case or
// generator type is named outside this package's handler constructors.
package httpapi

import "time"

// generateRequest is the shared wire shape for
// POST questions/generate/personal and POST questions/generate/family.
type generateRequest struct {
	FamilyID     string    `json:"familyId" binding:"required"`
	MemberID     string    `json:"memberId" binding:"required"`
	RoleLabel    string    `json:"roleLabel"`
	BaseQuestion string    `json:"baseQuestion" binding:"required"`
	BaseAnswer   string    `json:"baseAnswer"`
	AnsweredAt   time.Time `json:"answeredAt" binding:"required"`
}

// familyRecentRequest is POST questions/generate/family-recent's body.
type familyRecentRequest struct {
	FamilyID        string   `json:"familyId" binding:"required"`
	TargetMemberID  string   `json:"targetMemberId" binding:"required"`
	TargetRoleLabel string   `json:"targetRoleLabel" binding:"required"`
	MemberIDs       []string `json:"memberIds"`
}

// questionMetadata is the observability metadata every
// question-generation response carries verbatim, per §4.6 step 5 and the
// "Observability hooks" design note: operators tune the novelty
// threshold from these fields, so they are never hidden.
type questionMetadata struct {
	RAGCount          int    `json:"ragCount,omitempty"`
	ContextCount      int    `json:"contextCount,omitempty"`
	MemberID          string `json:"memberId,omitempty"`
	TargetMemberID    string `json:"targetMemberId,omitempty"`
	FamilyID          string `json:"familyId"`
	RegenerationCount int    `json:"regenerationCount"`
	SimilarityWarning bool   `json:"similarityWarning"`
}

// generateResponse is the shared 200 shape across all three generation
// endpoints; priority is fixed per endpoint (2 personal, 3 family, 4
// family-recent) per §6.
type generateResponse struct {
	MemberID string           `json:"memberId"`
	Content  string           `json:"content"`
	Level    int              `json:"level"`
	Priority int              `json:"priority"`
	Metadata questionMetadata `json:"metadata"`
}

// summaryResponse is GET summary's 200 shape.
type summaryResponse struct {
	Context string `json:"context"`
}

// deleteMemberRequest is POST members/delete's body.
type deleteMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// deleteMemberResponse is POST members/delete's 200 shape.
type deleteMemberResponse struct {
	DeletedCount int `json:"deletedCount"`
}

// analyzeAnswerRequest is POST analysis/answer's body, per §6's sibling
// contract summary.
type analyzeAnswerRequest struct {
	UserID           string   `json:"userId" binding:"required"`
	QuestionContent  string   `json:"questionContent" binding:"required"`
	AnswerText       string   `json:"answerText"`
	QuestionCategory string   `json:"questionCategory"`
	QuestionTags     []string `json:"questionTags"`
	QuestionTone     string   `json:"questionTone"`
	Language         string   `json:"language"`
}

// analyzeAnswerResponse is POST analysis/answer's 200 shape.
type analyzeAnswerResponse struct {
	Summary         string         `json:"summary"`
	Categories      []string       `json:"categories"`
	Keywords        []string       `json:"keywords"`
	Scores          map[string]any `json:"scores"`
	AnalysisVersion string         `json:"analysisVersion"`
	ParseOk         bool           `json:"parseOk"`
}

// errorResponse is the uniform error body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}
