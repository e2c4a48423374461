// Package usecase implements the five request-driven flows of §4.6–§4.10:
// Personal RAG, Family RAG, Family Recent, Family Summary, and Member
// Lifecycle. Each type here is the use-case-level DTO; the HTTP boundary
// (internal/httpapi) translates to/from the camelCase wire shapes of §6.
package usecase

import "time"

// RAGQuestionInput is the shared input shape for Personal RAG and Family
// RAG: a base exchange plus the identifiers needed to scope retrieval and
// storage. The Python original uses one dataclass for both flows; this
// mirrors that.
type RAGQuestionInput struct {
	FamilyID     string
	MemberID     string
	RoleLabel    string
	BaseQuestion string
	BaseAnswer   string
	AnsweredAt   time.Time
}

// QuestionMetadata is the observability metadata every question-generation
// response carries, per §4.6 step 5 / §9 "Observability hooks".
type QuestionMetadata struct {
	RAGCount          int
	ContextCount      int
	MemberID          string
	TargetMemberID    string
	FamilyID          string
	RegenerationCount int
	SimilarityWarning bool
}

// RAGQuestionOutput is the shared output shape for Personal RAG and Family
// RAG.
type RAGQuestionOutput struct {
	Question string
	Level    int
	Metadata QuestionMetadata
}

// FamilyRecentInput is §4.8's input: no base Q/A, just a target member and
// role. MemberIDs is accepted but not read: recent context is drawn from
// every member of the family.
type FamilyRecentInput struct {
	FamilyID        string
	TargetMemberID  string
	TargetRoleLabel string
	MemberIDs       []string
}

// FamilyRecentOutput mirrors RAGQuestionOutput but its metadata carries
// ContextCount instead of RAGCount, per §4.8 step 4.
type FamilyRecentOutput struct {
	Question string
	Level    int
	Metadata QuestionMetadata
}

// SummaryInput is §4.9's input.
type SummaryInput struct {
	FamilyID string
	Period   string // "weekly" | "monthly"
}

// SummaryOutput is §4.9's output: a single rendered headline.
type SummaryOutput struct {
	Context string
}
