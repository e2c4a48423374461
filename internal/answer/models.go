// Package answer implements the answer-analysis sibling pipeline: a
// strict Korean-prompt JSON-schema analysis of a single answer, scored
// and sanitized into fixed ranges. It is deliberately independent of
// internal/usecase — the analysis flow never touches the vector store or
// the novelty controller.
package answer

import "time"

// AnalysisRequest is the input to Analyze, grounded on the Python
// original's AnswerAnalysisRequest.
type AnalysisRequest struct {
	UserID           string
	AnswerText       string
	Language         string // defaults to "ko" when empty
	QuestionContent  string
	QuestionCategory string
	QuestionTags     []string
	QuestionTone     string
}

// AnalysisRaw carries the LLM's unprocessed response text alongside
// whether it parsed as JSON.
type AnalysisRaw struct {
	Text    string
	ParseOk bool
}

// AnalysisResponse is the result of Analyze, grounded on the Python
// original's AnswerAnalysisResponse.
type AnalysisResponse struct {
	AnalysisPrompt     string
	AnalysisParameters map[string]any
	AnalysisRaw        AnalysisRaw
	AnalysisVersion    string
	Summary            string
	Categories         []string
	Keywords           []string
	Scores             map[string]any
	CreatedAt          time.Time
}
