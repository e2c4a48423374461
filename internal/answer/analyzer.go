package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kocory1/AllFamilyAI/services/llm"
)

// maxCompletionTokens is generous headroom for a reasoning model, whose
// token budget covers hidden reasoning as well as the visible JSON
// output, per the Python original's comment on this constant.
const maxCompletionTokens = 10000

// Analyzer runs the answer-analysis flow: build a Korean prompt, call the
// model in JSON mode, parse defensively, sanitize the scores. Grounded on
// app/answer/openai_answer_analyzer.py's OpenAIAnswerAnalyzer.
type Analyzer struct {
	client llm.Client
	model  string
	now    func() time.Time
}

// NewAnalyzer builds an Analyzer against model. now defaults to
// time.Now; tests supply a fixed clock.
func NewAnalyzer(client llm.Client, model string) *Analyzer {
	return &Analyzer{client: client, model: model, now: time.Now}
}

type decodedBody struct {
	Summary    string         `json:"summary"`
	Categories []string       `json:"categories"`
	Scores     map[string]any `json:"scores"`
}

// Analyze runs the full flow and never returns an error for a malformed
// model response: a parse failure surfaces as AnalysisRaw.ParseOk=false
// with empty summary/categories/scores, matching the Python original's
// "parsing failure still returns a response object" behavior. Analyze
// only errors when the chat call itself fails.
func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error) {
	if req.Language == "" {
		req.Language = "ko"
	}

	prompt := buildPrompt(req)
	slog.Info("answer: prompt built", "length", len(prompt))

	params := map[string]any{
		"model":                 a.model,
		"max_completion_tokens": maxCompletionTokens,
		"language":              req.Language,
		"top_k":                 5,
		"thresholds":            map[string]any{"toxicity": 0.6},
		"tasks":                 []string{"sentiment", "summary", "keywords", "emotion", "relevance", "toxicity"},
		"context": map[string]any{
			"question_category": req.QuestionCategory,
			"question_tags":      req.QuestionTags,
			"question_tone":      req.QuestionTone,
		},
		"response_format": "json_object",
	}

	temperature := float32(0)
	rawText, err := a.client.Chat(ctx, []llm.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.Params{
		Model:               a.model,
		MaxCompletionTokens: maxCompletionTokens,
		Temperature:         temperaturePtr(a.model, temperature),
		ResponseFormatJSON:  true,
	})
	if err != nil {
		return AnalysisResponse{}, fmt.Errorf("answer: chat call: %w", err)
	}
	slog.Info("answer: response received", "length", len(rawText))

	body, parseOk := parseBody(rawText)

	return AnalysisResponse{
		AnalysisPrompt:     prompt,
		AnalysisParameters: params,
		AnalysisRaw:        AnalysisRaw{Text: rawText, ParseOk: parseOk},
		AnalysisVersion:    fmt.Sprintf("ans-v1.0:%s:%s", a.model, a.now().Format("2006-01-02")),
		Summary:            body.Summary,
		Categories:         body.Categories,
		Keywords:           keywordsFrom(body.Scores),
		Scores:             sanitizeScores(body.Scores),
		CreatedAt:          a.now(),
	}, nil
}

// temperaturePtr omits temperature for reasoning-family models, matching
// services/llm's IsReasoningFamily convention used by the generators.
func temperaturePtr(model string, t float32) *float32 {
	if llm.IsReasoningFamily(model) {
		return nil
	}
	return &t
}

// parseBody attempts a direct JSON decode first and, on failure, falls
// back to extracting the outermost {...} span and decoding that — the
// same two-step tolerance as the Python original's json.loads /
// find("{")..rfind("}") fallback. Either step failing leaves the zero
// value and parseOk=false.
func parseBody(raw string) (decodedBody, bool) {
	var body decodedBody
	if err := json.Unmarshal([]byte(raw), &body); err == nil {
		return body, true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return decodedBody{}, false
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &body); err == nil {
		return body, true
	}
	return decodedBody{}, false
}

// keywordsFrom lifts the response's top-level keywords out of the
// nested scores object, since the model emits them there per the
// published schema but the response DTO also exposes them at top level.
func keywordsFrom(scores map[string]any) []string {
	raw, ok := scores["keywords"]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
