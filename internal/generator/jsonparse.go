package generator

import (
	"encoding/json"
	"fmt"

	"github.com/kocory1/AllFamilyAI/internal/apperr"
	"github.com/kocory1/AllFamilyAI/internal/domain"
)

// generationResult is the required JSON shape every generator call demands
// per §4.4: a non-empty question plus an integer level. Level is parsed via
// json.Number so both `2` and `"2"` survive a sloppy model response; the
// safe factory then maps a non-integer or out-of-range level to 2.
type generationResult struct {
	Question string      `json:"question"`
	Level    json.Number `json:"level"`
}

// parseGenerationResult parses a chat completion's content as the
// {"question","level"} contract. A missing or empty question is a
// ContractViolation, per §7 — the novelty controller treats this as a
// failed attempt and retries rather than surfacing it directly.
func parseGenerationResult(content string) (string, domain.QuestionLevel, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return "", 0, apperr.Wrap(apperr.ContractViolation, "llm response is not valid JSON", err)
	}

	questionVal, hasQuestion := raw["question"]
	_, hasLevel := raw["level"]
	if !hasQuestion || !hasLevel {
		return "", 0, apperr.New(apperr.ContractViolation,
			fmt.Sprintf("llm response missing required keys, got %v", keysOf(raw)))
	}

	question, _ := questionVal.(string)
	if question == "" {
		return "", 0, apperr.New(apperr.ContractViolation, "llm response question field is empty")
	}

	levelVal := raw["level"]
	var typed generationResult
	if err := json.Unmarshal([]byte(content), &typed); err == nil {
		if n, err := typed.Level.Int64(); err == nil {
			levelVal = int(n)
		}
	}
	level := domain.LevelFromAny(levelVal)
	return question, level, nil
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
