package generator

import (
	"testing"

	"github.com/kocory1/AllFamilyAI/internal/apperr"
)

func TestParseGenerationResult_Valid(t *testing.T) {
	question, level, err := parseGenerationResult(`{"question": "친구들과 어떤 놀이를 했나요?", "level": 2}`)
	if err != nil {
		t.Fatalf("parseGenerationResult returned error: %v", err)
	}
	if question != "친구들과 어떤 놀이를 했나요?" {
		t.Fatalf("question = %q", question)
	}
	if level.Int() != 2 {
		t.Fatalf("level = %d, want 2", level.Int())
	}
}

func TestParseGenerationResult_StringLevelCoerces(t *testing.T) {
	_, level, err := parseGenerationResult(`{"question": "q", "level": "3"}`)
	if err != nil {
		t.Fatalf("parseGenerationResult returned error: %v", err)
	}
	if level.Int() != 3 {
		t.Fatalf("level = %d, want 3", level.Int())
	}
}

func TestParseGenerationResult_MissingKeysIsContractViolation(t *testing.T) {
	cases := []string{
		`{"question": "q"}`,
		`{"level": 2}`,
		`{}`,
		`not json at all`,
	}
	for _, c := range cases {
		_, _, err := parseGenerationResult(c)
		if err == nil {
			t.Fatalf("expected an error for %q", c)
		}
		kind, ok := apperr.KindOf(err)
		if !ok || kind != apperr.ContractViolation {
			t.Fatalf("error kind for %q = %v (ok=%v), want ContractViolation", c, kind, ok)
		}
	}
}

func TestParseGenerationResult_EmptyQuestionIsContractViolation(t *testing.T) {
	_, _, err := parseGenerationResult(`{"question": "", "level": 2}`)
	if err == nil {
		t.Fatal("expected an error for an empty question")
	}
	kind, ok := apperr.KindOf(err)
	if !ok || kind != apperr.ContractViolation {
		t.Fatalf("error kind = %v (ok=%v), want ContractViolation", kind, ok)
	}
}

func TestParseGenerationResult_OutOfRangeLevelDefaults(t *testing.T) {
	_, level, err := parseGenerationResult(`{"question": "q", "level": 99}`)
	if err != nil {
		t.Fatalf("parseGenerationResult returned error: %v", err)
	}
	if level.Int() != 2 {
		t.Fatalf("level = %d, want the safe default 2", level.Int())
	}
}
