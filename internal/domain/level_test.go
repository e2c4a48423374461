package domain

import "testing"

func TestNewQuestionLevel_InRange(t *testing.T) {
	for i := 1; i <= 4; i++ {
		l, err := NewQuestionLevel(i)
		if err != nil {
			t.Fatalf("NewQuestionLevel(%d) returned error: %v", i, err)
		}
		if l.Int() != i {
			t.Fatalf("NewQuestionLevel(%d).Int() = %d, want %d", i, l.Int(), i)
		}
	}
}

func TestNewQuestionLevel_OutOfRange(t *testing.T) {
	for _, v := range []int{0, -1, 5, 100} {
		if _, err := NewQuestionLevel(v); err == nil {
			t.Fatalf("NewQuestionLevel(%d) expected an error, got nil", v)
		}
	}
}

func TestLevelFromAny_RoundTrip(t *testing.T) {
	for l := LevelMin; l <= LevelMax; l++ {
		got := LevelFromAny(l.Int())
		if got != l {
			t.Fatalf("LevelFromAny(%d) = %d, want %d", l.Int(), got, l)
		}
	}
}

func TestLevelFromAny_MalformedDefaultsToTwo(t *testing.T) {
	cases := []any{0, -3, 5, "not a number", nil, 3.7, map[string]any{}}
	for _, c := range cases {
		if got := LevelFromAny(c); got != defaultLevel {
			t.Fatalf("LevelFromAny(%v) = %d, want default %d", c, got, defaultLevel)
		}
	}
}

func TestLevelFromAny_AcceptsNumericTypes(t *testing.T) {
	cases := []any{int32(3), int64(3), float32(3), float64(3)}
	for _, c := range cases {
		if got := LevelFromAny(c); got != 3 {
			t.Fatalf("LevelFromAny(%v) = %d, want 3", c, got)
		}
	}
}

func TestQuestionLevel_Description(t *testing.T) {
	if QuestionLevel(1).Description() == "" {
		t.Fatal("expected a non-empty description for level 1")
	}
	if QuestionLevel(99).Description() != "알 수 없음" {
		t.Fatalf("expected unknown-level description, got %q", QuestionLevel(99).Description())
	}
}
