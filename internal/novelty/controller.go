// Package novelty implements the bounded-retry policy shared by every
// question-generation path: keep regenerating while a candidate question
// is too similar to what its owner has already been asked, up to a fixed
// attempt ceiling, and hand back the last candidate with a warning rather
// than block the caller.
package novelty

import (
	"context"
	"fmt"

	"github.com/kocory1/AllFamilyAI/internal/apperr"
	"github.com/kocory1/AllFamilyAI/internal/domain"
)

const (
	// DefaultThreshold is the similarity at or above which a candidate is
	// considered a near-duplicate of something already asked.
	DefaultThreshold = 0.9

	// DefaultMaxAttempts is the number of generate/probe rounds run
	// before accepting the last candidate regardless of similarity.
	DefaultMaxAttempts = 3
)

// GenerateFunc produces one candidate question and its inferred level.
// It is called once per attempt. An apperr.ContractViolation (malformed
// LLM JSON) is treated as a failed attempt and re-drives the loop up to
// MaxAttempts; any other error (upstream/transport failure) is fatal to
// the run and returned unchanged.
type GenerateFunc func(ctx context.Context) (question string, level domain.QuestionLevel, err error)

// ProbeFunc returns the similarity in [0,1] between question and the
// most similar thing its owner has seen before.
type ProbeFunc func(ctx context.Context, question string) (similarity float64, err error)

// Controller runs the bounded retry loop described by the novelty
// policy: generate, probe, accept below threshold, otherwise retry until
// the attempt ceiling, then accept-with-warning.
type Controller struct {
	Threshold   float64
	MaxAttempts int
}

// New builds a Controller with the default threshold (0.9) and attempt
// ceiling (3).
func New() Controller {
	return Controller{Threshold: DefaultThreshold, MaxAttempts: DefaultMaxAttempts}
}

// Result carries the accepted candidate plus the observability metadata
// callers must propagate: how many regenerations happened before
// acceptance, and whether the final candidate was accepted under warning
// because it never cleared the threshold.
type Result struct {
	Question   string
	Level      domain.QuestionLevel
	Regens     int
	Warning    bool
	Similarity float64
}

// Run executes the state machine Start -> Generated -> Probed ->
// (Accept | Retry | Accept-with-warning). generate and probe are called
// at most MaxAttempts times each. A probe error, or a generate error that
// is not an apperr.ContractViolation, is fatal to the run and returned
// immediately. A ContractViolation from generate is treated the same as
// a too-similar candidate: it consumes an attempt and re-drives the
// loop. If the final attempt ends in a contract violation, the run ends
// in an error rather than accept-with-warning, even when an earlier
// attempt produced a too-similar candidate: that earlier candidate is
// discarded, not handed back.
func (c Controller) Run(ctx context.Context, generate GenerateFunc, probe ProbeFunc) (Result, error) {
	maxAttempts := c.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var (
		question   string
		level      domain.QuestionLevel
		similarity float64
		haveResult bool
		lastErr    error
	)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		q, lvl, err := generate(ctx)
		if err != nil {
			if kind, ok := apperr.KindOf(err); ok && kind == apperr.ContractViolation {
				lastErr = err
				haveResult = false
				continue
			}
			return Result{}, fmt.Errorf("novelty: generate attempt %d: %w", attempt, err)
		}
		question, level = q, lvl
		haveResult = true

		s, err := probe(ctx, question)
		if err != nil {
			return Result{}, fmt.Errorf("novelty: probe attempt %d: %w", attempt, err)
		}
		similarity = s

		if similarity < threshold {
			return Result{
				Question:   question,
				Level:      level,
				Regens:     attempt - 1,
				Warning:    false,
				Similarity: similarity,
			}, nil
		}

		if attempt == maxAttempts {
			return Result{
				Question:   question,
				Level:      level,
				Regens:     attempt - 1,
				Warning:    true,
				Similarity: similarity,
			}, nil
		}
	}

	if !haveResult {
		return Result{}, fmt.Errorf("novelty: exhausted %d attempts without a valid generation: %w", maxAttempts, lastErr)
	}

	// Unreachable: the loop above always returns by the last iteration
	// whenever the final attempt produced a result.
	return Result{Question: question, Level: level, Regens: maxAttempts - 1, Warning: true, Similarity: similarity}, nil
}
