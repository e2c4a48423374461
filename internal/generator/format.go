// Package generator implements the Question Generator Port and Summary
// Generator Port against the LLM Capability, rendering the prompt catalog's
// templates the way the Python original's LangChain chains did: a
// ChatPromptTemplate filled from formatted QA context, piped through a
// JSON-mode chat call, parsed with the required-key check §4.4 demands.
package generator

import (
	"fmt"
	"strings"

	"github.com/kocory1/AllFamilyAI/internal/domain"
)

// formatBaseQA renders a base exchange for in-prompt display, including its
// time tokens, the way both derive-mode templates expect it.
func formatBaseQA(qa domain.QARecord) string {
	y, m, d := qa.DateParts()
	return fmt.Sprintf("- 질문: %s\n- 답변: %s\n- 답변 시각: %d년 %d월 %d일\n- 답변자: %s",
		qa.Question(), qa.Answer(), y, m, d, qa.RoleLabel())
}

// formatRAGContext renders a RAG context list as a numbered list, each line
// carrying date parts and role label, truncated to max entries. An empty
// context renders as an explicit "no history" line rather than a blank
// section, matching the original chains' fallback text.
func formatRAGContext(docs []domain.QARecord, max int) string {
	if len(docs) == 0 {
		return "과거 답변 기록이 없습니다."
	}

	truncated := docs
	if len(truncated) > max {
		truncated = truncated[:max]
	}

	var b strings.Builder
	for i, doc := range truncated {
		y, m, d := doc.DateParts()
		fmt.Fprintf(&b, "%d. [%d-%02d-%02d] %s - Q: %s / A: %s\n",
			i+1, y, m, d, doc.RoleLabel(), doc.Question(), doc.Answer())
	}
	return strings.TrimRight(b.String(), "\n")
}
