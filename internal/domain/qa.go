// Package domain holds the value-like entities shared by every use case:
// the QA Record and its clamped Question-Level.
package domain

import (
	"fmt"
	"time"
)

// QARecord is a single question/answer exchange attributed to one family
// member at one time. Once constructed its fields never change; a newer
// exchange is represented by appending a new record, never by mutating
// an old one.
type QARecord struct {
	familyID   string
	memberID   string
	roleLabel  string
	question   string
	answer     string
	answeredAt time.Time
}

// NewQARecord builds a QARecord, rejecting the invariants the rest of the
// system depends on: family and member identifiers are the tenancy and
// ownership keys respectively, so neither may be empty.
func NewQARecord(familyID, memberID, roleLabel, question, answer string, answeredAt time.Time) (QARecord, error) {
	if familyID == "" {
		return QARecord{}, fmt.Errorf("qa record: family id must not be empty")
	}
	if memberID == "" {
		return QARecord{}, fmt.Errorf("qa record: member id must not be empty")
	}
	if answeredAt.IsZero() {
		return QARecord{}, fmt.Errorf("qa record: answered_at must be a real instant")
	}
	return QARecord{
		familyID:   familyID,
		memberID:   memberID,
		roleLabel:  roleLabel,
		question:   question,
		answer:     answer,
		answeredAt: answeredAt,
	}, nil
}

func (q QARecord) FamilyID() string        { return q.familyID }
func (q QARecord) MemberID() string        { return q.memberID }
func (q QARecord) RoleLabel() string       { return q.roleLabel }
func (q QARecord) Question() string        { return q.question }
func (q QARecord) Answer() string          { return q.answer }
func (q QARecord) AnsweredAt() time.Time   { return q.answeredAt }

// DateParts returns the year, month and day of AnsweredAt in its own location,
// the granularity the rendered embedding text is built from.
func (q QARecord) DateParts() (year int, month int, day int) {
	y, m, d := q.answeredAt.Date()
	return y, int(m), d
}

// IsRecent reports whether the record was answered within the last
// given number of days.
func (q QARecord) IsRecent(days int) bool {
	cutoff := time.Now().AddDate(0, 0, -days)
	return q.answeredAt.After(cutoff)
}

// RenderedEmbeddingText is the canonical string form of a QA Record used
// both for embedding/storage and for in-prompt display. The exact
// Korean phrasing, including the in-band date tokens, is part of the
// contract because it shapes embedding semantics: changing it changes
// recall behavior.
func (q QARecord) RenderedEmbeddingText() string {
	y, m, d := q.DateParts()
	return fmt.Sprintf("%d년 %d월 %d일에 %s이(가) 받은 질문: %s\n답변: %s",
		y, m, d, q.roleLabel, q.question, q.answer)
}
