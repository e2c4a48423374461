package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/kocory1/AllFamilyAI/internal/domain"
	"github.com/kocory1/AllFamilyAI/internal/embedding"
	"github.com/kocory1/AllFamilyAI/internal/ports"
)

// Store implements ports.VectorStore against a Weaviate collection whose
// vectors are supplied externally (Vectorizer: "none"); the embedding
// capability is called directly rather than delegated to a Weaviate
// module, matching the embedding service boundary in §4.2.
type Store struct {
	client    *weaviate.Client
	embedder  embedding.Provider
	className string
}

// New builds a Store against an already-connected Weaviate client. Call
// EnsureSchema before serving traffic; New itself performs no I/O.
func New(client *weaviate.Client, embedder embedding.Provider) *Store {
	return &Store{client: client, embedder: embedder, className: ClassName}
}

var _ ports.VectorStore = (*Store)(nil)

func recordID(familyID, memberID string) string {
	return fmt.Sprintf("%s_%s_%d", familyID, memberID, time.Now().UnixMilli())
}

func (s *Store) Store(ctx context.Context, qa domain.QARecord) (bool, error) {
	vector, err := s.embedder.Embed(ctx, qa.RenderedEmbeddingText())
	if err != nil {
		return false, fmt.Errorf("vectorstore: embedding base qa: %w", err)
	}

	_, err = runBlocking(ctx, func() (struct{}, error) {
		props := map[string]interface{}{
			"recordId":   recordID(qa.FamilyID(), qa.MemberID()),
			"familyId":   qa.FamilyID(),
			"memberId":   qa.MemberID(),
			"roleLabel":  qa.RoleLabel(),
			"answeredAt": qa.AnsweredAt().UTC().Format(time.RFC3339),
			"content":    qa.RenderedEmbeddingText(),
		}
		_, err := s.client.Data().Creator().
			WithClassName(s.className).
			WithID(uuid.NewString()).
			WithProperties(props).
			WithVector(vector).
			Do(ctx)
		return struct{}{}, err
	})
	if err != nil {
		slog.Error("vectorstore: store failed", "member_id", qa.MemberID(), "error", err)
		return false, fmt.Errorf("vectorstore: store: %w", err)
	}
	return true, nil
}

func (s *Store) searchNearText(ctx context.Context, filterField, filterValue string, queryText string, k int) ([]domain.QARecord, error) {
	vector, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		slog.Warn("vectorstore: embedding query failed, degrading to empty result", "error", err)
		return nil, nil
	}

	recs, err := runBlocking(ctx, func() ([]domain.QARecord, error) {
		where := filters.Where().
			WithPath([]string{filterField}).
			WithOperator(filters.Equal).
			WithValueString(filterValue)

		nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

		result, err := s.client.GraphQL().Get().
			WithClassName(s.className).
			WithFields(queryFields()...).
			WithWhere(where).
			WithNearVector(nearVector).
			WithLimit(k).
			Do(ctx)
		if err != nil {
			return nil, err
		}
		return parseRecords(result, s.className)
	})
	if err != nil {
		slog.Warn("vectorstore: search failed, degrading to empty result", "error", err)
		return nil, nil
	}
	return recs, nil
}

func (s *Store) SearchByMember(ctx context.Context, memberID string, query domain.QARecord, k int) ([]domain.QARecord, error) {
	return s.searchNearText(ctx, "memberId", memberID, query.RenderedEmbeddingText(), k)
}

func (s *Store) SearchByFamily(ctx context.Context, familyID string, query domain.QARecord, k int) ([]domain.QARecord, error) {
	return s.searchNearText(ctx, "familyId", familyID, query.RenderedEmbeddingText(), k)
}

// SearchSimilarQuestions is the novelty probe: embeds the raw question
// text (not the rendered form, per the deliberate asymmetry in §9) and
// returns 1 − distance of the top-1 match among memberID's stored vectors.
func (s *Store) SearchSimilarQuestions(ctx context.Context, questionText string, memberID string) (float64, error) {
	vector, err := s.embedder.Embed(ctx, questionText)
	if err != nil {
		return 0, fmt.Errorf("vectorstore: embedding probe text: %w", err)
	}

	similarity, err := runBlocking(ctx, func() (float64, error) {
		where := filters.Where().
			WithPath([]string{"memberId"}).
			WithOperator(filters.Equal).
			WithValueString(memberID)

		nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

		result, err := s.client.GraphQL().Get().
			WithClassName(s.className).
			WithFields(
				graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
			).
			WithWhere(where).
			WithNearVector(nearVector).
			WithLimit(1).
			Do(ctx)
		if err != nil {
			return 0, err
		}

		data, ok := result.Data["Get"].(map[string]interface{})
		if !ok {
			return 0, nil
		}
		objects, ok := data[s.className].([]interface{})
		if !ok || len(objects) == 0 {
			return 0, nil
		}
		obj, ok := objects[0].(map[string]interface{})
		if !ok {
			return 0, nil
		}
		additional, ok := obj["_additional"].(map[string]interface{})
		if !ok {
			return 0, nil
		}
		distance, ok := additional["distance"].(float64)
		if !ok {
			return 0, nil
		}
		return 1 - distance, nil
	})
	if err != nil {
		slog.Error("vectorstore: novelty probe failed", "member_id", memberID, "error", err)
		return 0, fmt.Errorf("vectorstore: novelty probe: %w", err)
	}
	if similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}
	return similarity, nil
}

func (s *Store) RecentByMember(ctx context.Context, memberID string, limit int) ([]domain.QARecord, error) {
	recs, err := runBlocking(ctx, func() ([]domain.QARecord, error) {
		where := filters.Where().
			WithPath([]string{"memberId"}).
			WithOperator(filters.Equal).
			WithValueString(memberID)

		sortBy := graphql.Sort{Path: []string{"answeredAt"}, Order: graphql.Desc}

		result, err := s.client.GraphQL().Get().
			WithClassName(s.className).
			WithFields(queryFields()...).
			WithWhere(where).
			WithSort(sortBy).
			WithLimit(limit).
			Do(ctx)
		if err != nil {
			return nil, err
		}
		return parseRecords(result, s.className)
	})
	if err != nil {
		slog.Warn("vectorstore: recent-by-member failed, degrading to empty result", "error", err)
		return nil, nil
	}
	return recs, nil
}

// RecentByFamily scans familyID's records and, for each member, keeps the
// limitPerMember most recent. Cross-group ordering in the returned slice
// is unspecified, per §4.1.
func (s *Store) RecentByFamily(ctx context.Context, familyID string, limitPerMember int) ([]domain.QARecord, error) {
	all, err := runBlocking(ctx, func() ([]domain.QARecord, error) {
		where := filters.Where().
			WithPath([]string{"familyId"}).
			WithOperator(filters.Equal).
			WithValueString(familyID)

		result, err := s.client.GraphQL().Get().
			WithClassName(s.className).
			WithFields(queryFields()...).
			WithWhere(where).
			WithLimit(10000).
			Do(ctx)
		if err != nil {
			return nil, err
		}
		return parseRecords(result, s.className)
	})
	if err != nil {
		slog.Warn("vectorstore: recent-by-family failed, degrading to empty result", "error", err)
		return nil, nil
	}

	byMember := make(map[string][]domain.QARecord)
	for _, rec := range all {
		byMember[rec.MemberID()] = append(byMember[rec.MemberID()], rec)
	}

	var out []domain.QARecord
	for _, recs := range byMember {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].AnsweredAt().After(recs[j].AnsweredAt())
		})
		if len(recs) > limitPerMember {
			recs = recs[:limitPerMember]
		}
		out = append(out, recs...)
	}
	return out, nil
}

// InRange returns familyID's records with start <= AnsweredAt <= end,
// ascending by time.
func (s *Store) InRange(ctx context.Context, familyID string, start, end time.Time) ([]domain.QARecord, error) {
	recs, err := runBlocking(ctx, func() ([]domain.QARecord, error) {
		familyFilter := filters.Where().
			WithPath([]string{"familyId"}).
			WithOperator(filters.Equal).
			WithValueString(familyID)
		startFilter := filters.Where().
			WithPath([]string{"answeredAt"}).
			WithOperator(filters.GreaterThanEqual).
			WithValueDate(start.UTC())
		endFilter := filters.Where().
			WithPath([]string{"answeredAt"}).
			WithOperator(filters.LessThanEqual).
			WithValueDate(end.UTC())

		combined := filters.Where().
			WithOperator(filters.And).
			WithOperands([]*filters.WhereBuilder{familyFilter, startFilter, endFilter})

		sortBy := graphql.Sort{Path: []string{"answeredAt"}, Order: graphql.Asc}

		result, err := s.client.GraphQL().Get().
			WithClassName(s.className).
			WithFields(queryFields()...).
			WithWhere(combined).
			WithSort(sortBy).
			WithLimit(10000).
			Do(ctx)
		if err != nil {
			return nil, err
		}
		return parseRecords(result, s.className)
	})
	if err != nil {
		slog.Warn("vectorstore: range scan failed, degrading to empty result", "error", err)
		return nil, nil
	}
	return recs, nil
}

func (s *Store) DeleteByMember(ctx context.Context, memberID string) (int, error) {
	count, err := runBlocking(ctx, func() (int, error) {
		where := filters.Where().
			WithPath([]string{"memberId"}).
			WithOperator(filters.Equal).
			WithValueString(memberID)

		resp, err := s.client.Batch().ObjectsBatchDeleter().
			WithClassName(s.className).
			WithWhere(where).
			WithOutput("minimal").
			Do(ctx)
		if err != nil {
			return 0, err
		}
		if resp == nil || resp.Results == nil {
			return 0, nil
		}
		return int(resp.Results.Successful), nil
	})
	if err != nil {
		return 0, fmt.Errorf("vectorstore: delete by member: %w", err)
	}
	return count, nil
}

func queryFields() []graphql.Field {
	return []graphql.Field{
		{Name: "familyId"},
		{Name: "memberId"},
		{Name: "roleLabel"},
		{Name: "answeredAt"},
		{Name: "content"},
	}
}

// parseRecords converts a GraphQL Get response into QA Records, recovering
// question/answer by parsing the rendered content field the same way it
// was assembled by domain.QARecord.RenderedEmbeddingText.
func parseRecords(result *models.GraphQLResponse, className string) ([]domain.QARecord, error) {
	if result == nil {
		return nil, nil
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", result.Errors[0].Message)
	}

	data, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	objects, ok := data[className].([]interface{})
	if !ok {
		return nil, nil
	}

	records := make([]domain.QARecord, 0, len(objects))
	for _, raw := range objects {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		familyID := getString(obj, "familyId")
		memberID := getString(obj, "memberId")
		roleLabel := getString(obj, "roleLabel")
		content := getString(obj, "content")

		answeredAt := time.Time{}
		if ts := getString(obj, "answeredAt"); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				answeredAt = t
			}
		}

		question, answer := parseRenderedContent(content)

		rec, err := domain.NewQARecord(familyID, memberID, roleLabel, question, answer, answeredAt)
		if err != nil {
			slog.Warn("vectorstore: skipping malformed stored record", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRenderedContent recovers (question, answer) from the canonical
// rendered body, the inverse of domain.QARecord.RenderedEmbeddingText.
// Metadata deliberately does not duplicate question/answer (§3), so this
// is the only way to reconstruct them for prompt assembly.
func parseRenderedContent(content string) (question, answer string) {
	const marker = "받은 질문: "
	const sep = "\n답변: "

	qStart := strings.Index(content, marker)
	if qStart == -1 {
		return content, ""
	}
	qStart += len(marker)

	sepIdx := strings.Index(content[qStart:], sep)
	if sepIdx == -1 {
		return content[qStart:], ""
	}
	question = content[qStart : qStart+sepIdx]
	answer = content[qStart+sepIdx+len(sep):]
	return question, answer
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
