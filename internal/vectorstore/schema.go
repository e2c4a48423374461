// Package vectorstore implements the Vector Store Port against Weaviate.
package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
)

// ClassName is the Weaviate class storing QA records.
const ClassName = "FamilyQA"

// GetSchema returns the Weaviate class definition for QA records. The
// content field is vectorized; the rest is filterable metadata.
func GetSchema() *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	skipVectorization := new(bool)
	*skipVectorization = true

	return &models.Class{
		Class:       ClassName,
		Description: "Question/answer exchanges attributed to a family member",
		Vectorizer:  "none",
		InvertedIndexConfig: &models.InvertedIndexConfig{
			IndexTimestamps: true,
		},
		Properties: []*models.Property{
			{
				Name:            "recordId",
				DataType:        []string{"text"},
				Description:     "family_id_member_id_timestamp id scheme",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "familyId",
				DataType:        []string{"text"},
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "memberId",
				DataType:        []string{"text"},
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:     "roleLabel",
				DataType: []string{"text"},
			},
			{
				Name:            "answeredAt",
				DataType:        []string{"date"},
				IndexFilterable: indexFilterable,
			},
			{
				// Canonical body. The rendered embedding text, not the raw
				// question/answer pair — §3 forbids duplicating them in
				// metadata. Q and A are recovered by parsing this string.
				Name:     "content",
				DataType: []string{"text"},
			},
		},
	}
}

// EnsureSchema creates the FamilyQA class if it does not already exist.
// Idempotent: a pre-existing class is treated as success.
func EnsureSchema(ctx context.Context, client *weaviate.Client) error {
	_, err := client.Schema().ClassGetter().WithClassName(ClassName).Do(ctx)
	if err == nil {
		slog.Info("vector store schema already present", "class", ClassName)
		return nil
	}

	slog.Info("creating vector store schema", "class", ClassName)
	if err := client.Schema().ClassCreator().WithClass(GetSchema()).Do(ctx); err != nil {
		return fmt.Errorf("creating %s schema: %w", ClassName, err)
	}
	return nil
}
