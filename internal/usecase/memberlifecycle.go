package usecase

import (
	"context"

	"github.com/kocory1/AllFamilyAI/internal/apperr"
	"github.com/kocory1/AllFamilyAI/internal/ports"
)

// MemberLifecycle implements §4.10: deleting every record a departing
// member owns.
type MemberLifecycle struct {
	store ports.VectorStore
}

// NewMemberLifecycle wires a MemberLifecycle use case.
func NewMemberLifecycle(store ports.VectorStore) *MemberLifecycle {
	return &MemberLifecycle{store: store}
}

// DeleteMember deletes memberID's records and returns the count deleted.
// A count of zero is reported as apperr.NotFound — the member had nothing
// to delete, distinct from the store itself failing.
func (u *MemberLifecycle) DeleteMember(ctx context.Context, memberID string) (int, error) {
	count, err := u.store.DeleteByMember(ctx, memberID)
	if err != nil {
		return 0, apperr.Wrap(apperr.PersistenceFailure, "deleting member records", err)
	}
	if count == 0 {
		return 0, apperr.New(apperr.NotFound, "member has no stored records")
	}
	return count, nil
}
