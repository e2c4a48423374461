package usecase

import (
	"context"
	"log/slog"

	"github.com/kocory1/AllFamilyAI/internal/ports"
)

// fallbackRoleLabel is what a role label resolves to when it cannot be
// determined, matching the Python original's `_get_role_label` default.
const fallbackRoleLabel = "멤버"

// resolveRoleLabel returns roleLabel unchanged when the caller already
// supplied one (the normal path: §6's DTOs carry roleLabel directly). When
// it is empty, it falls back to the member's most recent stored record's
// role label, and to fallbackRoleLabel if that lookup fails or finds
// nothing — the same failure-tolerant behavior the Python original's
// _get_role_label applies whenever a role label is resolved from an
// external source rather than supplied by the caller.
func resolveRoleLabel(ctx context.Context, store ports.VectorStore, memberID, roleLabel string) string {
	if roleLabel != "" {
		return roleLabel
	}

	recent, err := store.RecentByMember(ctx, memberID, 1)
	if err != nil {
		slog.Error("usecase: role label lookup failed, using default", "member_id", memberID, "error", err)
		return fallbackRoleLabel
	}
	if len(recent) == 0 {
		slog.Warn("usecase: role label not found, using default", "member_id", memberID)
		return fallbackRoleLabel
	}
	return recent[0].RoleLabel()
}
