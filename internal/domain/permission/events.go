package permission

import (
	"context"
	"time"
)

// GrantsChangedEvent announces that the grant sets of RoleIDs were rewritten.
type GrantsChangedEvent struct {
	RoleIDs   []uint    `json:"role_ids"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

type GrantEventPublisher interface {
	PublishGrantsChanged(ctx context.Context, event GrantsChangedEvent) error
}
