package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
)

// ErrNotFound reports that a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Credentials persists the single credential record across restarts.
//
// Load reports absence (no record, or an unreadable one) via ok=false with
// a nil error: storage faults must never stop the caller from proceeding to
// re-authorization. Save must be atomic with respect to partial writes so a
// crash mid-write never corrupts the prior valid record.
type Credentials interface {
	Load(ctx context.Context) (cred domain.Credential, ok bool, err error)
	Save(ctx context.Context, cred domain.Credential) error
	Clear(ctx context.Context) error
}

// Links keeps the history of resolved link records for the share panel.
type Links interface {
	Append(ctx context.Context, rec domain.LinkRecord) error
	Recent(ctx context.Context, limit int) ([]domain.LinkRecord, error)
	Prune(ctx context.Context, keep int) error
}
