// Package store defines the persistence interfaces for ledgers, users, and
// the audit trail, plus their MongoDB implementations. Services receive these
// interfaces by injection; nothing above this package touches the driver.
package store

import (
	"context"
	"errors"

	"budgetboard/internal/models"
)

// Sentinel errors returned by store implementations. Services translate them
// into client-facing AppErrors.
var (
	ErrNotFound        = errors.New("store: document not found")
	ErrDuplicateKey    = errors.New("store: duplicate key")
	ErrVersionConflict = errors.New("store: document version conflict")
)

// LedgerStore persists one budget ledger per user id.
type LedgerStore interface {
	// Get returns the ledger for userID, or ErrNotFound.
	Get(ctx context.Context, userID string) (*models.Ledger, error)

	// Insert creates the ledger; ErrDuplicateKey if one already exists.
	Insert(ctx context.Context, ledger *models.Ledger) error

	// Update replaces the ledger only if the stored version still matches
	// ledger.Version, bumping the version on success. ErrVersionConflict
	// when another writer got there first (or the document is gone).
	Update(ctx context.Context, ledger *models.Ledger) error

	// Replace unconditionally overwrites (or creates) the ledger.
	// Used for bulk import; the version counter restarts.
	Replace(ctx context.Context, ledger *models.Ledger) error

	// Exists reports whether a ledger exists for userID.
	Exists(ctx context.Context, userID string) (bool, error)
}

// UserStore persists credential/profile records keyed by user id.
type UserStore interface {
	// Get returns the user record, or ErrNotFound.
	Get(ctx context.Context, userID string) (*models.User, error)

	// Insert creates the user; ErrDuplicateKey if the id is taken.
	Insert(ctx context.Context, user *models.User) error

	// Exists reports whether a user record exists for userID.
	Exists(ctx context.Context, userID string) (bool, error)

	// ListIDs returns all registered user ids in registration order.
	ListIDs(ctx context.Context) ([]string, error)
}

// AuditStore appends audit trail entries.
type AuditStore interface {
	Append(ctx context.Context, entry *models.AuditLog) error
}
