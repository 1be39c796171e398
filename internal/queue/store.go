package queue

import (
	"context"
	"errors"
	"time"

	"github.com/cjiajing/robinson-parking/internal/models"
)

var (
	// ErrAlreadyQueued: the owner already has a waiting entry for the lift.
	ErrAlreadyQueued = errors.New("already queued")
	// ErrConflict: the store's uniqueness guard rejected an insert that
	// raced past the precondition read.
	ErrConflict = errors.New("conflicting waiting entry")
	// ErrStorageUnavailable: any I/O failure, timeout or malformed response
	// from the store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidInput: caller supplied an out-of-range value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownLift: the lift identifier names no known lift.
	ErrUnknownLift = errors.New("unknown lift")
)

// EntryFilter selects at most one queue entry. Updates are always scoped to
// the owner so a caller can only ever mutate its own entry.
type EntryFilter struct {
	Lift    string
	OwnerID string
	Status  string
}

// EntryPatch is a partial update. Nil fields are left untouched.
type EntryPatch struct {
	QueuedAt    *time.Time
	Status      *string
	CompletedAt *time.Time
}

// Store is the persistence contract the reconciler runs against. Matching
// zero rows on update is a no-op, not an error.
type Store interface {
	// InsertEntry creates a waiting entry with the given ordering key and
	// returns its id. Returns ErrConflict if a waiting entry already exists
	// for (lift, owner).
	InsertEntry(ctx context.Context, lift, ownerID string, queuedAt time.Time) (uint, error)

	// UpdateEntry patches the 0 or 1 entries matching the filter.
	UpdateEntry(ctx context.Context, f EntryFilter, p EntryPatch) error

	// ListWaiting returns the lift's waiting entries ordered by
	// queued_at ascending, ties broken by id ascending.
	ListWaiting(ctx context.Context, lift string) ([]models.QueueEntry, error)

	// InsertSample records one verification sample.
	InsertSample(ctx context.Context, s models.VerificationSample) error

	// ListRecentSamples returns the lift's samples reported at or after
	// since, most recent first.
	ListRecentSamples(ctx context.Context, lift string, since time.Time) ([]models.VerificationSample, error)
}

func checkLift(lift string) error {
	if !models.ValidLift(lift) {
		return ErrUnknownLift
	}
	return nil
}
