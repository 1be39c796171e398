package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cjiajing/robinson-parking/internal/models"
)

// FrontOfQueue is the ordering-key sentinel for a front-pinned entry. It sits
// far before any realistic queue timestamp, so an entry carrying it sorts
// first regardless of everyone else's keys. Two simultaneous front-pins both
// land on it and tie; the tie is broken by entry id, which is accepted
// behavior for an honor-based queue.
var FrontOfQueue = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// pinStep separates a pinned entry from the neighbor it was placed behind.
const pinStep = time.Second

// Reconciler computes and rewrites queue positions against the Store. It
// holds no state of its own; every read recomputes rank from the full sorted
// order, since any entry's ordering key may have been rewritten by another
// caller in the meantime.
type Reconciler struct {
	store Store
	now   func() time.Time
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store, now: time.Now}
}

// JoinResult reports the created entry and the queue length at insert time,
// which the client uses to size its position picker.
type JoinResult struct {
	EntryID     uint
	QueueLength int
}

// Join inserts a waiting entry for the owner with the current time as its
// ordering key. Returns ErrAlreadyQueued if the owner already has a waiting
// entry for this lift.
func (r *Reconciler) Join(ctx context.Context, lift, ownerID string) (JoinResult, error) {
	if err := checkLift(lift); err != nil {
		return JoinResult{}, err
	}
	if ownerID == "" {
		return JoinResult{}, fmt.Errorf("%w: empty owner id", ErrInvalidInput)
	}

	id, err := r.store.InsertEntry(ctx, lift, ownerID, r.now())
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return JoinResult{}, ErrAlreadyQueued
		}
		return JoinResult{}, err
	}

	entries, err := r.store.ListWaiting(ctx, lift)
	if err != nil {
		// The entry is in; a failed snapshot read should not fail the join.
		log.Println("queue: snapshot read after join failed:", err)
		return JoinResult{EntryID: id, QueueLength: 1}, nil
	}
	return JoinResult{EntryID: id, QueueLength: len(entries)}, nil
}

// PinResult reports the position the caller ended up with and whether the
// verification sample made it to the store.
type PinResult struct {
	Position       int
	SampleRecorded bool
}

// PinPosition reconciles the digital queue with the position the owner claims
// to hold in the physical line, by rewriting the owner's ordering key:
//
//   - empty queue, or claimed position 1: the front sentinel
//   - claimed beyond the last slot others could occupy ahead: current time,
//     i.e. last among the current entries
//   - otherwise: immediately after the entry ranked claimed-1 among the
//     other waiting entries
//
// The reported position is clamped to the observed queue length. A
// verification sample recording the observed length is inserted as an
// independent side effect; its failure does not roll back the pin.
func (r *Reconciler) PinPosition(ctx context.Context, lift, ownerID string, claimed int) (PinResult, error) {
	if err := checkLift(lift); err != nil {
		return PinResult{}, err
	}
	if claimed < 1 {
		return PinResult{}, fmt.Errorf("%w: position must be positive, got %d", ErrInvalidInput, claimed)
	}

	entries, err := r.store.ListWaiting(ctx, lift)
	if err != nil {
		return PinResult{}, err
	}
	n := len(entries)

	var others []models.QueueEntry
	for _, e := range entries {
		if e.OwnerID != ownerID {
			others = append(others, e)
		}
	}

	var target time.Time
	switch {
	case n == 0:
		// The entry vanished between join and pin. The owner-filtered update
		// below matches no rows, so nothing is written; the caller just gets
		// told they are first of an empty queue.
		target = FrontOfQueue
	case claimed == 1:
		target = FrontOfQueue
	case claimed > n-1:
		// Nobody could stand after the caller at that claim; the caller is
		// simply last among the current entries.
		target = r.now()
	default:
		// The entry ranked claimed-1 among the others is the person who
		// should be immediately ahead.
		ahead := others[claimed-2]
		target = ahead.QueuedAt.Add(pinStep)
	}

	err = r.store.UpdateEntry(ctx,
		EntryFilter{Lift: lift, OwnerID: ownerID, Status: models.StatusWaiting},
		EntryPatch{QueuedAt: &target},
	)
	if err != nil {
		return PinResult{}, err
	}

	position := claimed
	if n > 0 && position > n {
		position = n
	}
	if n == 0 {
		position = 1
	}

	res := PinResult{Position: position, SampleRecorded: true}
	if n > 0 {
		claimClamped := position
		sample := models.VerificationSample{
			Lift:            lift,
			OwnerID:         ownerID,
			ObservedCount:   n,
			ClaimedPosition: &claimClamped,
			ReportedAt:      r.now(),
		}
		if err := r.store.InsertSample(ctx, sample); err != nil {
			// Independent side effect: report, don't roll back.
			log.Println("queue: verification sample insert failed:", err)
			res.SampleRecorded = false
		}
	} else {
		res.SampleRecorded = false
	}
	return res, nil
}

// Leave cancels the owner's waiting entry. Absent entry is a no-op, not an
// error.
func (r *Reconciler) Leave(ctx context.Context, lift, ownerID string) error {
	if err := checkLift(lift); err != nil {
		return err
	}
	cancelled := models.StatusCancelled
	return r.store.UpdateEntry(ctx,
		EntryFilter{Lift: lift, OwnerID: ownerID, Status: models.StatusWaiting},
		EntryPatch{Status: &cancelled},
	)
}

// Complete marks the owner's waiting entry completed, stamping the completion
// time. Callers clear the associated parking record after this succeeds; no
// other transition does.
func (r *Reconciler) Complete(ctx context.Context, lift, ownerID string) error {
	if err := checkLift(lift); err != nil {
		return err
	}
	completed := models.StatusCompleted
	now := r.now()
	return r.store.UpdateEntry(ctx,
		EntryFilter{Lift: lift, OwnerID: ownerID, Status: models.StatusWaiting},
		EntryPatch{Status: &completed, CompletedAt: &now},
	)
}

// PositionOf returns the owner's 1-based rank among the lift's waiting
// entries, recomputed from the full sorted order on every call.
func (r *Reconciler) PositionOf(ctx context.Context, lift, ownerID string) (int, bool, error) {
	if err := checkLift(lift); err != nil {
		return 0, false, err
	}
	entries, err := r.store.ListWaiting(ctx, lift)
	if err != nil {
		return 0, false, err
	}
	for i, e := range entries {
		if e.OwnerID == ownerID {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}

// ReportObservedCount records a manual community report of how many people
// are waiting at the lift, with no claimed position attached.
func (r *Reconciler) ReportObservedCount(ctx context.Context, lift, ownerID string, count int) error {
	if err := checkLift(lift); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidInput, count)
	}
	return r.store.InsertSample(ctx, models.VerificationSample{
		Lift:          lift,
		OwnerID:       ownerID,
		ObservedCount: count,
		ReportedAt:    r.now(),
	})
}
