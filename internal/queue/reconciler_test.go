package queue

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cjiajing/robinson-parking/internal/models"
)

// newTestReconciler opens a per-test in-memory database and hands back a
// reconciler whose clock advances 10 seconds per reading, so consecutive
// joins always get distinct ordering keys.
func newTestReconciler(t *testing.T) (*Reconciler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.QueueEntry{}, &models.VerificationSample{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_queue_entries_waiting ON queue_entries (lift, owner_id) WHERE status = 'waiting'",
	).Error; err != nil {
		t.Fatalf("create index: %v", err)
	}

	r := NewReconciler(NewGormStore(db))
	base := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * 10 * time.Second)
	}
	return r, db
}

func waitingOwners(t *testing.T, r *Reconciler, lift string) []string {
	t.Helper()
	entries, err := r.store.ListWaiting(context.Background(), lift)
	assert.NoError(t, err)
	owners := make([]string, 0, len(entries))
	for _, e := range entries {
		owners = append(owners, e.OwnerID)
	}
	return owners
}

func TestJoinReturnsSnapshotLength(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	res, err := r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	assert.NotZero(t, res.EntryID)
	assert.Equal(t, 1, res.QueueLength)

	res, err = r.Join(ctx, models.LiftA, "device-y")
	assert.NoError(t, err)
	assert.Equal(t, 2, res.QueueLength)
}

func TestJoinDuplicateFails(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	_, err := r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)

	_, err = r.Join(ctx, models.LiftA, "device-x")
	assert.ErrorIs(t, err, ErrAlreadyQueued)

	// Same owner on the other lift is a separate queue.
	_, err = r.Join(ctx, models.LiftB, "device-x")
	assert.NoError(t, err)
}

func TestJoinValidation(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	_, err := r.Join(ctx, "C", "device-x")
	assert.ErrorIs(t, err, ErrUnknownLift)

	_, err = r.Join(ctx, models.LiftA, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFrontPin(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	for _, owner := range []string{"device-x", "device-y", "device-z"} {
		_, err := r.Join(ctx, models.LiftA, owner)
		assert.NoError(t, err)
	}

	res, err := r.PinPosition(ctx, models.LiftA, "device-z", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Position)

	pos, inQueue, err := r.PositionOf(ctx, models.LiftA, "device-z")
	assert.NoError(t, err)
	assert.True(t, inQueue)
	assert.Equal(t, 1, pos)

	assert.Equal(t, []string{"device-z", "device-x", "device-y"}, waitingOwners(t, r, models.LiftA))
}

func TestFrontPinOnSingletonQueue(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	_, err := r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)

	res, err := r.PinPosition(ctx, models.LiftA, "device-x", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Position)

	pos, inQueue, err := r.PositionOf(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	assert.True(t, inQueue)
	assert.Equal(t, 1, pos)
}

func TestPinOnEmptyQueueIsNoOp(t *testing.T) {
	r, db := newTestReconciler(t)
	ctx := context.Background()

	// The entry is gone by the time the pin arrives. Nothing to rewrite, no
	// observation worth recording; the caller is told they are first.
	res, err := r.PinPosition(ctx, models.LiftA, "device-x", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Position)
	assert.False(t, res.SampleRecorded)

	_, inQueue, err := r.PositionOf(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	assert.False(t, inQueue)

	var samples []models.VerificationSample
	assert.NoError(t, db.Find(&samples).Error)
	assert.Empty(t, samples)

	// A later join gets an ordinary join-time key, not a leftover sentinel.
	_, err = r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	var entry models.QueueEntry
	assert.NoError(t, db.Where("owner_id = ?", "device-x").First(&entry).Error)
	assert.False(t, entry.QueuedAt.Equal(FrontOfQueue))
}

func TestFrontPinTieBrokenByEntryID(t *testing.T) {
	r, db := newTestReconciler(t)
	ctx := context.Background()

	_, err := r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	_, err = r.Join(ctx, models.LiftA, "device-y")
	assert.NoError(t, err)

	// Both claim to be first. Both land on the sentinel; the earlier entry
	// id wins the tie. Accepted honor-system behavior, not a defect.
	_, err = r.PinPosition(ctx, models.LiftA, "device-y", 1)
	assert.NoError(t, err)
	_, err = r.PinPosition(ctx, models.LiftA, "device-x", 1)
	assert.NoError(t, err)

	var entries []models.QueueEntry
	assert.NoError(t, db.Where("status = ?", models.StatusWaiting).Find(&entries).Error)
	for _, e := range entries {
		assert.True(t, e.QueuedAt.Equal(FrontOfQueue), "owner %s should carry the sentinel", e.OwnerID)
	}

	assert.Equal(t, []string{"device-x", "device-y"}, waitingOwners(t, r, models.LiftA))
}

func TestBackPinClamp(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	for _, owner := range []string{"device-x", "device-y", "device-z", "device-w"} {
		_, err := r.Join(ctx, models.LiftA, owner)
		assert.NoError(t, err)
	}

	// Claiming far beyond the queue length pins to the back and reports the
	// real queue length instead of the claim.
	res, err := r.PinPosition(ctx, models.LiftA, "device-w", 10)
	assert.NoError(t, err)
	assert.Equal(t, 4, res.Position)

	pos, inQueue, err := r.PositionOf(ctx, models.LiftA, "device-w")
	assert.NoError(t, err)
	assert.True(t, inQueue)
	assert.Equal(t, 4, pos)
}

func TestMidInsert(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	for _, owner := range []string{"device-x", "device-y", "device-z"} {
		_, err := r.Join(ctx, models.LiftA, owner)
		assert.NoError(t, err)
	}
	_, err := r.Join(ctx, models.LiftA, "device-w")
	assert.NoError(t, err)

	// W says "I am #2": W lands immediately after X, before Y and Z.
	res, err := r.PinPosition(ctx, models.LiftA, "device-w", 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Position)

	assert.Equal(t,
		[]string{"device-x", "device-w", "device-y", "device-z"},
		waitingOwners(t, r, models.LiftA))
}

func TestPinRecordsClampedSample(t *testing.T) {
	r, db := newTestReconciler(t)
	ctx := context.Background()

	for _, owner := range []string{"device-x", "device-y", "device-w"} {
		_, err := r.Join(ctx, models.LiftA, owner)
		assert.NoError(t, err)
	}

	res, err := r.PinPosition(ctx, models.LiftA, "device-w", 9)
	assert.NoError(t, err)
	assert.True(t, res.SampleRecorded)

	var samples []models.VerificationSample
	assert.NoError(t, db.Find(&samples).Error)
	if assert.Len(t, samples, 1) {
		assert.Equal(t, 3, samples[0].ObservedCount)
		if assert.NotNil(t, samples[0].ClaimedPosition) {
			assert.Equal(t, 3, *samples[0].ClaimedPosition)
		}
	}
}

func TestPinInvalidPosition(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	_, err := r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)

	_, err = r.PinPosition(ctx, models.LiftA, "device-x", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = r.PinPosition(ctx, models.LiftA, "device-x", -2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRankConsistency(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	owners := []string{"device-a", "device-b", "device-c", "device-d", "device-e"}
	for _, owner := range owners {
		_, err := r.Join(ctx, models.LiftA, owner)
		assert.NoError(t, err)
	}
	_, err := r.PinPosition(ctx, models.LiftA, "device-d", 2)
	assert.NoError(t, err)

	// Every owner's PositionOf must equal their 1-based index in the sorted
	// waiting list, with no gaps or duplicates.
	sorted := waitingOwners(t, r, models.LiftA)
	assert.Len(t, sorted, len(owners))
	for i, owner := range sorted {
		pos, inQueue, err := r.PositionOf(ctx, models.LiftA, owner)
		assert.NoError(t, err)
		assert.True(t, inQueue)
		assert.Equal(t, i+1, pos, "owner %s", owner)
	}
}

func TestIdempotentLeave(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	// Leaving without ever joining is a no-op, not an error.
	assert.NoError(t, r.Leave(ctx, models.LiftA, "device-x"))

	_, err := r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	assert.NoError(t, r.Leave(ctx, models.LiftA, "device-x"))
	assert.NoError(t, r.Leave(ctx, models.LiftA, "device-x"))

	_, inQueue, err := r.PositionOf(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	assert.False(t, inQueue)

	// A cancelled entry does not block rejoining.
	_, err = r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
}

func TestCompleteStampsCompletion(t *testing.T) {
	r, db := newTestReconciler(t)
	ctx := context.Background()

	_, err := r.Join(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	assert.NoError(t, r.Complete(ctx, models.LiftA, "device-x"))

	_, inQueue, err := r.PositionOf(ctx, models.LiftA, "device-x")
	assert.NoError(t, err)
	assert.False(t, inQueue)

	var entry models.QueueEntry
	assert.NoError(t, db.Where("owner_id = ?", "device-x").First(&entry).Error)
	assert.Equal(t, models.StatusCompleted, entry.Status)
	assert.NotNil(t, entry.CompletedAt)
}

func TestPositionOfAbsentOwner(t *testing.T) {
	r, _ := newTestReconciler(t)

	pos, inQueue, err := r.PositionOf(context.Background(), models.LiftA, "device-ghost")
	assert.NoError(t, err)
	assert.False(t, inQueue)
	assert.Zero(t, pos)
}

func TestVerifiedEstimateWindow(t *testing.T) {
	r, _ := newTestReconciler(t)
	ctx := context.Background()

	// The stepping clock sits near the base time; a sample from 15 minutes
	// before it falls outside the 10-minute window.
	base := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	old := models.VerificationSample{
		Lift:          models.LiftA,
		OwnerID:       "device-x",
		ObservedCount: 9,
		ReportedAt:    base.Add(-15 * time.Minute),
	}
	assert.NoError(t, r.store.InsertSample(ctx, old))

	est, err := r.VerifiedEstimate(ctx, models.LiftA)
	assert.NoError(t, err)
	assert.False(t, est.OK, "stale samples must not produce an estimate")

	fresh := models.VerificationSample{
		Lift:          models.LiftA,
		OwnerID:       "device-y",
		ObservedCount: 4,
		ReportedAt:    base,
	}
	assert.NoError(t, r.store.InsertSample(ctx, fresh))

	est, err = r.VerifiedEstimate(ctx, models.LiftA)
	assert.NoError(t, err)
	assert.True(t, est.OK)
	assert.Equal(t, 4, est.Count)
}

func TestReportObservedCount(t *testing.T) {
	r, db := newTestReconciler(t)
	ctx := context.Background()

	assert.ErrorIs(t, r.ReportObservedCount(ctx, models.LiftA, "device-x", -1), ErrInvalidInput)
	assert.NoError(t, r.ReportObservedCount(ctx, models.LiftA, "device-x", 6))

	var samples []models.VerificationSample
	assert.NoError(t, db.Find(&samples).Error)
	if assert.Len(t, samples, 1) {
		assert.Equal(t, 6, samples[0].ObservedCount)
		assert.Nil(t, samples[0].ClaimedPosition)
	}
}
