package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cjiajing/robinson-parking/internal/models"
)

// gormStore implements Store over the shared gorm connection. Every write is
// filtered by owner and status so callers can only touch their own entry.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the Store contract.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) InsertEntry(ctx context.Context, lift, ownerID string, queuedAt time.Time) (uint, error) {
	var existing models.QueueEntry
	err := s.db.WithContext(ctx).
		Where("lift = ? AND owner_id = ? AND status = ?", lift, ownerID, models.StatusWaiting).
		First(&existing).Error
	if err == nil {
		return 0, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	entry := models.QueueEntry{
		Lift:     lift,
		OwnerID:  ownerID,
		Status:   models.StatusWaiting,
		QueuedAt: queuedAt,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		// The partial unique index on (lift, owner_id) WHERE status='waiting'
		// catches inserts that raced past the precondition read.
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return entry.ID, nil
}

func (s *gormStore) UpdateEntry(ctx context.Context, f EntryFilter, p EntryPatch) error {
	patch := map[string]interface{}{}
	if p.QueuedAt != nil {
		patch["queued_at"] = *p.QueuedAt
	}
	if p.Status != nil {
		patch["status"] = *p.Status
	}
	if p.CompletedAt != nil {
		patch["completed_at"] = *p.CompletedAt
	}
	if len(patch) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("lift = ? AND owner_id = ? AND status = ?", f.Lift, f.OwnerID, f.Status).
		Updates(patch).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	// Zero rows matched is a no-op by contract.
	return nil
}

func (s *gormStore) ListWaiting(ctx context.Context, lift string) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	err := s.db.WithContext(ctx).
		Where("lift = ? AND status = ?", lift, models.StatusWaiting).
		Order("queued_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return entries, nil
}

func (s *gormStore) InsertSample(ctx context.Context, sample models.VerificationSample) error {
	if err := s.db.WithContext(ctx).Create(&sample).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *gormStore) ListRecentSamples(ctx context.Context, lift string, since time.Time) ([]models.VerificationSample, error) {
	var samples []models.VerificationSample
	err := s.db.WithContext(ctx).
		Where("lift = ? AND reported_at >= ?", lift, since).
		Order("reported_at DESC, id DESC").
		Find(&samples).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return samples, nil
}

// isUniqueViolation matches both the postgres and the sqlite driver's
// duplicate-key errors without importing either driver here.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
