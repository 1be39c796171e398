package models

import (
	"time"

	"gorm.io/gorm"
)

// Lift identifiers of the two retrieval lifts.
const (
	LiftA = "A"
	LiftB = "B"
)

// ValidLift reports whether s names a known lift.
func ValidLift(s string) bool {
	return s == LiftA || s == LiftB
}

// Queue entry statuses.
const (
	StatusWaiting   = "waiting"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// QueueEntry is one resident's claim to a position in a lift's retrieval
// queue. QueuedAt is the ordering key: it is rewritten by position pinning
// and is NOT wall-clock time (a front-pinned entry carries a sentinel far in
// the past). CreatedAt/UpdatedAt from gorm.Model stay audit-only.
type QueueEntry struct {
	gorm.Model
	Lift        string    `gorm:"size:1;index;not null"`
	OwnerID     string    `gorm:"index;not null"` // anonymous device identity
	Status      string    `gorm:"size:16;index;not null;default:waiting"`
	QueuedAt    time.Time `gorm:"index;not null"`
	CompletedAt *time.Time
}

// VerificationSample is a community report of observed queue length for a
// lift. Samples older than the aggregation window are ignored and pruned by
// a cron job.
type VerificationSample struct {
	gorm.Model
	Lift            string `gorm:"size:1;index;not null"`
	OwnerID         string `gorm:"not null"`
	ObservedCount   int    `gorm:"not null"`
	ClaimedPosition *int
	ReportedAt      time.Time `gorm:"index;not null"`
}

// ParkingRecord is the server-side copy of where a resident last parked.
// The client keeps a non-authoritative mirror; this row is cleared when the
// resident confirms retrieval.
type ParkingRecord struct {
	gorm.Model
	OwnerID string `gorm:"uniqueIndex;not null"`
	Lift    string `gorm:"size:1;not null"`
	Code    string `gorm:"size:4"` // user-chosen 4-digit retrieval code
	Pallet  *int
	Level   *int // derived from Pallet at write time
}

// Issue report statuses.
const (
	IssueOpen     = "open"
	IssueResolved = "resolved"
)

// IssueReport is a resident-filed mechanical issue.
type IssueReport struct {
	gorm.Model
	OwnerID     string  `gorm:"index;not null"`
	Category    string  `gorm:"size:32;not null"`
	Description string  `gorm:"not null"`
	Lift        *string `gorm:"size:1"`
	Status      string  `gorm:"size:16;not null;default:open"`
}

// MaintenanceWindow is a scheduled service window during which one or both
// lifts are unavailable.
type MaintenanceWindow struct {
	gorm.Model
	StartsAt    time.Time `gorm:"index;not null"`
	EndsAt      time.Time `gorm:"not null"`
	Kind        string    `gorm:"size:64;not null"`
	Description string
	Status      string `gorm:"size:16;not null;default:upcoming"`
}
