// Package pallet holds the pure arithmetic around the automated parking
// structure: pallet slots, derived levels and retrieval-time estimates.
// Nothing here touches the queue subsystem.
package pallet

import (
	"errors"
	"fmt"
	"math"

	"github.com/cjiajing/robinson-parking/internal/models"
)

const (
	MinPallet       = 1
	MaxPallet       = 56
	palletsPerLevel = 8
)

var (
	ErrPalletOutOfRange = errors.New("pallet number out of range")
	ErrInvalidCode      = errors.New("retrieval code must be exactly 4 digits")
)

// Number is a validated pallet slot index (1..56).
type Number int

// NewNumber validates a pallet slot index once at the boundary; everything
// downstream consumes it as already valid.
func NewNumber(n int) (Number, error) {
	if n < MinPallet || n > MaxPallet {
		return 0, fmt.Errorf("%w: %d", ErrPalletOutOfRange, n)
	}
	return Number(n), nil
}

func (n Number) Int() int { return int(n) }

// Level is the vertical level (1..7) a pallet sits on, 8 pallets per level.
func (n Number) Level() int {
	return (int(n) + palletsPerLevel - 1) / palletsPerLevel
}

// RetrievalCode is a user-chosen 4-digit code used at the lift touchscreen.
type RetrievalCode string

func NewRetrievalCode(s string) (RetrievalCode, error) {
	if len(s) != 4 {
		return "", ErrInvalidCode
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return "", ErrInvalidCode
		}
	}
	return RetrievalCode(s), nil
}

func (c RetrievalCode) String() string { return string(c) }

// TimeRange is an estimated retrieval service time in whole minutes.
type TimeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultTimeRange is shown when the parked level is unknown.
var DefaultTimeRange = TimeRange{Min: 2, Max: 4}

// RetrievalTimeRange estimates how long the lift takes to deliver a car from
// the given level: 2 minutes at ground level plus 30 seconds per level above
// it, with a minute of variance on top.
func RetrievalTimeRange(level int) TimeRange {
	if level < 1 {
		return DefaultTimeRange
	}
	min := 2 + 0.5*float64(level-1)
	return TimeRange{
		Min: int(math.Round(min)),
		Max: int(math.Round(min + 1)),
	}
}

// LiftPolicy guesses which lift serves a pallet. The building's real routing
// was never confirmed, so this stays a swappable suggestion, not a rule.
type LiftPolicy func(n Number) string

// AlternatingLifts assigns odd pallets to lift A and even ones to lift B.
func AlternatingLifts(n Number) string {
	if n.Int()%2 == 1 {
		return models.LiftA
	}
	return models.LiftB
}

// RangeLifts assigns pallets 1-28 to lift A and 29-56 to lift B.
func RangeLifts(n Number) string {
	if n.Int() <= 28 {
		return models.LiftA
	}
	return models.LiftB
}

// DefaultLiftPolicy is the suggestion surfaced to residents.
var DefaultLiftPolicy LiftPolicy = AlternatingLifts
