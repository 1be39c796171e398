package queue

import (
	"context"
	"math"
	"time"

	"github.com/cjiajing/robinson-parking/internal/models"
)

// VerificationWindow is how far back community reports count toward the
// estimate.
const VerificationWindow = 10 * time.Minute

// Estimate is the community-verified queue length for a lift. Advisory only:
// it never overrides PositionOf for the caller's own place in line.
type Estimate struct {
	Count      int
	ReportedAt time.Time // time of the most recent contributing sample
	OK         bool      // false when no samples fall inside the window
}

// WeightedEstimate blends samples (ordered most-recent-first) into a single
// recency-weighted queue length. With k samples, sample i gets weight k-i, so
// the newest report counts k times as much as the oldest.
func WeightedEstimate(samples []models.VerificationSample) Estimate {
	if len(samples) == 0 {
		return Estimate{}
	}

	k := len(samples)
	var weightedSum, totalWeight int
	for i, s := range samples {
		w := k - i
		weightedSum += s.ObservedCount * w
		totalWeight += w
	}

	return Estimate{
		Count:      int(math.Round(float64(weightedSum) / float64(totalWeight))),
		ReportedAt: samples[0].ReportedAt,
		OK:         true,
	}
}

// VerifiedEstimate aggregates the lift's samples from the trailing window.
// An estimate with OK=false means "no data", which the display layer renders
// as "?" rather than 0.
func (r *Reconciler) VerifiedEstimate(ctx context.Context, lift string) (Estimate, error) {
	if err := checkLift(lift); err != nil {
		return Estimate{}, err
	}
	since := r.now().Add(-VerificationWindow)
	samples, err := r.store.ListRecentSamples(ctx, lift, since)
	if err != nil {
		return Estimate{}, err
	}
	return WeightedEstimate(samples), nil
}
