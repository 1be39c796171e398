package tasks

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/storage"
	"github.com/cjiajing/robinson-parking/internal/ws"
)

// sampleRetention is how long verification samples are kept. The aggregation
// window is 10 minutes; anything older only serves debugging.
const sampleRetention = 24 * time.Hour

// staleEntryAge is how long a waiting entry may sit before it is assumed
// abandoned. Measured on the audit created_at, never on queued_at, which may
// carry the front-pin sentinel.
const staleEntryAge = 6 * time.Hour

// PruneVerificationSamples deletes samples older than the retention period.
func PruneVerificationSamples() {
	threshold := time.Now().Add(-sampleRetention)
	if err := storage.DB.
		Where("reported_at < ?", threshold).
		Delete(&models.VerificationSample{}).Error; err != nil {
		log.Println("tasks: pruning verification samples failed:", err)
	}
}

// ExpireStaleEntries cancels waiting entries whose owners evidently walked
// away, and tells each affected lift's watchers to re-query.
func ExpireStaleEntries() {
	threshold := time.Now().Add(-staleEntryAge)

	var stale []models.QueueEntry
	if err := storage.DB.
		Where("status = ? AND created_at < ?", models.StatusWaiting, threshold).
		Find(&stale).Error; err != nil {
		log.Println("tasks: loading stale entries failed:", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	lifts := make(map[string]int)
	for _, e := range stale {
		if err := storage.DB.
			Model(&models.QueueEntry{}).
			Where("id = ? AND status = ?", e.ID, models.StatusWaiting).
			Update("status", models.StatusCancelled).Error; err != nil {
			log.Println("tasks: cancelling stale entry", e.ID, "failed:", err)
			continue
		}
		lifts[e.Lift]++
	}

	for lift, count := range lifts {
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType: ws.EventEntriesExpired,
			Lift:      lift,
			Data: map[string]interface{}{
				"expired": count,
			},
		})
		log.Printf("tasks: expired %d stale entries for lift %s", count, lift)
	}
}

// InitScheduler starts the cron jobs.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Stale-entry sweep every 15 minutes.
	if _, err := c.AddFunc("0 */15 * * * *", ExpireStaleEntries); err != nil {
		log.Println("tasks: scheduling ExpireStaleEntries failed:", err)
	}

	// Sample pruning daily at 03:00.
	if _, err := c.AddFunc("0 0 3 * * *", PruneVerificationSamples); err != nil {
		log.Println("tasks: scheduling PruneVerificationSamples failed:", err)
	}

	c.Start()
	log.Println("Cron scheduler started")
	return c
}
