package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cjiajing/robinson-parking/internal/queue"
	"github.com/cjiajing/robinson-parking/internal/storage"
)

// storeTimeout bounds every round-trip to the database so a hung store
// surfaces as a storage error instead of a stuck request.
const storeTimeout = 5 * time.Second

// retryBackoff before the single retry of an idempotent operation.
const retryBackoff = 200 * time.Millisecond

func reconciler() *queue.Reconciler {
	return queue.NewReconciler(queue.NewGormStore(storage.DB))
}

func opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storeTimeout)
}

// withRetry runs op and retries it exactly once after a short backoff when
// the store was unavailable. Only used for idempotent operations; Join is
// never retried since a success whose response timed out would double-insert.
func withRetry(op func() error) error {
	err := op()
	if err == nil || !errors.Is(err, queue.ErrStorageUnavailable) {
		return err
	}
	time.Sleep(retryBackoff)
	return op()
}

func deviceID(c *gin.Context) string {
	return c.GetString("deviceID")
}
