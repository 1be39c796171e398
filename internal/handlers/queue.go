package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/queue"
	"github.com/cjiajing/robinson-parking/internal/response"
	"github.com/cjiajing/robinson-parking/internal/storage"
	"github.com/cjiajing/robinson-parking/internal/ws"
)

// waitPerCar is the rough minutes one retrieval ahead of you costs.
const waitPerCar = 5

// JoinQueueHandler adds the caller to a lift's retrieval queue
// @Summary		Join the retrieval queue
// @Description	Inserts a waiting entry for the device and returns the queue length for the position picker
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			lift	path		string	true	"Lift (A or B)"
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Success		200	{object}	JoinResponse	"Joined; pick your real position next"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_LIFT, ALREADY_IN_QUEUE"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lifts/{lift}/queue/join [post]
func JoinQueueHandler(c *gin.Context) {
	lift := c.Param("lift")
	owner := deviceID(c)

	ctx, cancel := opContext(c)
	defer cancel()

	res, err := reconciler().Join(ctx, lift, owner)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrUnknownLift):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_LIFT",
				Message: "Unknown lift identifier",
			})
		case errors.Is(err, queue.ErrAlreadyQueued):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "ALREADY_IN_QUEUE",
				Message: "You are already in the queue for this lift",
			})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Failed to join queue",
				Details: err.Error(),
			})
		}
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventQueueChanged,
		Lift:      lift,
		Data: map[string]interface{}{
			"queue_length": res.QueueLength,
		},
	})

	c.JSON(http.StatusOK, JoinResponse{
		EntryID:     res.EntryID,
		QueueLength: res.QueueLength,
	})
}

// JoinResponse reports the new entry and the queue length snapshot.
type JoinResponse struct {
	EntryID     uint `json:"entry_id"`
	QueueLength int  `json:"queue_length"`
}

// PinPositionRequest carries the position the resident claims to hold in the
// physical line.
type PinPositionRequest struct {
	Position int `json:"position" binding:"required"`
}

// PinPositionResponse reports the reconciled position.
type PinPositionResponse struct {
	Position       int  `json:"position"`
	SampleRecorded bool `json:"sample_recorded"`
}

// PinPositionHandler reconciles the caller's claimed physical position
// @Summary		Pin your real position in line
// @Description	Rewrites the caller's ordering key so the digital queue matches the position they see at the lift, and records a verification sample
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			lift	path		string	true	"Lift (A or B)"
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Param			body	body		PinPositionRequest	true	"Claimed position (1-based)"
// @Success		200	{object}	PinPositionResponse	"Reconciled position (clamped to queue length)"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_LIFT, INVALID_POSITION, VALIDATION_ERROR"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lifts/{lift}/queue/pin [post]
func PinPositionHandler(c *gin.Context) {
	lift := c.Param("lift")
	owner := deviceID(c)

	var req PinPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Request validation failed",
			Details: err.Error(),
		})
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	var res queue.PinResult
	err := withRetry(func() error {
		var err error
		res, err = reconciler().PinPosition(ctx, lift, owner, req.Position)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrUnknownLift):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_LIFT",
				Message: "Unknown lift identifier",
			})
		case errors.Is(err, queue.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_POSITION",
				Message: "Position must be a positive integer",
				Details: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Failed to update queue position",
				Details: err.Error(),
			})
		}
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventQueueChanged,
		Lift:      lift,
		Data: map[string]interface{}{
			"position": res.Position,
		},
	})
	if res.SampleRecorded {
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType: ws.EventVerificationAdded,
			Lift:      lift,
		})
	}

	c.JSON(http.StatusOK, PinPositionResponse{
		Position:       res.Position,
		SampleRecorded: res.SampleRecorded,
	})
}

// LeaveQueueHandler removes the caller from the queue
// @Summary		Leave the retrieval queue
// @Description	Cancels the caller's waiting entry; succeeds as a no-op when there is none
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			lift	path		string	true	"Lift (A or B)"
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Success		200	{object}	response.SuccessResponse	"Left the queue"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_LIFT"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lifts/{lift}/queue/leave [post]
func LeaveQueueHandler(c *gin.Context) {
	lift := c.Param("lift")
	owner := deviceID(c)

	ctx, cancel := opContext(c)
	defer cancel()

	err := withRetry(func() error {
		return reconciler().Leave(ctx, lift, owner)
	})
	if err != nil {
		if errors.Is(err, queue.ErrUnknownLift) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_LIFT",
				Message: "Unknown lift identifier",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to leave queue",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventQueueChanged,
		Lift:      lift,
	})

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Left the queue"})
}

// CompleteRetrievalHandler confirms the caller got their car back
// @Summary		Confirm vehicle retrieved
// @Description	Marks the caller's waiting entry completed and clears their parking record
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			lift	path		string	true	"Lift (A or B)"
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Success		200	{object}	response.SuccessResponse	"Retrieval confirmed"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_LIFT"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lifts/{lift}/queue/complete [post]
func CompleteRetrievalHandler(c *gin.Context) {
	lift := c.Param("lift")
	owner := deviceID(c)

	ctx, cancel := opContext(c)
	defer cancel()

	err := withRetry(func() error {
		return reconciler().Complete(ctx, lift, owner)
	})
	if err != nil {
		if errors.Is(err, queue.ErrUnknownLift) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_LIFT",
				Message: "Unknown lift identifier",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to confirm retrieval",
			Details: err.Error(),
		})
		return
	}

	// Completing retrieval is the only transition that clears the parking
	// record.
	if err := storage.DB.WithContext(ctx).
		Where("owner_id = ?", owner).
		Delete(&models.ParkingRecord{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Retrieval confirmed but clearing the parking record failed",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventQueueChanged,
		Lift:      lift,
	})

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Vehicle retrieval confirmed"})
}

// QueuedEntry is one visible entry in the queue status, with the owner id
// masked down to its tail.
type QueuedEntry struct {
	Position int    `json:"position"`
	Owner    string `json:"owner"` // last 4 characters of the device id
	You      bool   `json:"you"`
}

// QueueStatusResponse is the full queue view for one lift.
type QueueStatusResponse struct {
	Lift                 string        `json:"lift"`
	QueueLength          int           `json:"queue_length"`
	InQueue              bool          `json:"in_queue"`
	Position             *int          `json:"position,omitempty"`
	EstimatedWaitMinutes *int          `json:"estimated_wait_minutes,omitempty"`
	VerifiedCount        *int          `json:"verified_count,omitempty"`
	VerifiedAt           *time.Time    `json:"verified_at,omitempty"`
	Entries              []QueuedEntry `json:"entries"`
}

// GetQueueStatusHandler returns the lift's queue and the caller's place in it
// @Summary		Queue status
// @Description	Returns queue length, the caller's recomputed position and the community-verified length estimate
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			lift	path		string	true	"Lift (A or B)"
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Success		200	{object}	QueueStatusResponse	"Queue status"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_LIFT"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lifts/{lift}/queue [get]
func GetQueueStatusHandler(c *gin.Context) {
	lift := c.Param("lift")
	owner := deviceID(c)

	if !models.ValidLift(lift) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_LIFT",
			Message: "Unknown lift identifier",
		})
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	store := queue.NewGormStore(storage.DB)
	var entries []models.QueueEntry
	err := withRetry(func() error {
		var err error
		entries, err = store.ListWaiting(ctx, lift)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to load queue",
			Details: err.Error(),
		})
		return
	}

	resp := QueueStatusResponse{
		Lift:        lift,
		QueueLength: len(entries),
		Entries:     make([]QueuedEntry, 0, len(entries)),
	}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, QueuedEntry{
			Position: i + 1,
			Owner:    maskOwner(e.OwnerID),
			You:      e.OwnerID == owner,
		})
		if e.OwnerID == owner {
			pos := i + 1
			wait := (pos - 1) * waitPerCar
			resp.InQueue = true
			resp.Position = &pos
			resp.EstimatedWaitMinutes = &wait
		}
	}

	// The verified estimate is advisory; a failure here should not take the
	// whole status read down.
	if est, err := reconciler().VerifiedEstimate(ctx, lift); err == nil && est.OK {
		count := est.Count
		at := est.ReportedAt
		resp.VerifiedCount = &count
		resp.VerifiedAt = &at
	}

	c.JSON(http.StatusOK, resp)
}

func maskOwner(ownerID string) string {
	if len(ownerID) <= 4 {
		return ownerID
	}
	return "…" + ownerID[len(ownerID)-4:]
}
