package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cjiajing/robinson-parking/internal/queue"
	"github.com/cjiajing/robinson-parking/internal/response"
	"github.com/cjiajing/robinson-parking/internal/ws"
)

// ReportQueueLengthRequest is a manual "I count N people waiting" report.
type ReportQueueLengthRequest struct {
	Count *int `json:"count" binding:"required"`
}

// ReportQueueLengthHandler records a community queue-length observation
// @Summary		Report observed queue length
// @Description	Stores a verification sample that feeds the community-verified length estimate
// @Tags			verification
// @Accept			json
// @Produce		json
// @Param			lift	path		string	true	"Lift (A or B)"
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Param			body	body		ReportQueueLengthRequest	true	"Observed count"
// @Success		200	{object}	response.SuccessResponse	"Report recorded"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_LIFT, INVALID_COUNT, VALIDATION_ERROR"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/lifts/{lift}/verifications [post]
func ReportQueueLengthHandler(c *gin.Context) {
	lift := c.Param("lift")
	owner := deviceID(c)

	var req ReportQueueLengthRequest
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

	err := reconciler().ReportObservedCount(ctx, lift, owner, *req.Count)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrUnknownLift):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_LIFT",
				Message: "Unknown lift identifier",
			})
		case errors.Is(err, queue.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_COUNT",
				Message: "Count must be a non-negative integer",
			})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Failed to record verification",
				Details: err.Error(),
			})
		}
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventVerificationAdded,
		Lift:      lift,
	})

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Queue report recorded, thanks for helping"})
}
