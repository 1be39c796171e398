package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/pallet"
	"github.com/cjiajing/robinson-parking/internal/response"
	"github.com/cjiajing/robinson-parking/internal/storage"
)

// CheckInRequest records where a resident parked. Code and pallet are both
// optional; the code helps at the touchscreen, the pallet refines the
// retrieval estimate.
type CheckInRequest struct {
	Lift   string  `json:"lift" binding:"required"`
	Code   *string `json:"code"`
	Pallet *int    `json:"pallet"`
}

// ParkingResponse is the server-side parking record plus derived estimates.
type ParkingResponse struct {
	Lift          string           `json:"lift"`
	Code          string           `json:"code,omitempty"`
	Pallet        *int             `json:"pallet,omitempty"`
	Level         *int             `json:"level,omitempty"`
	RetrievalTime pallet.TimeRange `json:"retrieval_time"`
	SuggestedLift string           `json:"suggested_lift,omitempty"`
}

// CheckInHandler saves or replaces the caller's parking record
// @Summary		Check in a parked car
// @Description	Records lift, optional 4-digit code and optional pallet; level and retrieval estimate are derived
// @Tags			parking
// @Accept			json
// @Produce		json
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Param			body	body		CheckInRequest	true	"Parking details"
// @Success		200	{object}	ParkingResponse	"Saved parking record"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_LIFT, INVALID_CODE, INVALID_PALLET, VALIDATION_ERROR"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/parking [post]
func CheckInHandler(c *gin.Context) {
	owner := deviceID(c)

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Request validation failed",
			Details: err.Error(),
		})
		return
	}

	if !models.ValidLift(req.Lift) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_LIFT",
			Message: "Unknown lift identifier",
		})
		return
	}

	record := models.ParkingRecord{
		OwnerID: owner,
		Lift:    req.Lift,
	}

	if req.Code != nil && *req.Code != "" {
		code, err := pallet.NewRetrievalCode(*req.Code)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_CODE",
				Message: "Retrieval code must be exactly 4 digits",
			})
			return
		}
		record.Code = code.String()
	}

	if req.Pallet != nil {
		num, err := pallet.NewNumber(*req.Pallet)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_PALLET",
				Message: "Pallet number must be between 1 and 56",
			})
			return
		}
		p := num.Int()
		level := num.Level()
		record.Pallet = &p
		record.Level = &level
	}

	ctx, cancel := opContext(c)
	defer cancel()

	// One record per device: replace any previous check-in.
	err := storage.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", owner).Delete(&models.ParkingRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to save parking record",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, parkingResponse(record))
}

// GetParkingHandler returns the caller's parking record
// @Summary		Where did I park
// @Description	Returns the authoritative copy of the caller's last check-in with derived estimates
// @Tags			parking
// @Accept			json
// @Produce		json
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Success		200	{object}	ParkingResponse	"Parking record"
// @Failure		404	{object}	response.ErrorResponse	"NOT_PARKED"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/parking [get]
func GetParkingHandler(c *gin.Context) {
	owner := deviceID(c)

	ctx, cancel := opContext(c)
	defer cancel()

	var record models.ParkingRecord
	err := storage.DB.WithContext(ctx).Where("owner_id = ?", owner).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "NOT_PARKED",
				Message: "No parking record for this device",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to load parking record",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, parkingResponse(record))
}

// ClearParkingHandler deletes the caller's parking record
// @Summary		Clear parking record
// @Description	Removes the stored check-in; succeeds as a no-op when there is none
// @Tags			parking
// @Accept			json
// @Produce		json
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Success		200	{object}	response.SuccessResponse	"Cleared"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/parking [delete]
func ClearParkingHandler(c *gin.Context) {
	owner := deviceID(c)

	ctx, cancel := opContext(c)
	defer cancel()

	if err := storage.DB.WithContext(ctx).
		Where("owner_id = ?", owner).
		Delete(&models.ParkingRecord{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to clear parking record",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Parking record cleared"})
}

// LookupParkingHandler lets staff find parking records by code and lift
// @Summary		Staff vehicle lookup
// @Description	Lists parking records matching a retrieval code, optionally narrowed to one lift
// @Tags			admin
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			code	query		string	true	"4-digit retrieval code"
// @Param			lift	query		string	false	"Lift (A or B)"
// @Success		200	{array}		ParkingResponse	"Matching records"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_CODE, INVALID_LIFT"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/admin/parking/lookup [get]
func LookupParkingHandler(c *gin.Context) {
	code, err := pallet.NewRetrievalCode(c.Query("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CODE",
			Message: "Retrieval code must be exactly 4 digits",
		})
		return
	}

	lift := c.Query("lift")
	if lift != "" && !models.ValidLift(lift) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_LIFT",
			Message: "Unknown lift identifier",
		})
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	q := storage.DB.WithContext(ctx).Where("code = ?", code.String())
	if lift != "" {
		q = q.Where("lift = ?", lift)
	}

	var records []models.ParkingRecord
	if err := q.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to look up parking records",
			Details: err.Error(),
		})
		return
	}

	result := make([]ParkingResponse, 0, len(records))
	for _, r := range records {
		result = append(result, parkingResponse(r))
	}
	c.JSON(http.StatusOK, result)
}

func parkingResponse(r models.ParkingRecord) ParkingResponse {
	resp := ParkingResponse{
		Lift:          r.Lift,
		Code:          r.Code,
		Pallet:        r.Pallet,
		Level:         r.Level,
		RetrievalTime: pallet.DefaultTimeRange,
	}
	if r.Level != nil {
		resp.RetrievalTime = pallet.RetrievalTimeRange(*r.Level)
	}
	if r.Pallet != nil {
		if num, err := pallet.NewNumber(*r.Pallet); err == nil {
			resp.SuggestedLift = pallet.DefaultLiftPolicy(num)
		}
	}
	return resp
}
