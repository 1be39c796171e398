package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/response"
	"github.com/cjiajing/robinson-parking/internal/storage"
)

var maintenanceCtx = context.Background()

const maintenanceCacheKey = "maintenance_schedule"

// MaintenanceItem is one scheduled service window.
type MaintenanceItem struct {
	ID          uint   `json:"id"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// GetMaintenanceScheduleHandler returns upcoming maintenance windows
// @Summary		Maintenance schedule
// @Description	Lists upcoming service windows, cached in Redis for 10 minutes
// @Tags			maintenance
// @Accept			json
// @Produce		json
// @Success		200	{array}		MaintenanceItem	"Schedule"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/maintenance [get]
func GetMaintenanceScheduleHandler(c *gin.Context) {
	// Cache check; the schedule changes rarely and every resident loads it.
	if storage.RedisClient != nil {
		cached, err := storage.RedisClient.Get(maintenanceCtx, maintenanceCacheKey).Result()
		if err == nil && cached != "" {
			var items []MaintenanceItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				c.JSON(http.StatusOK, items)
				return
			}
		}
	}

	ctx, cancel := opContext(c)
	defer cancel()

	var windows []models.MaintenanceWindow
	if err := storage.DB.WithContext(ctx).
		Where("ends_at >= ?", time.Now().Add(-24*time.Hour)).
		Order("starts_at ASC").
		Find(&windows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to load maintenance schedule",
			Details: err.Error(),
		})
		return
	}

	items := make([]MaintenanceItem, 0, len(windows))
	for _, w := range windows {
		items = append(items, MaintenanceItem{
			ID:          w.ID,
			StartsAt:    w.StartsAt.Format(time.RFC3339),
			EndsAt:      w.EndsAt.Format(time.RFC3339),
			Kind:        w.Kind,
			Description: w.Description,
			Status:      w.Status,
		})
	}

	if storage.RedisClient != nil {
		if payload, err := json.Marshal(items); err == nil {
			storage.RedisClient.Set(maintenanceCtx, maintenanceCacheKey, string(payload), 10*time.Minute)
		}
	}

	c.JSON(http.StatusOK, items)
}

// CreateMaintenanceRequest schedules a new service window.
type CreateMaintenanceRequest struct {
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
	Kind        string    `json:"kind" binding:"required"`
	Description string    `json:"description"`
}

// CreateMaintenanceHandler schedules a maintenance window
// @Summary		Schedule maintenance
// @Description	Staff adds a service window to the calendar and invalidates the cached schedule
// @Tags			admin
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			body	body		CreateMaintenanceRequest	true	"Window details"
// @Success		201	{object}	MaintenanceItem	"Scheduled window"
// @Failure		400	{object}	response.ErrorResponse	"VALIDATION_ERROR, INVALID_WINDOW"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/admin/maintenance [post]
func CreateMaintenanceHandler(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Request validation failed",
			Details: err.Error(),
		})
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_WINDOW",
			Message: "Window must end after it starts",
		})
		return
	}

	window := models.MaintenanceWindow{
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Kind:        req.Kind,
		Description: req.Description,
		Status:      "upcoming",
	}

	ctx, cancel := opContext(c)
	defer cancel()

	if err := storage.DB.WithContext(ctx).Create(&window).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to schedule maintenance",
			Details: err.Error(),
		})
		return
	}

	if storage.RedisClient != nil {
		storage.RedisClient.Del(maintenanceCtx, maintenanceCacheKey)
	}

	c.JSON(http.StatusCreated, MaintenanceItem{
		ID:          window.ID,
		StartsAt:    window.StartsAt.Format(time.RFC3339),
		EndsAt:      window.EndsAt.Format(time.RFC3339),
		Kind:        window.Kind,
		Description: window.Description,
		Status:      window.Status,
	})
}
