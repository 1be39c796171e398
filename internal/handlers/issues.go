package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/response"
	"github.com/cjiajing/robinson-parking/internal/storage"
)

// ReportIssueRequest is a resident-filed mechanical issue.
type ReportIssueRequest struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Lift        *string `json:"lift"`
}

// IssueResponse is one reported issue.
type IssueResponse struct {
	ID          uint    `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Lift        *string `json:"lift,omitempty"`
	Status      string  `json:"status"`
	ReportedAt  string  `json:"reported_at"`
}

// ReportIssueHandler files a mechanical issue report
// @Summary		Report an issue
// @Description	Files a mechanical issue against a lift or the structure in general
// @Tags			issues
// @Accept			json
// @Produce		json
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Param			body	body		ReportIssueRequest	true	"Issue details"
// @Success		201	{object}	IssueResponse	"Filed issue"
// @Failure		400	{object}	response.ErrorResponse	"VALIDATION_ERROR, INVALID_LIFT"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/issues [post]
func ReportIssueHandler(c *gin.Context) {
	owner := deviceID(c)

	var req ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Request validation failed",
			Details: err.Error(),
		})
		return
	}
	if req.Lift != nil && !models.ValidLift(*req.Lift) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_LIFT",
			Message: "Unknown lift identifier",
		})
		return
	}

	issue := models.IssueReport{
		OwnerID:     owner,
		Category:    req.Category,
		Description: req.Description,
		Lift:        req.Lift,
		Status:      models.IssueOpen,
	}

	ctx, cancel := opContext(c)
	defer cancel()

	if err := storage.DB.WithContext(ctx).Create(&issue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to file issue",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, issueResponse(issue))
}

// ListIssuesHandler lists open issues
// @Summary		List issues
// @Description	Returns reported issues, most recent first
// @Tags			issues
// @Accept			json
// @Produce		json
// @Param			X-Device-ID	header	string	true	"Device identity"
// @Param			status	query	string	false	"Filter by status (open/resolved)"
// @Success		200	{array}		IssueResponse	"Issues"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/issues [get]
func ListIssuesHandler(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	q := storage.DB.WithContext(ctx).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var issues []models.IssueReport
	if err := q.Find(&issues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to load issues",
			Details: err.Error(),
		})
		return
	}

	result := make([]IssueResponse, 0, len(issues))
	for _, issue := range issues {
		result = append(result, issueResponse(issue))
	}
	c.JSON(http.StatusOK, result)
}

// ResolveIssueHandler marks an issue resolved
// @Summary		Resolve an issue
// @Description	Staff marks a reported issue as resolved
// @Tags			admin
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		string	true	"Issue ID"
// @Success		200	{object}	response.SuccessResponse	"Resolved"
// @Failure		400	{object}	response.ErrorResponse	"INVALID_ISSUE_ID"
// @Failure		404	{object}	response.ErrorResponse	"ISSUE_NOT_FOUND"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/api/admin/issues/{id}/resolve [put]
func ResolveIssueHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_ISSUE_ID",
			Message: "Invalid issue identifier",
		})
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	res := storage.DB.WithContext(ctx).
		Model(&models.IssueReport{}).
		Where("id = ?", id).
		Update("status", models.IssueResolved)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Failed to resolve issue",
			Details: res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "ISSUE_NOT_FOUND",
			Message: "Issue not found",
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Issue resolved"})
}

func issueResponse(issue models.IssueReport) IssueResponse {
	return IssueResponse{
		ID:          issue.ID,
		Category:    issue.Category,
		Description: issue.Description,
		Lift:        issue.Lift,
		Status:      issue.Status,
		ReportedAt:  issue.CreatedAt.Format(time.RFC3339),
	}
}
