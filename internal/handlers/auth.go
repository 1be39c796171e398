package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cjiajing/robinson-parking/internal/response"
)

var AccessSecret = []byte(os.Getenv("JWT_ACCESS_SECRET"))

// StaffLoginRequest is the building-management login.
type StaffLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// StaffLogin issues a staff access token
// @Summary		Staff login
// @Description	Verifies the staff password against its bcrypt hash and issues a JWT for the admin endpoints
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			body	body		StaffLoginRequest	true	"Staff password"
// @Success		200	{object}	response.TokenResponse	"Access token"
// @Failure		400	{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401	{object}	response.ErrorResponse	"INVALID_CREDENTIALS"
// @Failure		500	{object}	response.ErrorResponse	"TOKEN_GENERATION_ERROR"
// @Router			/auth/staff/login [post]
func StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Request validation failed",
			Details: err.Error(),
		})
		return
	}

	hash := os.Getenv("STAFF_PASSWORD_HASH")
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Wrong password",
		})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "staff",
		"exp":  time.Now().Add(12 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(AccessSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Failed to sign access token",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{AccessToken: signed})
}
