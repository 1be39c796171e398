package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cjiajing/robinson-parking/internal/handlers"
	"github.com/cjiajing/robinson-parking/internal/response"
)

// DeviceMiddleware extracts the anonymous device identity from X-Device-ID.
// The id is minted client-side (or via GET /api/identity) and is never a
// credential; the server only needs it to scope queue entries and parking
// records to the device.
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := strings.TrimSpace(c.GetHeader("X-Device-ID"))
		if deviceID == "" {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "NO_DEVICE_ID",
				Message: "X-Device-ID header is required",
			})
			c.Abort()
			return
		}
		c.Set("deviceID", deviceID)
		c.Next()
	}
}

// StaffMiddleware validates the staff access token for /api/admin endpoints.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Authorization required",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return handlers.AccessSecret, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "staff" {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN_CLAIMS",
				Message: "Token does not grant staff access",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
