package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityResponse carries a freshly minted device id.
type IdentityResponse struct {
	DeviceID string `json:"device_id"`
}

// NewIdentityHandler mints an anonymous device id
// @Summary		Mint a device identity
// @Description	Returns a fresh anonymous device id for clients that have none persisted; never a credential
// @Tags			identity
// @Accept			json
// @Produce		json
// @Success		200	{object}	IdentityResponse	"New device id"
// @Router			/api/identity [get]
func NewIdentityHandler(c *gin.Context) {
	c.JSON(http.StatusOK, IdentityResponse{DeviceID: "device-" + uuid.NewString()})
}
