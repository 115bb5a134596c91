package library

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	deviceHeader = "X-Device-ID"
	deviceKey    = "device_id"
)

// DeviceMiddleware identifies the anonymous device behind a request. Clients
// send the UUID back in X-Device-ID; a request without one gets a fresh UUID
// minted and echoed in the response header so the client can persist it.
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(deviceHeader))
		if id == "" || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.Header(deviceHeader, id)
		c.Set(deviceKey, id)
		c.Next()
	}
}

// DeviceID returns the device id set by DeviceMiddleware.
func DeviceID(c *gin.Context) string {
	return c.GetString(deviceKey)
}
