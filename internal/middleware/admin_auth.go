package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dumorro/e-nvites/pkg/response"
)

// AdminPasswordHeader is the shared-secret header admin clients must send
const AdminPasswordHeader = "X-Admin-Password"

// AdminAuth guards admin routes with a shared-secret header check
func AdminAuth(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminPasswordHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(password)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized(""))
			return
		}
		c.Next()
	}
}
