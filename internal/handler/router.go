package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Dumorro/e-nvites/internal/middleware"
)

// RegisterRoutes wires all HTTP routes onto the engine. Guest routes are
// open (the GUID is the capability); admin routes sit behind the
// shared-secret middleware.
func RegisterRoutes(r *gin.Engine, rsvp *RSVPHandler, admin *AdminHandler, health *HealthHandler, adminPassword string) {
	r.GET("/health", health.Health)

	api := r.Group("/api")

	api.GET("/rsvp", rsvp.GetGuest)
	api.POST("/rsvp", rsvp.UpdateRSVP)
	api.GET("/rsvp/guest", rsvp.GetGuest)
	api.POST("/rsvp/confirm-by-email", rsvp.ConfirmByEmail)
	api.GET("/rsvp/guest-image", rsvp.GetGuestImage)

	adminAuth := middleware.AdminAuth(adminPassword)
	api.GET("/rsvp/list", adminAuth, admin.ListGuests)

	adminGroup := api.Group("/admin", adminAuth)
	adminGroup.POST("/import-guests", admin.ImportGuests)
	adminGroup.POST("/upload-invites", admin.UploadInvites)
	adminGroup.GET("/import-logs", admin.ImportLogs)
	adminGroup.POST("/send-confirmation", admin.SendConfirmation)
}
