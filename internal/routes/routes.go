package routes

import (
	"heyprodata_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every handler under /api/v1.
func SetupRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	api := r.Group("/api/v1")

	h.Health.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api)
	h.Profile.RegisterRoutes(api)
	h.Gig.RegisterRoutes(api)
	h.Application.RegisterRoutes(api)
	h.Event.RegisterRoutes(api)
	h.RSVP.RegisterRoutes(api)
	h.Feed.RegisterRoutes(api)
	h.Notification.RegisterRoutes(api)
	h.Upload.RegisterRoutes(api)
}
