package handlers

import (
	"heyprodata_backend/internal/middleware"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services"
	"heyprodata_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
}

func NewEventHandler(base *BaseHandler, eventService services.EventService) *EventHandler {
	return &EventHandler{BaseHandler: base, eventService: eventService}
}

func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/whatson")
	{
		public.GET("", h.ListPublished)
	}

	protected := r.Group("/whatson")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateEvent)
		protected.GET("/mine", h.ListMine)
		protected.GET("/:eventId", h.GetEvent)
		protected.PUT("/:eventId", h.UpdateEvent)
		protected.POST("/:eventId/publish", h.PublishEvent)
		protected.POST("/:eventId/cancel", h.CancelEvent)
	}
}

func (h *EventHandler) ListPublished(c *gin.Context) {
	var criteria repositories.EventCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.eventService.ListPublished(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Events retrieved", resp)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Event created", event)
}

func (h *EventHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	events, err := h.eventService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Events retrieved", events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Param("eventId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Event retrieved", event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	event, err := h.eventService.UpdateEvent(c.Param("eventId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Event updated", event)
}

func (h *EventHandler) PublishEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	event, err := h.eventService.PublishEvent(c.Param("eventId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Event published", event)
}

func (h *EventHandler) CancelEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	event, err := h.eventService.CancelEvent(c.Param("eventId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Event cancelled", event)
}
