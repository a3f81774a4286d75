package handlers

import (
	"fmt"
	"net/http"

	"heyprodata_backend/internal/middleware"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services"
	"heyprodata_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RSVPHandler struct {
	*BaseHandler
	rsvpService services.RSVPService
}

func NewRSVPHandler(base *BaseHandler, rsvpService services.RSVPService) *RSVPHandler {
	return &RSVPHandler{BaseHandler: base, rsvpService: rsvpService}
}

func (h *RSVPHandler) RegisterRoutes(r *gin.RouterGroup) {
	rsvp := r.Group("/whatson")
	rsvp.Use(middleware.AuthMiddleware())
	{
		rsvp.GET("/rsvp/my", h.MyTickets)
		rsvp.POST("/:eventId/rsvp", h.CreateRSVP)
		rsvp.DELETE("/:eventId/rsvp", h.CancelRSVP)
		rsvp.GET("/:eventId/rsvp/list", h.ListRSVPs)
		rsvp.GET("/:eventId/rsvp/export", h.ExportCSV)
	}
}

func (h *RSVPHandler) CreateRSVP(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRSVPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	rsvp, err := h.rsvpService.CreateRSVP(c.Param("eventId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "RSVP confirmed", rsvp)
}

func (h *RSVPHandler) CancelRSVP(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.rsvpService.CancelRSVP(c.Param("eventId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "RSVP cancelled", nil)
}

func (h *RSVPHandler) ListRSVPs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var criteria repositories.RSVPCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.rsvpService.ListByEvent(c.Param("eventId"), userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "RSVPs retrieved", resp)
}

func (h *RSVPHandler) ExportCSV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	filename, body, err := h.rsvpService.ExportCSV(c.Param("eventId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

func (h *RSVPHandler) MyTickets(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	tickets, err := h.rsvpService.MyTickets(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Tickets retrieved", tickets)
}
