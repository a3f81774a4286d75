package handlers

import (
	"heyprodata_backend/internal/middleware"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services"
	"heyprodata_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	gigService services.GigService
}

func NewGigHandler(base *BaseHandler, gigService services.GigService) *GigHandler {
	return &GigHandler{BaseHandler: base, gigService: gigService}
}

func (h *GigHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/gigs")
	{
		public.GET("", h.ListGigs)
		public.GET("/:gigId", h.GetGig)
	}

	protected := r.Group("/gigs")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateGig)
		protected.GET("/mine", h.ListMyGigs)
		protected.PUT("/:gigId", h.UpdateGig)
		protected.POST("/:gigId/close", h.CloseGig)
		protected.DELETE("/:gigId", h.DeleteGig)
	}
}

func (h *GigHandler) ListGigs(c *gin.Context) {
	var criteria repositories.GigCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.gigService.ListGigs(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Gigs retrieved", resp)
}

func (h *GigHandler) GetGig(c *gin.Context) {
	gig, err := h.gigService.GetGig(c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Gig retrieved", gig)
}

func (h *GigHandler) CreateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	gig, err := h.gigService.CreateGig(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Gig created", gig)
}

func (h *GigHandler) ListMyGigs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gigs, err := h.gigService.ListMyGigs(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Gigs retrieved", gigs)
}

func (h *GigHandler) UpdateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	gig, err := h.gigService.UpdateGig(c.Param("gigId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Gig updated", gig)
}

func (h *GigHandler) CloseGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gig, err := h.gigService.CloseGig(c.Param("gigId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Gig closed", gig)
}

func (h *GigHandler) DeleteGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.gigService.DeleteGig(c.Param("gigId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Gig deleted", nil)
}
