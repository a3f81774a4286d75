package handlers

import (
	"heyprodata_backend/internal/middleware"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services"
	"heyprodata_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	*BaseHandler
	feedService services.FeedService
}

func NewFeedHandler(base *BaseHandler, feedService services.FeedService) *FeedHandler {
	return &FeedHandler{BaseHandler: base, feedService: feedService}
}

func (h *FeedHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/feed")
	{
		public.GET("", h.ListFeed)
		public.GET("/:postId", h.GetPost)
	}

	protected := r.Group("/feed")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreatePost)
		protected.DELETE("/:postId", h.DeletePost)
		protected.POST("/:postId/like", h.LikePost)
		protected.DELETE("/:postId/like", h.UnlikePost)
	}
}

func (h *FeedHandler) ListFeed(c *gin.Context) {
	var criteria repositories.FeedCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.feedService.ListFeed(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Feed retrieved", resp)
}

func (h *FeedHandler) GetPost(c *gin.Context) {
	post, err := h.feedService.GetPost(c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Post retrieved", post)
}

func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.feedService.CreatePost(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Post created", post)
}

func (h *FeedHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.feedService.DeletePost(c.Param("postId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Post deleted", nil)
}

func (h *FeedHandler) LikePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.feedService.LikePost(c.Param("postId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Post liked", nil)
}

func (h *FeedHandler) UnlikePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.feedService.UnlikePost(c.Param("postId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Post unliked", nil)
}
