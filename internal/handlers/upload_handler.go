package handlers

import (
	"fmt"
	"net/http"

	"heyprodata_backend/internal/config"
	"heyprodata_backend/internal/middleware"
	"heyprodata_backend/internal/services"
	"heyprodata_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{BaseHandler: base, uploadService: uploadService}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/files/:uploadId", h.ServeFile)

	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("", h.Upload)
		uploads.GET("/my", h.ListMine)
		uploads.DELETE("/:uploadId", h.Delete)
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	cfg := config.GetConfig()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.Upload.MaxSize+1024)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A 'file' form field is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	usage := c.PostForm("usage")

	upload, svcErr := h.uploadService.Store(
		c.Request.Context(), userID, fileHeader.Filename, mimeType, usage, fileHeader.Size, file)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	h.RespondCreated(c, "File uploaded", upload)
}

func (h *UploadHandler) ServeFile(c *gin.Context) {
	upload, reader, err := h.uploadService.Open(c.Request.Context(), c.Param("uploadId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", upload.MimeType)
	c.Header("Content-Length", fmt.Sprintf("%d", upload.Size))
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, upload.OriginalName))
	c.DataFromReader(http.StatusOK, upload.Size, upload.MimeType, reader, nil)
}

func (h *UploadHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	uploads, err := h.uploadService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Uploads retrieved", uploads)
}

func (h *UploadHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), c.Param("uploadId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "File deleted", nil)
}
