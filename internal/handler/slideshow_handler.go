package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/leaf_api/internal/service"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// SlideshowHandler serves the homepage slideshow: the public active
// rotation plus the dashboard's manager endpoints.
type SlideshowHandler struct {
	slides *service.SlideshowService
}

// NewSlideshowHandler constructs a SlideshowHandler.
func NewSlideshowHandler(slides *service.SlideshowService) *SlideshowHandler {
	return &SlideshowHandler{slides: slides}
}

func writeSlideError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Error())
	case errors.Is(err, utils.ErrImageTooLarge):
		utils.Error(c, http.StatusBadRequest, "IMAGE_TOO_LARGE", "Image exceeds the maximum allowed size")
	case errors.Is(err, utils.ErrSlideshowNotFound):
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Slideshow not found")
	case errors.Is(err, utils.ErrUploadFailed):
		utils.Error(c, http.StatusBadGateway, "UPLOAD_FAILED", "Image upload failed")
	default:
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

// ListActive handles GET /slideshows: the public rotation, active slides
// only, in display order.
func (h *SlideshowHandler) ListActive(c *gin.Context) {
	slides, err := h.slides.ListActiveSlides()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch slideshows")
		return
	}
	utils.Success(c, http.StatusOK, "Slideshows retrieved", gin.H{
		"slideshows": slides,
		"count":      len(slides),
	})
}

// ListAll handles GET /admin/slideshows: every slide regardless of
// visibility, for the manager view.
func (h *SlideshowHandler) ListAll(c *gin.Context) {
	slides, err := h.slides.ListSlides()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch slideshows")
		return
	}
	utils.Success(c, http.StatusOK, "Slideshows retrieved", gin.H{
		"slideshows": slides,
		"count":      len(slides),
	})
}

// CreateSlide handles POST /admin/slideshows. Multipart body: form fields
// plus a required "image" file. The new slide lands at the end of the
// rotation, active.
func (h *SlideshowHandler) CreateSlide(c *gin.Context) {
	var input service.SlideshowInput
	if err := c.ShouldBind(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid slideshow payload")
		return
	}
	image, err := readImageFile(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid image upload")
		return
	}

	slide, err := h.slides.CreateSlide(c.Request.Context(), &input, image)
	if err != nil {
		writeSlideError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Slideshow created", slide)
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive handles PATCH /admin/slideshows/:id/active.
func (h *SlideshowHandler) SetActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "active flag is required")
		return
	}

	if err := h.slides.SetActive(c.Param("id"), *req.Active); err != nil {
		writeSlideError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Slideshow visibility updated", gin.H{
		"id":     c.Param("id"),
		"active": *req.Active,
	})
}

// DeleteSlide handles DELETE /admin/slideshows/:id.
func (h *SlideshowHandler) DeleteSlide(c *gin.Context) {
	if err := h.slides.DeleteSlide(c.Param("id")); err != nil {
		writeSlideError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Slideshow deleted", nil)
}
