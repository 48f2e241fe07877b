package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// SlideshowStore is the data access surface for homepage slides.
type SlideshowStore interface {
	ListAll() ([]models.Slideshow, error)
	ListActive() ([]models.Slideshow, error)
	Count() (int, error)
	GetByID(id string) (*models.Slideshow, error)
	Create(s *models.Slideshow) error
	SetActive(id string, active bool) error
	Delete(id string) error
}

// SlideshowService manages homepage promotional slides: upload-then-insert
// creation, visibility toggling, and permanent deletion.
type SlideshowService struct {
	slides   SlideshowStore
	uploader imageUploader
}

// NewSlideshowService constructs a SlideshowService.
func NewSlideshowService(slides SlideshowStore, images ImageBucket, maxImageBytes int64) *SlideshowService {
	return &SlideshowService{
		slides:   slides,
		uploader: imageUploader{bucket: images, maxBytes: maxImageBytes},
	}
}

// SlideshowInput is the slide creation payload.
type SlideshowInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	LinkURL     string `json:"link_url" form:"link_url"`
}

// ListSlides returns every slide in display order for the manager view.
func (s *SlideshowService) ListSlides() ([]models.Slideshow, error) {
	return s.slides.ListAll()
}

// ListActiveSlides returns the public rotation: active slides in ascending
// display order.
func (s *SlideshowService) ListActiveSlides() ([]models.Slideshow, error) {
	return s.slides.ListActive()
}

// CreateSlide uploads the required image, then appends one slide to the end
// of the rotation. display_order is set to the current count; deletion gaps
// are never renumbered, only the ascending sort matters. A row-insert
// failure after a successful upload deletes the uploaded object again.
func (s *SlideshowService) CreateSlide(ctx context.Context, in *SlideshowInput, image *ImageUpload) (*models.Slideshow, error) {
	if in.Title == "" {
		return nil, validationErrorf("title is required")
	}
	if image == nil {
		return nil, validationErrorf("image is required")
	}

	count, err := s.slides.Count()
	if err != nil {
		return nil, err
	}

	key, url, err := s.uploader.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	slide := &models.Slideshow{
		Title:        in.Title,
		ImageURL:     url,
		DisplayOrder: count,
		IsActive:     true,
	}
	if in.Description != "" {
		slide.Description = &in.Description
	}
	if in.LinkURL != "" {
		slide.LinkURL = &in.LinkURL
	}

	if err := s.slides.Create(slide); err != nil {
		s.uploader.discard(ctx, key)
		return nil, err
	}
	return slide, nil
}

// SetActive gates public visibility without touching content.
func (s *SlideshowService) SetActive(id string, active bool) error {
	if _, err := s.slides.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrSlideshowNotFound
		}
		return err
	}
	return s.slides.SetActive(id, active)
}

// DeleteSlide removes a slide permanently.
func (s *SlideshowService) DeleteSlide(id string) error {
	if _, err := s.slides.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrSlideshowNotFound
		}
		return err
	}
	return s.slides.Delete(id)
}
