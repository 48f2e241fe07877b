package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/greenleaf/leaf_api/internal/models"
)

// SlideshowRepository handles data access for homepage slides.
type SlideshowRepository struct {
	db *sqlx.DB
}

// NewSlideshowRepository creates a new SlideshowRepository.
func NewSlideshowRepository(db *sqlx.DB) *SlideshowRepository {
	return &SlideshowRepository{db: db}
}

// ListAll returns every slide ordered by display_order. Gaps in the order
// are expected; only the ascending sort matters.
func (r *SlideshowRepository) ListAll() ([]models.Slideshow, error) {
	var slides []models.Slideshow
	if err := r.db.Select(&slides, `SELECT * FROM slideshows ORDER BY display_order`); err != nil {
		return nil, err
	}
	return slides, nil
}

// ListActive returns publicly visible slides in rotation order.
func (r *SlideshowRepository) ListActive() ([]models.Slideshow, error) {
	var slides []models.Slideshow
	if err := r.db.Select(&slides, `SELECT * FROM slideshows WHERE is_active = true ORDER BY display_order`); err != nil {
		return nil, err
	}
	return slides, nil
}

// Count returns the total number of slides.
func (r *SlideshowRepository) Count() (int, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(1) FROM slideshows`); err != nil {
		return 0, err
	}
	return n, nil
}

// GetByID returns one slide. sql.ErrNoRows passes through.
func (r *SlideshowRepository) GetByID(id string) (*models.Slideshow, error) {
	var s models.Slideshow
	if err := r.db.Get(&s, `SELECT * FROM slideshows WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new slide.
func (r *SlideshowRepository) Create(s *models.Slideshow) error {
	const q = `
        INSERT INTO slideshows (title, description, image_url, link_url, display_order, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.db.QueryRowx(q, s.Title, s.Description, s.ImageURL, s.LinkURL, s.DisplayOrder, s.IsActive).
		Scan(&s.ID, &s.CreatedAt)
}

// SetActive toggles public visibility independently of content edits.
func (r *SlideshowRepository) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`UPDATE slideshows SET is_active = $1 WHERE id = $2`, active, id)
	return err
}

// Delete removes a slide permanently. Remaining slides keep their
// display_order; gaps are never renumbered.
func (r *SlideshowRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM slideshows WHERE id = $1`, id)
	return err
}
