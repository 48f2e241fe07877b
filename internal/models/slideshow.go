package models

import "time"

// Slideshow represents one homepage promotional slide.
type Slideshow struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description,omitempty"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	LinkURL      *string   `db:"link_url" json:"link_url,omitempty"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
