package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Category enumerates the closed set of product categories.
type Category string

const (
	CategoryIndica      Category = "Indica"
	CategorySativa      Category = "Sativa"
	CategoryHybrid      Category = "Hybrid"
	CategoryAccessories Category = "Accessories"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryIndica, CategorySativa, CategoryHybrid, CategoryAccessories}

// ParseCategory validates a raw category string against the closed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Scan rejects stored rows carrying a category outside the closed set rather
// than trusting the stored string.
func (c *Category) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", src)
	}
	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer.
func (c Category) Value() (driver.Value, error) {
	if _, err := ParseCategory(string(c)); err != nil {
		return nil, err
	}
	return string(c), nil
}

// FallbackAsset returns the bundled asset key used when a product has no
// uploaded image.
func (c Category) FallbackAsset() string {
	return strings.ToLower(string(c))
}

// Effect enumerates the closed set of product effects.
type Effect string

const (
	EffectRelaxing   Effect = "Relaxing"
	EffectEnergizing Effect = "Energizing"
	EffectCreative   Effect = "Creative"
	EffectFocused    Effect = "Focused"
	EffectUplifting  Effect = "Uplifting"
	EffectSleepy     Effect = "Sleepy"
)

// Effects lists every valid effect.
var Effects = []Effect{EffectRelaxing, EffectEnergizing, EffectCreative, EffectFocused, EffectUplifting, EffectSleepy}

// ParseEffect validates a raw effect string against the closed set.
func ParseEffect(s string) (Effect, error) {
	for _, e := range Effects {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown effect %q", s)
}

// EffectList is an ordered list of effects stored as a text[] column.
type EffectList []Effect

// Scan validates every stored element; an unknown effect is a data error,
// not a valid state.
func (e *EffectList) Scan(src interface{}) error {
	var raw pq.StringArray
	if err := raw.Scan(src); err != nil {
		return err
	}
	out := make(EffectList, 0, len(raw))
	for _, s := range raw {
		parsed, err := ParseEffect(s)
		if err != nil {
			return err
		}
		out = append(out, parsed)
	}
	*e = out
	return nil
}

// Value implements driver.Valuer.
func (e EffectList) Value() (driver.Value, error) {
	arr := make(pq.StringArray, len(e))
	for i, eff := range e {
		if _, err := ParseEffect(string(eff)); err != nil {
			return nil, err
		}
		arr[i] = string(eff)
	}
	return arr.Value()
}

// ProductFlag names a toggleable boolean product attribute. Used as a column
// reference in bulk updates, so only the known flags are accepted.
type ProductFlag string

const (
	FlagNew      ProductFlag = "is_new"
	FlagPopular  ProductFlag = "is_popular"
	FlagFeatured ProductFlag = "is_featured"
)

// Valid reports whether the flag names a known column.
func (f ProductFlag) Valid() bool {
	return f == FlagNew || f == FlagPopular || f == FlagFeatured
}

// Product represents a catalog item.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Category    Category       `db:"category" json:"category"`
	Description string         `db:"description" json:"description"`
	THC         float64        `db:"thc" json:"thc"`
	CBD         float64        `db:"cbd" json:"cbd"`
	Effects     EffectList     `db:"effects" json:"effects"`
	Aroma       pq.StringArray `db:"aroma" json:"aroma"`
	Flavor      pq.StringArray `db:"flavor" json:"flavor"`
	Image       string         `db:"image" json:"image,omitempty"`
	ImageURL    *string        `db:"image_url" json:"image_url,omitempty"`
	IsNew       *bool          `db:"is_new" json:"is_new,omitempty"`
	IsPopular   *bool          `db:"is_popular" json:"is_popular,omitempty"`
	IsFeatured  *bool          `db:"is_featured" json:"is_featured,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// DisplayImage resolves the image shown for the product: a hosted URL takes
// precedence over the static asset key, and a missing image falls back to
// the category default asset.
func (p *Product) DisplayImage() string {
	if p.ImageURL != nil && *p.ImageURL != "" {
		return *p.ImageURL
	}
	if p.Image != "" {
		return p.Image
	}
	return p.Category.FallbackAsset()
}

// Flag interprets a nullable boolean column: absent means false.
func Flag(v *bool) bool {
	return v != nil && *v
}
