package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// ProductStore is the full product data access surface the authoring
// workflow needs.
type ProductStore interface {
	ProductReader
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id string) error
	SetFeatured(id string, value bool) error
}

// ProductAdminService implements the admin authoring workflow: validated
// create/update with optional image upload, delete, and featured curation.
type ProductAdminService struct {
	products ProductStore
	uploader imageUploader
}

// NewProductAdminService constructs a ProductAdminService.
func NewProductAdminService(products ProductStore, images ImageBucket, maxImageBytes int64) *ProductAdminService {
	return &ProductAdminService{
		products: products,
		uploader: imageUploader{bucket: images, maxBytes: maxImageBytes},
	}
}

// ProductInput is the authoring form payload. Effects, aroma and flavor
// arrive as comma-separated free text, the way the form collects them.
type ProductInput struct {
	Name        string  `json:"name" form:"name"`
	Category    string  `json:"category" form:"category"`
	Description string  `json:"description" form:"description"`
	THC         float64 `json:"thc" form:"thc"`
	CBD         float64 `json:"cbd" form:"cbd"`
	Effects     string  `json:"effects" form:"effects"`
	Aroma       string  `json:"aroma" form:"aroma"`
	Flavor      string  `json:"flavor" form:"flavor"`
	IsNew       bool    `json:"is_new" form:"is_new"`
	IsPopular   bool    `json:"is_popular" form:"is_popular"`
}

// Validate applies the form rules in order and returns the first violated
// rule's message. Nothing touches the database before this passes.
func (in *ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationErrorf("name is required")
	}
	if utf8.RuneCountInString(in.Name) > 100 {
		return validationErrorf("name must be 100 characters or fewer")
	}
	if _, err := models.ParseCategory(in.Category); err != nil {
		return validationErrorf("category must be one of Indica, Sativa, Hybrid, Accessories")
	}
	if utf8.RuneCountInString(in.Description) < 10 {
		return validationErrorf("description must be at least 10 characters")
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		return validationErrorf("description must be 500 characters or fewer")
	}
	if in.THC < 0 || in.THC > 100 {
		return validationErrorf("thc must be between 0 and 100")
	}
	if in.CBD < 0 || in.CBD > 100 {
		return validationErrorf("cbd must be between 0 and 100")
	}
	for _, raw := range SplitList(in.Effects) {
		if _, err := models.ParseEffect(raw); err != nil {
			return validationErrorf("unknown effect %q", raw)
		}
	}
	return nil
}

// SplitList turns comma-separated free text into a trimmed list,
// discarding empty segments.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// apply copies the validated input onto a product row.
func (in *ProductInput) apply(p *models.Product) {
	category, _ := models.ParseCategory(in.Category)
	effects := make(models.EffectList, 0)
	for _, raw := range SplitList(in.Effects) {
		e, _ := models.ParseEffect(raw)
		effects = append(effects, e)
	}

	isNew, isPopular := in.IsNew, in.IsPopular

	p.Name = in.Name
	p.Category = category
	p.Description = in.Description
	p.THC = in.THC
	p.CBD = in.CBD
	p.Effects = effects
	p.Aroma = SplitList(in.Aroma)
	p.Flavor = SplitList(in.Flavor)
	p.IsNew = &isNew
	p.IsPopular = &isPopular
}

// CreateProduct validates the form, uploads the image if one was chosen,
// then inserts exactly one row. Without an image the product gets the
// category fallback asset instead of an error. A row-insert failure after
// a successful upload deletes the uploaded object again.
func (s *ProductAdminService) CreateProduct(ctx context.Context, in *ProductInput, image *ImageUpload) (*models.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product := &models.Product{}
	in.apply(product)

	var uploadedKey string
	if image != nil {
		key, url, err := s.uploader.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		uploadedKey = key
		product.ImageURL = &url
	} else {
		product.Image = product.Category.FallbackAsset()
	}

	if err := s.products.Create(product); err != nil {
		s.uploader.discard(ctx, uploadedKey)
		return nil, err
	}
	return product, nil
}

// UpdateProduct validates the form and rewrites one existing row. The
// stored image is retained when no new file is supplied.
func (s *ProductAdminService) UpdateProduct(ctx context.Context, id string, in *ProductInput, image *ImageUpload) (*models.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	in.apply(product)

	var uploadedKey string
	if image != nil {
		key, url, err := s.uploader.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		uploadedKey = key
		product.ImageURL = &url
	}

	if err := s.products.Update(product); err != nil {
		s.uploader.discard(ctx, uploadedKey)
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes one product permanently.
func (s *ProductAdminService) DeleteProduct(id string) error {
	if _, err := s.products.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return s.products.Delete(id)
}

// ListProducts returns the whole catalog for the admin list view,
// newest first.
func (s *ProductAdminService) ListProducts() ([]models.Product, error) {
	return s.products.List(nil, false)
}

// ListForCuration returns all products ordered by name, the order the
// featured curation view uses.
func (s *ProductAdminService) ListForCuration() ([]models.Product, error) {
	return s.products.List(nil, true)
}

// SetFeatured toggles a single product's featured flag.
func (s *ProductAdminService) SetFeatured(id string, featured bool) error {
	if _, err := s.products.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return s.products.SetFeatured(id, featured)
}
