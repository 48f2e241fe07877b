package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/greenleaf/leaf_api/internal/models"
)

// ProductRepository handles data access for catalog products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter holds optional list filters. Nil/empty fields are ignored.
type ProductFilter struct {
	Category  string
	IsNew     *bool
	IsPopular *bool
}

// List returns products matching the filter in a single round trip.
// Default order is newest first; orderByName switches to name ascending
// (used by the category listing page).
func (r *ProductRepository) List(filter *ProductFilter, orderByName bool) ([]models.Product, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.Category != "" {
			where += fmt.Sprintf(" AND category = $%d", argIdx)
			args = append(args, filter.Category)
			argIdx++
		}
		if filter.IsNew != nil {
			where += fmt.Sprintf(" AND COALESCE(is_new, false) = $%d", argIdx)
			args = append(args, *filter.IsNew)
			argIdx++
		}
		if filter.IsPopular != nil {
			where += fmt.Sprintf(" AND COALESCE(is_popular, false) = $%d", argIdx)
			args = append(args, *filter.IsPopular)
			argIdx++
		}
	}

	order := ` ORDER BY created_at DESC`
	if orderByName {
		order = ` ORDER BY name ASC`
	}

	var products []models.Product
	if err := r.db.Select(&products, `SELECT * FROM products `+where+order, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id. sql.ErrNoRows passes through.
func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.Get(&p, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product. The backend assigns the identifier.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products (name, category, description, thc, cbd, effects, aroma, flavor, image, image_url, is_new, is_popular, is_featured)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, created_at`

	return r.db.QueryRowx(q,
		p.Name,
		p.Category,
		p.Description,
		p.THC,
		p.CBD,
		p.Effects,
		p.Aroma,
		p.Flavor,
		p.Image,
		p.ImageURL,
		p.IsNew,
		p.IsPopular,
		p.IsFeatured,
	).Scan(&p.ID, &p.CreatedAt)
}

// Update rewrites all mutable fields of an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
        UPDATE products
        SET name = $1, category = $2, description = $3, thc = $4, cbd = $5,
            effects = $6, aroma = $7, flavor = $8, image = $9, image_url = $10,
            is_new = $11, is_popular = $12, is_featured = $13
        WHERE id = $14`

	_, err := r.db.Exec(q,
		p.Name,
		p.Category,
		p.Description,
		p.THC,
		p.CBD,
		p.Effects,
		p.Aroma,
		p.Flavor,
		p.Image,
		p.ImageURL,
		p.IsNew,
		p.IsPopular,
		p.IsFeatured,
		p.ID,
	)
	return err
}

// Delete removes a product permanently.
func (r *ProductRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	return err
}

// DeleteMany removes a set of products in one batch call.
func (r *ProductRepository) DeleteMany(ids []string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

// SetFlagMany sets one boolean flag across a set of products in one batch
// call. The flag names a column, so it is validated against the known set.
func (r *ProductRepository) SetFlagMany(ids []string, flag models.ProductFlag, value bool) error {
	if !flag.Valid() {
		return fmt.Errorf("unknown product flag %q", flag)
	}
	q := fmt.Sprintf(`UPDATE products SET %s = $1 WHERE id = ANY($2)`, flag)
	_, err := r.db.Exec(q, value, pq.Array(ids))
	return err
}

// SetFeatured toggles the featured flag of one product.
func (r *ProductRepository) SetFeatured(id string, value bool) error {
	_, err := r.db.Exec(`UPDATE products SET is_featured = $1 WHERE id = $2`, value, id)
	return err
}
