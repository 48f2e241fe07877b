package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/repository"
	"github.com/greenleaf/leaf_api/internal/utils"
)

type fakeProductReader struct {
	products []models.Product
	err      error
}

func (f *fakeProductReader) List(filter *repository.ProductFilter, orderByName bool) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeProductReader) GetByID(id string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func catalogFixture() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Purple Kush", Category: models.CategoryIndica, Description: "A classic indica strain for evening use."},
		{ID: "2", Name: "Green Crack", Category: models.CategorySativa, Description: "An energizing sativa for daytime focus."},
		{ID: "3", Name: "Blue Dream", Category: models.CategoryHybrid, Description: "A balanced hybrid with gentle invigoration."},
		{ID: "4", Name: "Granddaddy Purple", Category: models.CategoryIndica, Description: "A potent indica with purple buds."},
	}
}

func TestGetProductMapsNotFound(t *testing.T) {
	svc := NewCatalogService(&fakeProductReader{products: catalogFixture()})

	p, err := svc.GetProduct("2")
	require.NoError(t, err)
	assert.Equal(t, "Green Crack", p.Name)

	_, err = svc.GetProduct("missing")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestGetProductPassesThroughOtherErrors(t *testing.T) {
	svc := NewCatalogService(&fakeProductReader{err: errors.New("connection reset")})

	_, err := svc.GetProduct("1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrProductNotFound)
}

func TestFilterProductsByCategory(t *testing.T) {
	list := catalogFixture()

	got := FilterProducts(list, "Indica", "")
	require.Len(t, got, 2)
	assert.Equal(t, "Purple Kush", got[0].Name)
	assert.Equal(t, "Granddaddy Purple", got[1].Name)

	assert.Len(t, FilterProducts(list, CategoryAll, ""), 4)
	assert.Len(t, FilterProducts(list, "", ""), 4)
	assert.Empty(t, FilterProducts(list, "Accessories", ""))
}

func TestFilterProductsByQuery(t *testing.T) {
	list := catalogFixture()

	got := FilterProducts(list, CategoryAll, "purple")
	require.Len(t, got, 2, "matches name case-insensitively and description")

	got = FilterProducts(list, CategoryAll, "ENERGIZING")
	require.Len(t, got, 1, "description text matches too")
	assert.Equal(t, "Green Crack", got[0].Name)

	got = FilterProducts(list, CategoryAll, "  blue ")
	require.Len(t, got, 1, "query is trimmed before matching")
	assert.Equal(t, "Blue Dream", got[0].Name)

	assert.Empty(t, FilterProducts(list, CategoryAll, "zzz"))
}

func TestFilterProductsCombinesBothConditions(t *testing.T) {
	list := catalogFixture()

	got := FilterProducts(list, "Indica", "purple")
	require.Len(t, got, 2)

	got = FilterProducts(list, "Sativa", "purple")
	assert.Empty(t, got, "both conditions must hold")
}

func TestFilterProductsPreservesOrderAndSource(t *testing.T) {
	list := catalogFixture()

	got := FilterProducts(list, CategoryAll, "a")
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].ID < got[i].ID, "source order preserved")
	}

	require.Len(t, list, 4, "source list untouched")
}
