package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/repository"
	"github.com/greenleaf/leaf_api/internal/utils"
)

type fakeProductStore struct {
	byID      map[string]*models.Product
	created   []*models.Product
	updated   []*models.Product
	deleted   []string
	createErr error
	updateErr error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{byID: make(map[string]*models.Product)}
}

func (f *fakeProductStore) List(filter *repository.ProductFilter, orderByName bool) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) GetByID(id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) Create(p *models.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("p-%d", len(f.created)+1)
	f.created = append(f.created, p)
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductStore) Update(p *models.Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, p)
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductStore) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func (f *fakeProductStore) SetFeatured(id string, value bool) error {
	p, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.IsFeatured = &value
	return nil
}

type fakeBucket struct {
	uploads   []string
	deletes   []string
	uploadErr error
}

func (f *fakeBucket) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeBucket) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func validInput() *ProductInput {
	return &ProductInput{
		Name:        "Purple Kush",
		Category:    "Indica",
		Description: "A classic indica strain for evening use.",
		THC:         22,
		CBD:         0.5,
		Effects:     "Relaxing, Sleepy",
		Aroma:       "Earthy, Sweet",
		Flavor:      "Grape, Berry",
	}
}

func TestProductInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr string
	}{
		{"valid", func(in *ProductInput) {}, ""},
		{"empty name", func(in *ProductInput) { in.Name = "  " }, "name is required"},
		{"name too long", func(in *ProductInput) { in.Name = strings.Repeat("x", 101) }, "100 characters"},
		{"name at limit", func(in *ProductInput) { in.Name = strings.Repeat("x", 100) }, ""},
		{"bad category", func(in *ProductInput) { in.Category = "Vape" }, "category"},
		{"description too short", func(in *ProductInput) { in.Description = strings.Repeat("x", 9) }, "at least 10"},
		{"description at lower bound", func(in *ProductInput) { in.Description = strings.Repeat("x", 10) }, ""},
		{"description too long", func(in *ProductInput) { in.Description = strings.Repeat("x", 501) }, "500 characters"},
		{"description at upper bound", func(in *ProductInput) { in.Description = strings.Repeat("x", 500) }, ""},
		{"thc negative", func(in *ProductInput) { in.THC = -0.1 }, "thc"},
		{"thc above 100", func(in *ProductInput) { in.THC = 100.1 }, "thc"},
		{"thc at bounds", func(in *ProductInput) { in.THC = 100 }, ""},
		{"cbd negative", func(in *ProductInput) { in.CBD = -1 }, "cbd"},
		{"unknown effect", func(in *ProductInput) { in.Effects = "Relaxing, Euphoric" }, "effect"},
		{"empty effects ok", func(in *ProductInput) { in.Effects = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			err := in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsFirstFailingRule(t *testing.T) {
	in := validInput()
	in.Name = ""
	in.Category = "Vape"
	in.THC = 200

	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name", "rules run in order, first failure wins")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a, b ,c"))
	assert.Equal(t, []string{"a"}, SplitList("a,,  ,"))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList(" , "))
}

func TestCreateProductWithoutImageUsesFallbackAsset(t *testing.T) {
	store := newFakeProductStore()
	bucket := &fakeBucket{}
	svc := NewProductAdminService(store, bucket, 1<<20)

	p, err := svc.CreateProduct(context.Background(), validInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, "indica", p.Image)
	assert.Nil(t, p.ImageURL)
	assert.Empty(t, bucket.uploads)
	require.Len(t, store.created, 1)

	in := validInput()
	in.Category = "Hybrid"
	p, err = svc.CreateProduct(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", p.Image, "fallback follows the chosen category")
}

func TestCreateProductUploadsThenInserts(t *testing.T) {
	store := newFakeProductStore()
	bucket := &fakeBucket{}
	svc := NewProductAdminService(store, bucket, 1<<20)

	image := &ImageUpload{Filename: "bud.png", Data: []byte("img")}
	p, err := svc.CreateProduct(context.Background(), validInput(), image)
	require.NoError(t, err)

	require.Len(t, bucket.uploads, 1)
	assert.True(t, strings.HasSuffix(bucket.uploads[0], ".png"), "random key keeps the extension")
	require.NotNil(t, p.ImageURL)
	assert.Contains(t, *p.ImageURL, bucket.uploads[0])
	require.NotNil(t, p.IsNew)
	assert.False(t, *p.IsNew, "unchecked flags are stored as explicit false")
}

func TestCreateProductInsertFailureDiscardsUpload(t *testing.T) {
	store := newFakeProductStore()
	store.createErr = errors.New("insert failed")
	bucket := &fakeBucket{}
	svc := NewProductAdminService(store, bucket, 1<<20)

	image := &ImageUpload{Filename: "bud.jpg", Data: []byte("img")}
	_, err := svc.CreateProduct(context.Background(), validInput(), image)
	require.Error(t, err)

	require.Len(t, bucket.uploads, 1)
	assert.Equal(t, bucket.uploads, bucket.deletes, "orphaned object is removed")
}

func TestCreateProductRejectsOversizedImage(t *testing.T) {
	store := newFakeProductStore()
	bucket := &fakeBucket{}
	svc := NewProductAdminService(store, bucket, 4)

	image := &ImageUpload{Filename: "bud.jpg", Data: []byte("too big")}
	_, err := svc.CreateProduct(context.Background(), validInput(), image)
	assert.ErrorIs(t, err, utils.ErrImageTooLarge)
	assert.Empty(t, store.created, "nothing reaches the store")
	assert.Empty(t, bucket.uploads)
}

func TestCreateProductValidationStopsBeforeUpload(t *testing.T) {
	store := newFakeProductStore()
	bucket := &fakeBucket{}
	svc := NewProductAdminService(store, bucket, 1<<20)

	in := validInput()
	in.Description = "short"
	_, err := svc.CreateProduct(context.Background(), in, &ImageUpload{Filename: "a.jpg", Data: []byte("x")})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, bucket.uploads)
	assert.Empty(t, store.created)
}

func TestUpdateProductRetainsImageWithoutNewFile(t *testing.T) {
	store := newFakeProductStore()
	url := "https://cdn.example.com/old.jpg"
	store.byID["p-1"] = &models.Product{ID: "p-1", Name: "Old", Category: models.CategoryIndica, ImageURL: &url}
	svc := NewProductAdminService(store, &fakeBucket{}, 1<<20)

	p, err := svc.UpdateProduct(context.Background(), "p-1", validInput(), nil)
	require.NoError(t, err)
	require.NotNil(t, p.ImageURL)
	assert.Equal(t, url, *p.ImageURL)
	assert.Equal(t, "Purple Kush", p.Name)
}

func TestUpdateProductReplacesImage(t *testing.T) {
	store := newFakeProductStore()
	url := "https://cdn.example.com/old.jpg"
	store.byID["p-1"] = &models.Product{ID: "p-1", Name: "Old", Category: models.CategoryIndica, ImageURL: &url}
	bucket := &fakeBucket{}
	svc := NewProductAdminService(store, bucket, 1<<20)

	p, err := svc.UpdateProduct(context.Background(), "p-1", validInput(), &ImageUpload{Filename: "new.webp", Data: []byte("x")})
	require.NoError(t, err)
	require.Len(t, bucket.uploads, 1)
	assert.NotEqual(t, url, *p.ImageURL)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := NewProductAdminService(newFakeProductStore(), &fakeBucket{}, 1<<20)

	_, err := svc.UpdateProduct(context.Background(), "missing", validInput(), nil)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductAdminService(store, &fakeBucket{}, 1<<20)

	err := svc.DeleteProduct("missing")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	store.byID["p-1"] = &models.Product{ID: "p-1"}
	require.NoError(t, svc.DeleteProduct("p-1"))
	assert.Equal(t, []string{"p-1"}, store.deleted)
}

func TestSetFeatured(t *testing.T) {
	store := newFakeProductStore()
	store.byID["p-1"] = &models.Product{ID: "p-1"}
	svc := NewProductAdminService(store, &fakeBucket{}, 1<<20)

	require.NoError(t, svc.SetFeatured("p-1", true))
	assert.True(t, models.Flag(store.byID["p-1"].IsFeatured))

	require.NoError(t, svc.SetFeatured("p-1", false))
	assert.False(t, models.Flag(store.byID["p-1"].IsFeatured))

	assert.ErrorIs(t, svc.SetFeatured("missing", true), utils.ErrProductNotFound)
}
