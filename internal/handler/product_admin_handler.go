package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/leaf_api/internal/service"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// ProductAdminHandler exposes the dashboard's product authoring and
// curation endpoints. Create and update accept multipart form data so an
// image can ride along with the fields; plain form or JSON bodies work too
// when there is no file.
type ProductAdminHandler struct {
	products *service.ProductAdminService
}

// NewProductAdminHandler constructs a ProductAdminHandler.
func NewProductAdminHandler(products *service.ProductAdminService) *ProductAdminHandler {
	return &ProductAdminHandler{products: products}
}

// readImageFile pulls the optional "image" upload out of a multipart body.
// Absent file is not an error.
func readImageFile(c *gin.Context) (*service.ImageUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &service.ImageUpload{Filename: fileHeader.Filename, Data: data}, nil
}

// writeProductError maps service failures to API responses.
func writeProductError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Error())
	case errors.Is(err, utils.ErrImageTooLarge):
		utils.Error(c, http.StatusBadRequest, "IMAGE_TOO_LARGE", "Image exceeds the maximum allowed size")
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrUploadFailed):
		utils.Error(c, http.StatusBadGateway, "UPLOAD_FAILED", "Image upload failed")
	default:
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

// ListProducts handles GET /admin/products: full inventory, newest first.
func (h *ProductAdminHandler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch products")
		return
	}
	utils.Success(c, http.StatusOK, "Products retrieved", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct handles POST /admin/products.
func (h *ProductAdminHandler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product payload")
		return
	}
	image, err := readImageFile(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid image upload")
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), &input, image)
	if err != nil {
		writeProductError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct handles PUT /admin/products/:id. Without a new file the
// stored image is retained.
func (h *ProductAdminHandler) UpdateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product payload")
		return
	}
	image, err := readImageFile(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid image upload")
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), &input, image)
	if err != nil {
		writeProductError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct handles DELETE /admin/products/:id.
func (h *ProductAdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Param("id")); err != nil {
		writeProductError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product deleted", nil)
}

// ListCuration handles GET /admin/featured: every product ordered by name
// with its current featured mark, the view the curation screen renders.
func (h *ProductAdminHandler) ListCuration(c *gin.Context) {
	products, err := h.products.ListForCuration()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch products")
		return
	}
	utils.Success(c, http.StatusOK, "Products retrieved", gin.H{
		"products": products,
		"count":    len(products),
	})
}

type featuredRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// SetFeatured handles PATCH /admin/featured/:id: flips one product's
// featured mark on or off.
func (h *ProductAdminHandler) SetFeatured(c *gin.Context) {
	var req featuredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "featured flag is required")
		return
	}

	if err := h.products.SetFeatured(c.Param("id"), *req.Featured); err != nil {
		writeProductError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Featured status updated", gin.H{
		"id":       c.Param("id"),
		"featured": *req.Featured,
	})
}
