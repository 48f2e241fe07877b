package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/repository"
	"github.com/greenleaf/leaf_api/internal/service"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// ProxyHandler exposes the thin REST surface consumed by external
// integrations: list/get are open, mutations require an Authorization
// header (presence only — access strength lives in the backing store's own
// rules). Wire shapes are fixed: {data, count} for lists, {data} for single
// records, {error} for failures, and any processing error is a 500 carrying
// the error's message.
type ProxyHandler struct {
	catalog  *service.CatalogService
	products service.ProductStore
}

// NewProxyHandler constructs a ProxyHandler.
func NewProxyHandler(catalog *service.CatalogService, products service.ProductStore) *ProxyHandler {
	return &ProxyHandler{catalog: catalog, products: products}
}

// proxyError writes the proxy's error shape.
func proxyError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ListProducts handles GET /products with optional category, is_new and
// is_popular filters. Always one round trip, newest first.
func (h *ProxyHandler) ListProducts(c *gin.Context) {
	filter := &repository.ProductFilter{Category: c.Query("category")}
	if v := c.Query("is_new"); v != "" {
		b := v == "true"
		filter.IsNew = &b
	}
	if v := c.Query("is_popular"); v != "" {
		b := v == "true"
		filter.IsPopular = &b
	}

	products, err := h.catalog.ListProducts(filter)
	if err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products, "count": len(products)})
}

// GetProduct handles GET /products/:id.
func (h *ProxyHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Param("id"))
	if err != nil {
		if err == utils.ErrProductNotFound {
			proxyError(c, http.StatusNotFound, "Product not found")
			return
		}
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// proxyProductPayload is the row-shaped body accepted by the mutating
// endpoints. Pointers distinguish absent fields on update.
type proxyProductPayload struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	THC         *float64 `json:"thc"`
	CBD         *float64 `json:"cbd"`
	Effects     []string `json:"effects"`
	Aroma       []string `json:"aroma"`
	Flavor      []string `json:"flavor"`
	Image       *string  `json:"image"`
	ImageURL    *string  `json:"image_url"`
	IsNew       *bool    `json:"is_new"`
	IsPopular   *bool    `json:"is_popular"`
	IsFeatured  *bool    `json:"is_featured"`
}

// overlay copies the provided fields onto a product row. Enum fields go
// through the closed-set parsers, so unrecognized values error out instead
// of being stored.
func (p *proxyProductPayload) overlay(product *models.Product) error {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		category, err := models.ParseCategory(*p.Category)
		if err != nil {
			return err
		}
		product.Category = category
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.THC != nil {
		product.THC = *p.THC
	}
	if p.CBD != nil {
		product.CBD = *p.CBD
	}
	if p.Effects != nil {
		effects := make(models.EffectList, 0, len(p.Effects))
		for _, raw := range p.Effects {
			e, err := models.ParseEffect(raw)
			if err != nil {
				return err
			}
			effects = append(effects, e)
		}
		product.Effects = effects
	}
	if p.Aroma != nil {
		product.Aroma = pq.StringArray(p.Aroma)
	}
	if p.Flavor != nil {
		product.Flavor = pq.StringArray(p.Flavor)
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.ImageURL != nil {
		product.ImageURL = p.ImageURL
	}
	if p.IsNew != nil {
		product.IsNew = p.IsNew
	}
	if p.IsPopular != nil {
		product.IsPopular = p.IsPopular
	}
	if p.IsFeatured != nil {
		product.IsFeatured = p.IsFeatured
	}
	return nil
}

// CreateProduct handles POST /products: inserts one record from the body.
func (h *ProxyHandler) CreateProduct(c *gin.Context) {
	var payload proxyProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}

	product := &models.Product{}
	if err := payload.overlay(product); err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.products.Create(product); err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": product})
}

// UpdateProduct handles PUT /products/:id: overlays the body onto the
// stored record.
func (h *ProxyHandler) UpdateProduct(c *gin.Context) {
	var payload proxyProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}

	product, err := h.catalog.GetProduct(c.Param("id"))
	if err != nil {
		if err == utils.ErrProductNotFound {
			proxyError(c, http.StatusNotFound, "Product not found")
			return
		}
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := payload.overlay(product); err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.products.Update(product); err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// DeleteProduct handles DELETE /products/:id.
func (h *ProxyHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Param("id")); err != nil {
		proxyError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
