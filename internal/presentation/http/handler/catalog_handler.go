package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jkorir-dev/duka-pos/internal/application/service"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/request"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog-related HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles GET /catalog
func (h *CatalogHandler) List(c *gin.Context) {
	response.OK(c, "Catalog retrieved successfully", h.catalogService.ListAll())
}

// Get handles GET /catalog/:name
func (h *CatalogHandler) Get(c *gin.Context) {
	entry, err := h.catalogService.Search(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item retrieved successfully", entry)
}

// GetByBarcode handles GET /catalog/barcode/:code
func (h *CatalogHandler) GetByBarcode(c *gin.Context) {
	name, ok := h.catalogService.FindByBarcode(c.Param("code"))
	if !ok {
		response.NotFound(c, "Barcode not found")
		return
	}

	entry, err := h.catalogService.Search(name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item retrieved successfully", entry)
}

// Upsert handles PUT /catalog (admin only)
func (h *CatalogHandler) Upsert(c *gin.Context) {
	var req request.UpsertItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid item payload")
		return
	}

	err := h.catalogService.UpsertItem(&service.UpsertItemInput{
		Name:             req.Name,
		Price:            req.Price,
		Stock:            req.Stock,
		Barcode:          req.Barcode,
		ConfirmOverwrite: req.ConfirmOverwrite,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock updated for "+req.Name, nil)
}

// Save handles POST /catalog/save (admin only)
func (h *CatalogHandler) Save(c *gin.Context) {
	if err := h.catalogService.Save(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog saved successfully", nil)
}

// Reload handles POST /catalog/reload (admin only)
func (h *CatalogHandler) Reload(c *gin.Context) {
	if err := h.catalogService.Reload(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog reloaded", h.catalogService.ListAll())
}
