// internal/handlers/taxonomy.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/services"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
	}
}

// GET /categories
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.taxonomyService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyCategoryList), categories)
}

// POST /categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.taxonomyService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyCategoryCreated), category)
}

// GET /brands
func (h *TaxonomyHandler) GetBrands(c *gin.Context) {
	brands, err := h.taxonomyService.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyBrandList), brands)
}

// POST /brands
func (h *TaxonomyHandler) CreateBrand(c *gin.Context) {
	var req services.CreateBrandRequest
	if !bindJSON(c, &req) {
		return
	}

	brand, err := h.taxonomyService.CreateBrand(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyBrandCreated), brand)
}
