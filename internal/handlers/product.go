// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/services"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

func (h *ProductHandler) page(c *gin.Context, key string, page *services.ProductPage) {
	utils.SetPaginationHeaders(c, page.Pagination)
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), key), page)
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var params catalog.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	page, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.page(c, i18n.KeyProductListFetched, page)
}

// GET /products/new-arrivals
func (h *ProductHandler) GetNewArrivals(c *gin.Context) {
	products, err := h.productService.NewArrivals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductNewArrivals), products)
}

// GET /products/top-selling
func (h *ProductHandler) GetTopSelling(c *gin.Context) {
	products, err := h.productService.TopSelling(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductTopSelling), products)
}

// GET /products/top-discounted
func (h *ProductHandler) GetTopDiscounted(c *gin.Context) {
	products, err := h.productService.TopDiscounted(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductTopDiscounted), products)
}

// GET /products/search?keyword=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.productService.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductSearchFetched), products)
}

// GET /products/by-gender/:gender
func (h *ProductHandler) GetByGender(c *gin.Context) {
	page, err := h.productService.ByGender(c.Request.Context(), c.Param("gender"), c.Query("page"), c.Query("size"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.page(c, i18n.KeyProductByGender, page)
}

// GET /products/by-size/:size
func (h *ProductHandler) GetBySize(c *gin.Context) {
	page, err := h.productService.BySize(c.Request.Context(), c.Param("size"), c.Query("page"), c.Query("size"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.page(c, i18n.KeyProductBySize, page)
}

// GET /products/colors
func (h *ProductHandler) GetColors(c *gin.Context) {
	colors, err := h.productService.Colors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductColors), colors)
}

// GET /products/sizes
func (h *ProductHandler) GetSizes(c *gin.Context) {
	sizes, err := h.productService.Sizes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductSizes), sizes)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductFetched), product)
}

// GET /products/:id/variants
func (h *ProductHandler) GetVariants(c *gin.Context) {
	variants, err := h.productService.Variants(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductVariants), variants)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductCreated), product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductUpdated), product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductDeleted), nil)
}

// POST /products/upload-images
func (h *ProductHandler) UploadProductImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		files = form.File["images[]"]
	}
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileNoneUploaded), nil)
		return
	}

	// The first file that fails aborts the request.
	uploaded := make([]*services.UploadResult, 0, len(files))
	for _, fileHeader := range files {
		result, err := h.storageService.UploadImage(c.Request.Context(), fileHeader, services.ProductImageUpload)
		if err != nil {
			respondError(c, err)
			return
		}
		uploaded = append(uploaded, result)
	}

	utils.SuccessResponse(c, i18n.T(lang, i18n.KeyFileUploadSuccess), gin.H{
		"images": uploaded,
	})
}
