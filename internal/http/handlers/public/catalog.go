package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/repository"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取公开商品列表（仅审核通过且可售）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	brandID, _ := strconv.ParseUint(c.Query("brand_id"), 10, 64)
	sellerID, _ := strconv.ParseUint(c.Query("seller_id"), 10, 64)
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		BrandID:    uint(brandID),
		SellerID:   uint(sellerID),
		Search:     search,
		WithSKUs:   true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取公开商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.CatalogService.GetProduct(uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, product)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, categories)
}

// GetBrands 获取品牌列表
func (h *Handler) GetBrands(c *gin.Context) {
	brands, err := h.CatalogService.ListBrands()
	if err != nil {
		respondError(c, response.CodeInternal, "brand list failed", err)
		return
	}
	response.Success(c, brands)
}

// GetActiveDeals 获取当前生效的活动（带缓存）
func (h *Handler) GetActiveDeals(c *gin.Context) {
	deals, err := h.PromotionService.ListActiveDeals(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "deal list failed", err)
		return
	}
	response.Success(c, gin.H{"deals": deals})
}
