package admin

import (
	"strings"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/models"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// GetAdminCategories 后台分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryRepo.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category := &models.Category{
		Slug:      strings.TrimSpace(req.Slug),
		Name:      strings.TrimSpace(req.Name),
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryRepo.Create(category); err != nil {
		respondError(c, response.CodeInternal, "category create failed", err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parsePathID(c)
	if !ok {
		return
	}
	category, err := h.CategoryRepo.GetByID(categoryID)
	if err != nil {
		respondError(c, response.CodeInternal, "category query failed", err)
		return
	}
	if category == nil {
		respondError(c, response.CodeNotFound, "category not found", nil)
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category.Slug = strings.TrimSpace(req.Slug)
	category.Name = strings.TrimSpace(req.Name)
	category.ParentID = req.ParentID
	category.SortOrder = req.SortOrder
	if err := h.CategoryRepo.Update(category); err != nil {
		respondError(c, response.CodeInternal, "category update failed", err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parsePathID(c)
	if !ok {
		return
	}
	if err := h.CategoryRepo.Delete(categoryID); err != nil {
		respondError(c, response.CodeInternal, "category delete failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// BrandRequest 品牌创建/更新请求
type BrandRequest struct {
	Name string `json:"name" binding:"required"`
	Logo string `json:"logo"`
}

// GetAdminBrands 后台品牌列表
func (h *Handler) GetAdminBrands(c *gin.Context) {
	brands, err := h.BrandRepo.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "brand list failed", err)
		return
	}
	response.Success(c, brands)
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	brand := &models.Brand{
		Name: strings.TrimSpace(req.Name),
		Logo: strings.TrimSpace(req.Logo),
	}
	if err := h.BrandRepo.Create(brand); err != nil {
		respondError(c, response.CodeInternal, "brand create failed", err)
		return
	}
	response.Success(c, brand)
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	brandID, ok := parsePathID(c)
	if !ok {
		return
	}
	brand, err := h.BrandRepo.GetByID(brandID)
	if err != nil {
		respondError(c, response.CodeInternal, "brand query failed", err)
		return
	}
	if brand == nil {
		respondError(c, response.CodeNotFound, "brand not found", nil)
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	brand.Name = strings.TrimSpace(req.Name)
	brand.Logo = strings.TrimSpace(req.Logo)
	if err := h.BrandRepo.Update(brand); err != nil {
		respondError(c, response.CodeInternal, "brand update failed", err)
		return
	}
	response.Success(c, brand)
}

// DeleteBrand 删除品牌
func (h *Handler) DeleteBrand(c *gin.Context) {
	brandID, ok := parsePathID(c)
	if !ok {
		return
	}
	if err := h.BrandRepo.Delete(brandID); err != nil {
		respondError(c, response.CodeInternal, "brand delete failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
