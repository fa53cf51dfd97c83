package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/repository"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

func respondProductAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrVerificationStatusInvalid):
		respondError(c, response.CodeBadRequest, "verification status must be approved or rejected", nil)
	default:
		respondError(c, response.CodeInternal, "product operation failed", err)
	}
}

// GetAdminProducts 后台商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:               page,
		PageSize:           pageSize,
		Search:             strings.TrimSpace(c.Query("search")),
		VerificationStatus: strings.TrimSpace(c.Query("verification_status")),
		WithSKUs:           true,
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.Query("seller_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.SellerID = uint(id)
		}
	}

	products, total, err := h.CatalogAdminService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct 后台商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	productID, ok := parsePathID(c)
	if !ok {
		return
	}
	product, err := h.CatalogAdminService.GetProduct(productID)
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// VerifyProductRequest 商品审核请求
type VerifyProductRequest struct {
	Status string `json:"status" binding:"required"`
}

// VerifyProduct 审核商品
func (h *Handler) VerifyProduct(c *gin.Context) {
	productID, ok := parsePathID(c)
	if !ok {
		return
	}
	var req VerifyProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.CatalogAdminService.VerifyProduct(productID, req.Status)
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, product)
}

// SetProductActiveRequest 上下架请求
type SetProductActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetProductActive 上架/下架商品
func (h *Handler) SetProductActive(c *gin.Context) {
	productID, ok := parsePathID(c)
	if !ok {
		return
	}
	var req SetProductActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.CatalogAdminService.SetProductActive(productID, *req.Active)
	if err != nil {
		respondProductAdminError(c, err)
		return
	}
	response.Success(c, product)
}
