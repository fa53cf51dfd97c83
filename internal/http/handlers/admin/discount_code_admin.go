package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DiscountCodeRequest 创建/更新折扣码请求
type DiscountCodeRequest struct {
	Code            string   `json:"code" binding:"required"`
	Description     string   `json:"description"`
	DiscountPercent *float64 `json:"discount_percent"`
	DiscountAmount  *float64 `json:"discount_amount"`
	MinOrderAmount  float64  `json:"min_order_amount"`
	MaxUses         *int     `json:"max_uses"`
	StartAt         string   `json:"start_at" binding:"required"`
	EndAt           string   `json:"end_at" binding:"required"`
}

func (r *DiscountCodeRequest) toInput(adminID uint) (service.DiscountCodeInput, error) {
	startAt, err := parseTime(r.StartAt)
	if err != nil {
		return service.DiscountCodeInput{}, err
	}
	endAt, err := parseTime(r.EndAt)
	if err != nil {
		return service.DiscountCodeInput{}, err
	}

	input := service.DiscountCodeInput{
		Code:           r.Code,
		Description:    r.Description,
		MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinOrderAmount)),
		MaxUses:        r.MaxUses,
		StartAt:        startAt,
		EndAt:          endAt,
		CreatedByID:    adminID,
	}
	if r.DiscountPercent != nil {
		percent := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.DiscountPercent))
		input.DiscountPercent = &percent
	}
	if r.DiscountAmount != nil {
		amount := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.DiscountAmount))
		input.DiscountAmount = &amount
	}
	return input, nil
}

func respondDiscountCodeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDiscountCodeNotFound):
		respondError(c, response.CodeNotFound, "discount code not found", nil)
	case errors.Is(err, service.ErrDiscountValueInvalid):
		respondError(c, response.CodeBadRequest, "exactly one of percent or amount must be set", nil)
	case errors.Is(err, service.ErrDiscountCodeExists):
		respondError(c, response.CodeConflict, "discount code already exists", nil)
	case errors.Is(err, service.ErrPromotionWindowInvalid):
		respondError(c, response.CodeBadRequest, "start must be before end", nil)
	default:
		respondError(c, response.CodeInternal, "discount code operation failed", err)
	}
}

// CreateDiscountCode 创建折扣码
func (h *Handler) CreateDiscountCode(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req DiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput(adminID)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}
	code, err := h.DiscountCodeAdminService.Create(input)
	if err != nil {
		respondDiscountCodeAdminError(c, err)
		return
	}
	response.Success(c, code)
}

// UpdateDiscountCode 更新折扣码
func (h *Handler) UpdateDiscountCode(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	codeID, ok := parsePathID(c)
	if !ok {
		return
	}
	var req DiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput(adminID)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}
	code, err := h.DiscountCodeAdminService.Update(codeID, input)
	if err != nil {
		respondDiscountCodeAdminError(c, err)
		return
	}
	response.Success(c, code)
}

// DeleteDiscountCode 删除折扣码
func (h *Handler) DeleteDiscountCode(c *gin.Context) {
	codeID, ok := parsePathID(c)
	if !ok {
		return
	}
	if err := h.DiscountCodeAdminService.Delete(codeID); err != nil {
		respondDiscountCodeAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetDiscountCode 获取折扣码详情
func (h *Handler) GetDiscountCode(c *gin.Context) {
	codeID, ok := parsePathID(c)
	if !ok {
		return
	}
	code, err := h.DiscountCodeAdminService.Get(codeID)
	if err != nil {
		respondDiscountCodeAdminError(c, err)
		return
	}
	response.Success(c, code)
}

// GetDiscountCodes 获取折扣码列表
func (h *Handler) GetDiscountCodes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.DiscountCodeListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	}

	codes, total, err := h.DiscountCodeAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "discount code list failed", err)
		return
	}
	response.SuccessWithPage(c, codes, response.NewPagination(page, pageSize, total))
}
