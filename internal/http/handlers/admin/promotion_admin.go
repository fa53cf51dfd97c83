package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PromotionTargetRequest 活动目标请求
type PromotionTargetRequest struct {
	TargetType string `json:"target_type" binding:"required"`
	TargetID   uint   `json:"target_id" binding:"required"`
}

// PromotionRequest 创建/更新活动请求
type PromotionRequest struct {
	Name            string                   `json:"name" binding:"required"`
	PromotionType   string                   `json:"promotion_type" binding:"required"`
	Description     string                   `json:"description"`
	DiscountPercent float64                  `json:"discount_percent" binding:"required"`
	Priority        int                      `json:"priority"`
	StartAt         string                   `json:"start_at" binding:"required"`
	EndAt           string                   `json:"end_at" binding:"required"`
	MinOrderAmount  float64                  `json:"min_order_amount"`
	MaxDiscountCap  *float64                 `json:"max_discount_cap"`
	MaxTotalBurn    *float64                 `json:"max_total_burn"`
	MaxUses         *int                     `json:"max_uses"`
	MaxUsesPerUser  int                      `json:"max_uses_per_user"`
	Targets         []PromotionTargetRequest `json:"targets" binding:"required"`
}

func (r *PromotionRequest) toInput(adminID uint) (service.PromotionInput, error) {
	startAt, err := parseTime(r.StartAt)
	if err != nil {
		return service.PromotionInput{}, err
	}
	endAt, err := parseTime(r.EndAt)
	if err != nil {
		return service.PromotionInput{}, err
	}

	input := service.PromotionInput{
		Name:            r.Name,
		PromotionType:   r.PromotionType,
		Description:     r.Description,
		DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.DiscountPercent)),
		Priority:        r.Priority,
		StartAt:         startAt,
		EndAt:           endAt,
		MinOrderAmount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinOrderAmount)),
		MaxUses:         r.MaxUses,
		MaxUsesPerUser:  r.MaxUsesPerUser,
		CreatedByID:     adminID,
	}
	if r.MaxDiscountCap != nil {
		cap := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.MaxDiscountCap))
		input.MaxDiscountCap = &cap
	}
	if r.MaxTotalBurn != nil {
		burn := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.MaxTotalBurn))
		input.MaxTotalBurn = &burn
	}
	for _, target := range r.Targets {
		input.Targets = append(input.Targets, service.PromotionTargetInput{
			TargetType: target.TargetType,
			TargetID:   target.TargetID,
		})
	}
	return input, nil
}

func respondPromotionAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "promotion not found", nil)
	case errors.Is(err, service.ErrPromotionPercentInvalid):
		respondError(c, response.CodeBadRequest, "discount percent must be between 1 and 70", nil)
	case errors.Is(err, service.ErrPromotionWindowInvalid):
		respondError(c, response.CodeBadRequest, "start must be before end", nil)
	case errors.Is(err, service.ErrFlashWindowTooLong):
		respondError(c, response.CodeBadRequest, "flash deal window exceeds 24 hours", nil)
	case errors.Is(err, service.ErrPromotionTargetInvalid):
		respondError(c, response.CodeBadRequest, "invalid promotion definition", nil)
	default:
		respondError(c, response.CodeInternal, "promotion operation failed", err)
	}
}

// CreatePromotion 创建活动
func (h *Handler) CreatePromotion(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput(adminID)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}
	promotion, err := h.PromotionAdminService.Create(input)
	if err != nil {
		respondPromotionAdminError(c, err)
		return
	}
	response.Success(c, promotion)
}

// UpdatePromotion 更新活动
func (h *Handler) UpdatePromotion(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	promotionID, ok := parsePathID(c)
	if !ok {
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput(adminID)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}
	promotion, err := h.PromotionAdminService.Update(promotionID, input)
	if err != nil {
		respondPromotionAdminError(c, err)
		return
	}
	response.Success(c, promotion)
}

// DeletePromotion 删除活动
func (h *Handler) DeletePromotion(c *gin.Context) {
	promotionID, ok := parsePathID(c)
	if !ok {
		return
	}
	if err := h.PromotionAdminService.Delete(promotionID); err != nil {
		respondPromotionAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminPromotion 获取活动详情
func (h *Handler) GetAdminPromotion(c *gin.Context) {
	promotionID, ok := parsePathID(c)
	if !ok {
		return
	}
	promotion, err := h.PromotionAdminService.Get(promotionID)
	if err != nil {
		respondPromotionAdminError(c, err)
		return
	}
	response.Success(c, promotion)
}

// GetAdminPromotions 获取活动列表
func (h *Handler) GetAdminPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PromotionListFilter{
		Page:          page,
		PageSize:      pageSize,
		PromotionType: strings.TrimSpace(c.Query("promotion_type")),
		Search:        strings.TrimSpace(c.Query("search")),
		WithTargets:   true,
	}
	if raw := c.Query("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil && active {
			now := time.Now()
			filter.ActiveAt = &now
		}
	}

	promotions, total, err := h.PromotionAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "promotion list failed", err)
		return
	}
	response.SuccessWithPage(c, promotions, response.NewPagination(page, pageSize, total))
}
