package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/repository"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetAdminUsers 后台用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("created_from"); raw != "" {
		if from, err := parseTime(raw); err == nil {
			filter.CreatedFrom = &from
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if to, err := parseTime(raw); err == nil {
			filter.CreatedTo = &to
		}
	}

	users, total, err := h.UserRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "user list failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// GetAdminUser 后台用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	userID, ok := parsePathID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "user query failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	response.Success(c, user)
}

// AdjustLoyaltyRequest 积分人工调整请求
type AdjustLoyaltyRequest struct {
	UserID uint    `json:"user_id" binding:"required"`
	Points float64 `json:"points" binding:"required"`
	Remark string  `json:"remark" binding:"required"`
}

// AdjustLoyaltyPoints 人工调整用户积分
func (h *Handler) AdjustLoyaltyPoints(c *gin.Context) {
	var req AdjustLoyaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	err := h.LoyaltyService.AdjustPoints(req.UserID, decimal.NewFromFloat(req.Points), req.Remark)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		case errors.Is(err, service.ErrLoyaltyInsufficientPoints):
			respondError(c, response.CodeBadRequest, "insufficient loyalty points", nil)
		default:
			respondError(c, response.CodeInternal, "loyalty adjust failed", err)
		}
		return
	}
	response.Success(c, gin.H{"adjusted": true})
}
