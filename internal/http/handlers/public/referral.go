package public

import (
	"errors"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// GetReferralCode 获取（必要时生成）我的推荐码
func (h *Handler) GetReferralCode(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	code, err := h.ReferralService.EnsureReferralCode(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "referral code fetch failed", err)
		return
	}
	response.Success(c, gin.H{"referral_code": code})
}

// AttachReferrerRequest 绑定推荐人请求
type AttachReferrerRequest struct {
	Code string `json:"code" binding:"required"`
}

// AttachReferrer 绑定推荐人（仅一次，不允许自荐）
func (h *Handler) AttachReferrer(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AttachReferrerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.ReferralService.AttachReferrer(uid, req.Code); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeBadRequest, "invalid referral code", nil)
			return
		}
		respondError(c, response.CodeInternal, "referral attach failed", err)
		return
	}
	response.Success(c, gin.H{"attached": true})
}

// ListReferralRewards 获取我作为推荐人的奖励记录
func (h *Handler) ListReferralRewards(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rewards, err := h.ReferralService.ListRewards(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "referral reward list failed", err)
		return
	}
	response.Success(c, gin.H{"rewards": rewards})
}
