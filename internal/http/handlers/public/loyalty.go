package public

import (
	"strconv"

	"github.com/kariakoo/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetLoyaltyBalance 获取我的积分余额
func (h *Handler) GetLoyaltyBalance(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByID(uid)
	if err != nil || user == nil {
		respondError(c, response.CodeInternal, "balance fetch failed", err)
		return
	}
	response.Success(c, gin.H{"balance": user.LoyaltyPointsBalance})
}

// ListLoyaltyTransactions 获取我的积分流水
func (h *Handler) ListLoyaltyTransactions(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	transactions, total, err := h.LoyaltyService.ListTransactions(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "loyalty transaction list failed", err)
		return
	}
	response.SuccessWithPage(c, transactions, response.NewPagination(page, pageSize, total))
}
