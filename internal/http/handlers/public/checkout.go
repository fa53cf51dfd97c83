package public

import (
	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	DiscountCode string `json:"discount_code"`
	PointsToUse  int64  `json:"points_to_use"`
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.CheckoutService.Checkout(service.CheckoutInput{
		UserID:       uid,
		DiscountCode: req.DiscountCode,
		PointsToUse:  req.PointsToUse,
		ClientIP:     c.ClientIP(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, order)
}
