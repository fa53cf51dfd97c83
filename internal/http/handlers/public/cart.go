package public

import (
	"strconv"

	"github.com/kariakoo/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	SKUID    uint `json:"sku_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加购（同 SKU 数量合并）
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	view, err := h.CartService.AddItem(uid, req.SKUID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 设置购物车项数量，0 表示移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	skuID, err := strconv.ParseUint(c.Param("sku_id"), 10, 64)
	if err != nil || skuID == 0 {
		respondError(c, response.CodeBadRequest, "invalid sku id", nil)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	view, err := h.CartService.UpdateItemQuantity(uid, uint(skuID), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	skuID, err := strconv.ParseUint(c.Param("sku_id"), 10, 64)
	if err != nil || skuID == 0 {
		respondError(c, response.CodeBadRequest, "invalid sku id", nil)
		return
	}
	view, err := h.CartService.RemoveItem(uid, uint(skuID))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.ClearCart(uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
