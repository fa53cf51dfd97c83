package public

import (
	"strconv"
	"strings"

	"github.com/kariakoo/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListOrders 获取我的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	status := strings.TrimSpace(c.Query("status"))

	orders, total, err := h.OrderService.ListByUser(uid, status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 获取我的订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetForUser(orderID, uid)
	if err != nil {
		respondOrderActionError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderByOrderNo 按订单号获取我的订单详情
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "invalid order no", nil)
		return
	}
	order, err := h.OrderService.GetByOrderNoForUser(orderNo, uid)
	if err != nil {
		respondOrderActionError(c, err)
		return
	}
	response.Success(c, order)
}

// ConfirmPaymentRequest 支付确认请求
type ConfirmPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// ConfirmPayment 外部收款确认后驱动订单 pending→paid
func (h *Handler) ConfirmPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderStatusService.ConfirmPayment(orderID, uid, req.Reference)
	if err != nil {
		respondOrderActionError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 买家取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderStatusService.CancelOrder(orderID, uid)
	if err != nil {
		respondOrderActionError(c, err)
		return
	}
	response.Success(c, order)
}

// CompleteOrder 买家确认收货，订单 delivered→completed
func (h *Handler) CompleteOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderStatusService.CompleteOrder(orderID, uid)
	if err != nil {
		respondOrderActionError(c, err)
		return
	}
	response.Success(c, order)
}

// OpenDispute 买家发起争议
func (h *Handler) OpenDispute(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderStatusService.OpenDispute(orderID, uid)
	if err != nil {
		respondOrderActionError(c, err)
		return
	}
	response.Success(c, order)
}

func parseOrderID(c *gin.Context) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return 0, false
	}
	return uint(orderID), true
}
