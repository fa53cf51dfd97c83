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

func respondOrderAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "order not found", nil)
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(c, response.CodeBadRequest, "invalid status transition", nil)
	default:
		respondError(c, response.CodeInternal, "order operation failed", err)
	}
}

// GetAdminOrders 获取订单列表
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := c.Query("user_id"); raw != "" {
		if userID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(userID)
		}
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

	orders, total, err := h.OrderService.ListForAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetAdminOrder 获取订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	orderID, ok := parsePathID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetForAdmin(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// ConfirmOrder 卖家确认订单
func (h *Handler) ConfirmOrder(c *gin.Context) {
	orderID, ok := parsePathID(c)
	if !ok {
		return
	}
	order, err := h.OrderStatusService.ConfirmOrder(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// ShipOrderRequest 发货请求
type ShipOrderRequest struct {
	Carrier    string `json:"carrier" binding:"required"`
	TrackingNo string `json:"tracking_no" binding:"required"`
}

// ShipOrder 标记订单已发货
func (h *Handler) ShipOrder(c *gin.Context) {
	orderID, ok := parsePathID(c)
	if !ok {
		return
	}
	var req ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderStatusService.MarkShipped(orderID, req.Carrier, req.TrackingNo)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// DeliveryProofRequest 派送凭证请求
type DeliveryProofRequest struct {
	Proof string `json:"proof" binding:"required"`
}

// RecordDeliveryProof 记录派送凭证
func (h *Handler) RecordDeliveryProof(c *gin.Context) {
	orderID, ok := parsePathID(c)
	if !ok {
		return
	}
	var req DeliveryProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderStatusService.RecordDeliveryProof(orderID, req.Proof)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// ResolveDispute 客服裁定争议完结
func (h *Handler) ResolveDispute(c *gin.Context) {
	orderID, ok := parsePathID(c)
	if !ok {
		return
	}
	order, err := h.OrderStatusService.ResolveDispute(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}

// RefundOrder 订单退款
func (h *Handler) RefundOrder(c *gin.Context) {
	orderID, ok := parsePathID(c)
	if !ok {
		return
	}
	order, err := h.OrderStatusService.RefundOrder(orderID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, order)
}
