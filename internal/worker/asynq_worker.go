package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kariakoo/marketplace/internal/logger"
	"github.com/kariakoo/marketplace/internal/provider"
	"github.com/kariakoo/marketplace/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
}

// handleOrderStatusNotify 订单状态变更通知。
// 下游渠道（邮件、短信）由独立系统消费，这里落一条结构化通知日志。
func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail := ""
	if order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_status_notify_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}

	logger.Infow("order_status_notification",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"receiver_email", receiverEmail,
		"status", status,
		"total_amount", order.TotalAmount,
	)
	return nil
}
