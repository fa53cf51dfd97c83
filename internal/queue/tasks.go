package queue

import (
	"encoding/json"

	"github.com/kariakoo/marketplace/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotify 订单状态通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
)

// OrderStatusNotifyPayload 订单状态通知任务载荷
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderStatusNotifyTask 创建订单状态通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}
