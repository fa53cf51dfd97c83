package models

import "time"

// Delivery 物流表
//
// 订单支付后创建，预计送达时间默认下单后 72 小时，
// 送达凭证由配送端上传后写入。
type Delivery struct {
	ID                uint       `gorm:"primarykey" json:"id"`                      // 主键
	OrderID           uint       `gorm:"uniqueIndex;not null" json:"order_id"`      // 订单ID
	Carrier           string     `gorm:"type:varchar(64)" json:"carrier"`           // 承运方
	TrackingNo        string     `gorm:"type:varchar(64);index" json:"tracking_no"` // 运单号
	EstimatedDelivery time.Time  `json:"estimated_delivery"`                        // 预计送达时间
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`                 // 实际送达时间
	DeliveryProof     string     `gorm:"type:varchar(255)" json:"delivery_proof"`   // 送达凭证（图片地址）
	CreatedAt         time.Time  `json:"created_at"`                                // 创建时间
	UpdatedAt         time.Time  `json:"updated_at"`                                // 更新时间
}

// TableName 指定表名
func (Delivery) TableName() string {
	return "deliveries"
}
