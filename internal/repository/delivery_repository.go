package repository

import (
	"errors"

	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
)

// DeliveryRepository 物流数据访问接口
type DeliveryRepository interface {
	GetByOrderID(orderID uint) (*models.Delivery, error)
	Create(delivery *models.Delivery) error
	Update(delivery *models.Delivery) error
	WithTx(tx *gorm.DB) *GormDeliveryRepository
}

// GormDeliveryRepository GORM 实现
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository 创建物流仓库
func NewDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDeliveryRepository) WithTx(tx *gorm.DB) *GormDeliveryRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryRepository{db: tx}
}

// GetByOrderID 根据订单ID获取物流信息
func (r *GormDeliveryRepository) GetByOrderID(orderID uint) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.Where("order_id = ?", orderID).First(&delivery).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

// Create 创建物流记录
func (r *GormDeliveryRepository) Create(delivery *models.Delivery) error {
	return r.db.Create(delivery).Error
}

// Update 更新物流记录
func (r *GormDeliveryRepository) Update(delivery *models.Delivery) error {
	return r.db.Save(delivery).Error
}
