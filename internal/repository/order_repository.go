package repository

import (
	"errors"

	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByIDForUpdate(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	List(filter OrderListFilter) ([]models.Order, int64, error)
	CountCompletedByUser(userID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// GetByID 根据 ID 获取订单（带行与物流）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Preload("Delivery").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate 根据 ID 加锁获取订单（状态流转前必须持锁）
func (r *GormOrderRepository) GetByIDForUpdate(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据订单号获取订单（带行与物流）
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Preload("Delivery").
		Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单（级联写入订单行）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update 更新订单
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// List 订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Preload("Items").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountCompletedByUser 统计用户已完成订单数（推荐奖励判首单用）
func (r *GormOrderRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, "completed").
		Count(&count).Error
	return count, err
}
