package repository

import (
	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
)

// PromotionUsageRepository 活动使用记录数据访问接口
type PromotionUsageRepository interface {
	Create(usage *models.PromotionUsage) error
	CountByPromotionAndUser(promotionID, userID uint) (int64, error)
	ListByOrder(orderID uint) ([]models.PromotionUsage, error)
	WithTx(tx *gorm.DB) *GormPromotionUsageRepository
}

// GormPromotionUsageRepository GORM 实现
type GormPromotionUsageRepository struct {
	db *gorm.DB
}

// NewPromotionUsageRepository 创建活动使用记录仓库
func NewPromotionUsageRepository(db *gorm.DB) *GormPromotionUsageRepository {
	return &GormPromotionUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionUsageRepository) WithTx(tx *gorm.DB) *GormPromotionUsageRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionUsageRepository{db: tx}
}

// Create 写入使用记录（命中的每个购物车行一条）
func (r *GormPromotionUsageRepository) Create(usage *models.PromotionUsage) error {
	return r.db.Create(usage).Error
}

// CountByPromotionAndUser 统计某用户对某活动的使用行数
func (r *GormPromotionUsageRepository) CountByPromotionAndUser(promotionID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PromotionUsage{}).
		Where("promotion_id = ? AND user_id = ?", promotionID, userID).
		Count(&count).Error
	return count, err
}

// ListByOrder 获取订单的活动使用记录
func (r *GormPromotionUsageRepository) ListByOrder(orderID uint) ([]models.PromotionUsage, error) {
	var usages []models.PromotionUsage
	if err := r.db.Where("order_id = ?", orderID).Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}
