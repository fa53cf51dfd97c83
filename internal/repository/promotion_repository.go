package repository

import (
	"errors"
	"time"

	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PromotionRepository 活动数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByIDForUpdate(id uint) (*models.Promotion, error)
	ListActive(now time.Time) ([]models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	ReplaceTargets(promotionID uint, targets []models.PromotionTarget) error
	IncrementUsage(id uint, burn models.Money) error
	WithTx(tx *gorm.DB) *GormPromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建活动仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) *GormPromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据 ID 获取活动（带目标）
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Preload("Targets").First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByIDForUpdate 根据 ID 加锁获取活动（累计计数更新前必须持锁）
func (r *GormPromotionRepository) GetByIDForUpdate(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// ListActive 获取时间窗口内的活动（带目标），按优先级、折扣、ID 排序。
// 使用次数与烧钱上限在内存里由 ActiveAt 二次过滤。
func (r *GormPromotionRepository) ListActive(now time.Time) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.Preload("Targets").
		Where("start_at <= ? AND end_at >= ?", now, now).
		Order("priority DESC, discount_percent DESC, id ASC").
		Find(&promotions).Error; err != nil {
		return nil, err
	}
	active := promotions[:0]
	for i := range promotions {
		if promotions[i].ActiveAt(now) {
			active = append(active, promotions[i])
		}
	}
	return active, nil
}

// Create 创建活动
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新活动
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// Delete 删除活动
func (r *GormPromotionRepository) Delete(id uint) error {
	if err := r.db.Where("promotion_id = ?", id).Delete(&models.PromotionTarget{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Promotion{}, id).Error
}

// List 活动列表
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	query := r.db.Model(&models.Promotion{})

	if filter.PromotionType != "" {
		query = query.Where("promotion_type = ?", filter.PromotionType)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ?", like)
	}
	if filter.ActiveAt != nil {
		query = query.Where("start_at <= ? AND end_at >= ?", *filter.ActiveAt, *filter.ActiveAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithTargets {
		query = query.Preload("Targets")
	}

	var promotions []models.Promotion
	if err := query.Order("id DESC").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

// ReplaceTargets 全量替换活动目标
func (r *GormPromotionRepository) ReplaceTargets(promotionID uint, targets []models.PromotionTarget) error {
	if err := r.db.Where("promotion_id = ?", promotionID).
		Delete(&models.PromotionTarget{}).Error; err != nil {
		return err
	}
	if len(targets) == 0 {
		return nil
	}
	for i := range targets {
		targets[i].ID = 0
		targets[i].PromotionID = promotionID
	}
	return r.db.Create(&targets).Error
}

// IncrementUsage 累加使用次数与烧钱金额
func (r *GormPromotionRepository) IncrementUsage(id uint, burn models.Money) error {
	return r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"uses_count": gorm.Expr("uses_count + ?", 1),
			"total_burn": gorm.Expr("total_burn + ?", burn.Decimal),
		}).Error
}
