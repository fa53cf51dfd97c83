package repository

import (
	"errors"
	"strings"

	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DiscountCodeRepository 折扣码数据访问接口
type DiscountCodeRepository interface {
	GetByID(id uint) (*models.DiscountCode, error)
	GetByCode(code string) (*models.DiscountCode, error)
	GetByCodeForUpdate(code string) (*models.DiscountCode, error)
	Create(code *models.DiscountCode) error
	Update(code *models.DiscountCode) error
	Delete(id uint) error
	List(filter DiscountCodeListFilter) ([]models.DiscountCode, int64, error)
	IncrementUsedCount(id uint) error
	WithTx(tx *gorm.DB) *GormDiscountCodeRepository
}

// GormDiscountCodeRepository GORM 实现
type GormDiscountCodeRepository struct {
	db *gorm.DB
}

// NewDiscountCodeRepository 创建折扣码仓库
func NewDiscountCodeRepository(db *gorm.DB) *GormDiscountCodeRepository {
	return &GormDiscountCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountCodeRepository) WithTx(tx *gorm.DB) *GormDiscountCodeRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountCodeRepository{db: tx}
}

// GetByID 根据 ID 获取折扣码
func (r *GormDiscountCodeRepository) GetByID(id uint) (*models.DiscountCode, error) {
	var code models.DiscountCode
	if err := r.db.First(&code, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// GetByCode 根据码值获取折扣码（大小写不敏感）
func (r *GormDiscountCodeRepository) GetByCode(code string) (*models.DiscountCode, error) {
	var row models.DiscountCode
	if err := r.db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetByCodeForUpdate 根据码值加锁获取折扣码（用量计数更新前必须持锁）
func (r *GormDiscountCodeRepository) GetByCodeForUpdate(code string) (*models.DiscountCode, error) {
	var row models.DiscountCode
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create 创建折扣码
func (r *GormDiscountCodeRepository) Create(code *models.DiscountCode) error {
	return r.db.Create(code).Error
}

// Update 更新折扣码
func (r *GormDiscountCodeRepository) Update(code *models.DiscountCode) error {
	return r.db.Save(code).Error
}

// Delete 删除折扣码
func (r *GormDiscountCodeRepository) Delete(id uint) error {
	return r.db.Delete(&models.DiscountCode{}, id).Error
}

// List 折扣码列表
func (r *GormDiscountCodeRepository) List(filter DiscountCodeListFilter) ([]models.DiscountCode, int64, error) {
	query := r.db.Model(&models.DiscountCode{})

	if filter.Code != "" {
		query = query.Where("code = ?", strings.ToUpper(strings.TrimSpace(filter.Code)))
	}
	if filter.ActiveAt != nil {
		query = query.Where("start_at <= ? AND end_at >= ?", *filter.ActiveAt, *filter.ActiveAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var codes []models.DiscountCode
	if err := query.Order("id DESC").Find(&codes).Error; err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

// IncrementUsedCount 增加折扣码使用次数
func (r *GormDiscountCodeRepository) IncrementUsedCount(id uint) error {
	return r.db.Model(&models.DiscountCode{}).
		Where("id = ?", id).
		UpdateColumn("uses_count", gorm.Expr("uses_count + ?", 1)).Error
}
