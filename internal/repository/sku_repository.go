package repository

import (
	"errors"

	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SKURepository SKU 数据访问接口
type SKURepository interface {
	GetByID(id uint) (*models.SKU, error)
	GetByIDForUpdate(id uint) (*models.SKU, error)
	ListByIDs(ids []uint) ([]models.SKU, error)
	ListByProduct(productID uint) ([]models.SKU, error)
	Create(sku *models.SKU) error
	Update(sku *models.SKU) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormSKURepository
}

// GormSKURepository GORM 实现
type GormSKURepository struct {
	db *gorm.DB
}

// NewSKURepository 创建 SKU 仓库
func NewSKURepository(db *gorm.DB) *GormSKURepository {
	return &GormSKURepository{db: db}
}

// WithTx 绑定事务
func (r *GormSKURepository) WithTx(tx *gorm.DB) *GormSKURepository {
	if tx == nil {
		return r
	}
	return &GormSKURepository{db: tx}
}

// GetByID 根据 ID 获取 SKU（带商品）
func (r *GormSKURepository) GetByID(id uint) (*models.SKU, error) {
	var sku models.SKU
	if err := r.db.Preload("Product").First(&sku, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// GetByIDForUpdate 根据 ID 加锁获取 SKU（结算复核库存时持锁）
func (r *GormSKURepository) GetByIDForUpdate(id uint) (*models.SKU, error) {
	var sku models.SKU
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sku, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// ListByIDs 批量获取 SKU（带商品）
func (r *GormSKURepository) ListByIDs(ids []uint) ([]models.SKU, error) {
	if len(ids) == 0 {
		return []models.SKU{}, nil
	}
	var skus []models.SKU
	if err := r.db.Preload("Product").Where("id IN ?", ids).Find(&skus).Error; err != nil {
		return nil, err
	}
	return skus, nil
}

// ListByProduct 获取商品下的全部 SKU
func (r *GormSKURepository) ListByProduct(productID uint) ([]models.SKU, error) {
	var skus []models.SKU
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&skus).Error; err != nil {
		return nil, err
	}
	return skus, nil
}

// Create 创建 SKU
func (r *GormSKURepository) Create(sku *models.SKU) error {
	return r.db.Create(sku).Error
}

// Update 更新 SKU
func (r *GormSKURepository) Update(sku *models.SKU) error {
	return r.db.Save(sku).Error
}

// Delete 删除 SKU
func (r *GormSKURepository) Delete(id uint) error {
	return r.db.Delete(&models.SKU{}, id).Error
}
