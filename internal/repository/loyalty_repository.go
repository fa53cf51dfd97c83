package repository

import (
	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
)

// LoyaltyRepository 积分流水数据访问接口
type LoyaltyRepository interface {
	CreateTransaction(txn *models.LoyaltyTransaction) error
	ListTransactions(filter LoyaltyTransactionListFilter) ([]models.LoyaltyTransaction, int64, error)
	WithTx(tx *gorm.DB) *GormLoyaltyRepository
}

// GormLoyaltyRepository GORM 实现
type GormLoyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository 创建积分流水仓库
func NewLoyaltyRepository(db *gorm.DB) *GormLoyaltyRepository {
	return &GormLoyaltyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLoyaltyRepository) WithTx(tx *gorm.DB) *GormLoyaltyRepository {
	if tx == nil {
		return r
	}
	return &GormLoyaltyRepository{db: tx}
}

// CreateTransaction 写入积分流水
func (r *GormLoyaltyRepository) CreateTransaction(txn *models.LoyaltyTransaction) error {
	return r.db.Create(txn).Error
}

// ListTransactions 积分流水列表
func (r *GormLoyaltyRepository) ListTransactions(filter LoyaltyTransactionListFilter) ([]models.LoyaltyTransaction, int64, error) {
	query := r.db.Model(&models.LoyaltyTransaction{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var txns []models.LoyaltyTransaction
	if err := query.Order("id DESC").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
