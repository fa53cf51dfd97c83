package repository

import (
	"errors"

	"github.com/kariakoo/marketplace/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	GetItem(cartID, skuID uint) (*models.CartItem, error)
	UpsertItem(item *models.CartItem) error
	DeleteItem(cartID, skuID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车（带行与 SKU、商品、品牌）
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items.SKU.Product.Brand").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser 获取用户购物车，不存在则创建
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// GetItem 获取购物车行
func (r *GormCartRepository) GetItem(cartID, skuID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND sku_id = ?", cartID, skuID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpsertItem 添加或更新购物车行
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	existing, err := r.GetItem(item.CartID, item.SKUID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(item).Error
	}
	return r.db.Model(existing).Update("quantity", item.Quantity).Error
}

// DeleteItem 删除购物车行
func (r *GormCartRepository) DeleteItem(cartID, skuID uint) error {
	return r.db.Where("cart_id = ? AND sku_id = ?", cartID, skuID).
		Delete(&models.CartItem{}).Error
}

// ClearItems 清空购物车行
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
