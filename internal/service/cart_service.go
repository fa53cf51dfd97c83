package service

import (
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	skuRepo  repository.SKURepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, skuRepo repository.SKURepository) *CartService {
	return &CartService{cartRepo: cartRepo, skuRepo: skuRepo}
}

// CartView 购物车视图（带实时小计）
type CartView struct {
	Cart     *models.Cart `json:"cart"`
	Subtotal models.Money `json:"subtotal"`
}

// GetCart 获取购物车（不存在则创建空车）
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	return &CartView{
		Cart:     cart,
		Subtotal: models.NewMoneyFromDecimal(CartSubtotal(cart.Items)),
	}, nil
}

// AddItem 加购：同 SKU 数量合并，校验可售与库存
func (s *CartService) AddItem(userID, skuID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	sku, err := s.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, ErrSKUNotFound
	}
	if !sku.IsAvailable || sku.Product == nil || !sku.Product.IsActive {
		return nil, ErrSKUUnavailable
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.cartRepo.GetItem(cart.ID, skuID)
	if err != nil {
		return nil, err
	}
	total := quantity
	if existing != nil {
		total += existing.Quantity
	}
	if sku.StockQuantity < total {
		return nil, ErrInsufficientStock
	}
	if err := s.cartRepo.UpsertItem(&models.CartItem{
		CartID:   cart.ID,
		SKUID:    skuID,
		Quantity: total,
	}); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// UpdateItemQuantity 改数量；0 视为删除
func (s *CartService) UpdateItemQuantity(userID, skuID uint, quantity int) (*CartView, error) {
	if quantity < 0 {
		return nil, ErrQuantityInvalid
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if quantity == 0 {
		if err := s.cartRepo.DeleteItem(cart.ID, skuID); err != nil {
			return nil, err
		}
		return s.GetCart(userID)
	}
	sku, err := s.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, ErrSKUNotFound
	}
	if sku.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}
	if err := s.cartRepo.UpsertItem(&models.CartItem{
		CartID:   cart.ID,
		SKUID:    skuID,
		Quantity: quantity,
	}); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(userID, skuID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, skuID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// ClearCart 清空购物车
func (s *CartService) ClearCart(userID uint) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearItems(cart.ID)
}

// Subtotal 购物车实时小计
func (s *CartService) Subtotal(userID uint) (decimal.Decimal, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	if cart == nil {
		return decimal.Zero, nil
	}
	return CartSubtotal(cart.Items), nil
}
