package service

import (
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
)

// OrderService 订单查询服务
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单查询服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListByUser 买家订单列表
func (s *OrderService) ListByUser(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

// GetForUser 买家订单详情（校验归属）
func (s *OrderService) GetForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNoForUser 买家按订单号查询
func (s *OrderService) GetByOrderNoForUser(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForAdmin 管理端订单列表
func (s *OrderService) ListForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// GetForAdmin 管理端订单详情
func (s *OrderService) GetForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
