package service

import (
	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
)

// CatalogAdminService 商品审核与后台目录管理服务
type CatalogAdminService struct {
	productRepo repository.ProductRepository
}

// NewCatalogAdminService 创建后台目录管理服务
func NewCatalogAdminService(productRepo repository.ProductRepository) *CatalogAdminService {
	return &CatalogAdminService{productRepo: productRepo}
}

// ListProducts 后台商品列表（不限制审核状态与上架状态）
func (s *CatalogAdminService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct 后台商品详情
func (s *CatalogAdminService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// VerifyProduct 审核商品，status 只接受 approved 或 rejected
func (s *CatalogAdminService) VerifyProduct(id uint, status string) (*models.Product, error) {
	if status != constants.ProductVerificationApproved && status != constants.ProductVerificationRejected {
		return nil, ErrVerificationStatusInvalid
	}
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	product.VerificationStatus = status
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// SetProductActive 上架/下架商品
func (s *CatalogAdminService) SetProductActive(id uint, active bool) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	product.IsActive = active
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
