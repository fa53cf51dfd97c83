package service

import (
	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
)

// CatalogService 商品目录查询服务（面向买家的只读协作方）
type CatalogService struct {
	productRepo  repository.ProductRepository
	skuRepo      repository.SKURepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewCatalogService 创建目录查询服务
func NewCatalogService(productRepo repository.ProductRepository, skuRepo repository.SKURepository, categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		skuRepo:      skuRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ListProducts 公开商品列表（只展示已审核上架的商品）
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.VerificationStatus = constants.ProductVerificationApproved
	return s.productRepo.List(filter)
}

// GetProduct 公开商品详情
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive ||
		product.VerificationStatus != constants.ProductVerificationApproved {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListCategories 全部分类
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// ListBrands 全部品牌
func (s *CatalogService) ListBrands() ([]models.Brand, error) {
	return s.brandRepo.ListAll()
}
