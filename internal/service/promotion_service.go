package service

import (
	"context"
	"time"

	"github.com/kariakoo/marketplace/internal/cache"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
)

// PromotionService 活动查询服务（面向买家）
type PromotionService struct {
	repo repository.PromotionRepository
}

// NewPromotionService 创建活动查询服务
func NewPromotionService(repo repository.PromotionRepository) *PromotionService {
	return &PromotionService{repo: repo}
}

// ListActiveDeals 当前在线活动，带一层短 TTL 缓存
func (s *PromotionService) ListActiveDeals(ctx context.Context) ([]models.Promotion, error) {
	if promotions, hit := cache.GetActiveDeals(ctx); hit {
		return promotions, nil
	}
	promotions, err := s.repo.ListActive(time.Now())
	if err != nil {
		return nil, err
	}
	cache.SetActiveDeals(ctx, promotions)
	return promotions, nil
}

// InvalidateActiveDeals 实现管理服务的缓存失效接口
func (s *PromotionService) InvalidateActiveDeals() {
	cache.InvalidateActiveDeals(context.Background())
}
