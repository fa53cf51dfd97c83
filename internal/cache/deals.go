package cache

import (
	"context"
	"time"

	"github.com/kariakoo/marketplace/internal/models"
)

const (
	activeDealsKey      = "promotions:active"
	activeDealsCacheTTL = time.Minute
)

// GetActiveDeals 读取在线活动缓存
func GetActiveDeals(ctx context.Context) ([]models.Promotion, bool) {
	var promotions []models.Promotion
	hit, err := GetJSON(ctx, activeDealsKey, &promotions)
	if err != nil || !hit {
		return nil, false
	}
	return promotions, true
}

// SetActiveDeals 写入在线活动缓存（短 TTL，窗口翻转自然过期）
func SetActiveDeals(ctx context.Context, promotions []models.Promotion) {
	_ = SetJSON(ctx, activeDealsKey, promotions, activeDealsCacheTTL)
}

// InvalidateActiveDeals 管理端写操作后失效在线活动缓存
func InvalidateActiveDeals(ctx context.Context) {
	_ = Del(ctx, activeDealsKey)
}
