package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page               int
	PageSize           int
	CategoryID         uint
	BrandID            uint
	SellerID           uint
	Search             string
	VerificationStatus string
	OnlyActive         bool
	WithSKUs           bool
}

// PromotionListFilter 查询活动列表的过滤条件
type PromotionListFilter struct {
	Page          int
	PageSize      int
	PromotionType string
	Search        string
	ActiveAt      *time.Time
	WithTargets   bool
}

// DiscountCodeListFilter 查询折扣码列表的过滤条件
type DiscountCodeListFilter struct {
	Page     int
	PageSize int
	Code     string
	ActiveAt *time.Time
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// LoyaltyTransactionListFilter 查询积分流水列表的过滤条件
type LoyaltyTransactionListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Kind     string
}
