package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusDisputed  = "disputed"
	OrderStatusRefunded  = "refunded"
)

// 激励条目类型常量
const (
	IncentiveTypePromotion = "promotion"
	IncentiveTypeCode      = "code"
	IncentiveTypeLoyalty   = "loyalty"
)

// 活动类型常量
const (
	PromotionTypeFlash    = "flash"
	PromotionTypeTimed    = "timed"
	PromotionTypeBundle   = "bundle"
	PromotionTypeSeller   = "seller"
	PromotionTypeCategory = "category"
)

// 活动目标类型常量
const (
	PromotionTargetProduct  = "product"
	PromotionTargetSKU      = "sku"
	PromotionTargetCategory = "category"
	PromotionTargetSeller   = "seller"
)

// 商品审核状态常量
const (
	ProductVerificationPending  = "pending"
	ProductVerificationApproved = "approved"
	ProductVerificationRejected = "rejected"
)

// 积分与推荐奖励常量
const (
	// LoyaltyMinRedeemPoints 单次兑换最低积分
	LoyaltyMinRedeemPoints = 1000
	// LoyaltyMaxCartPercent 积分抵扣占购物车总额的上限（百分比）
	LoyaltyMaxCartPercent = 50
	// ReferralRewardPoints 推荐奖励积分（推荐人与被推荐人各得一份）
	ReferralRewardPoints = 1000
)

// 积分流水类型常量
const (
	LoyaltyTxnRedeem         = "redeem"
	LoyaltyTxnReferralReward = "referral_reward"
	LoyaltyTxnAdminAdjust    = "admin_adjust"
)

// OrderNoPrefix 订单编号前缀
const OrderNoPrefix = "KK"

// DefaultCurrency 默认币种
const DefaultCurrency = "TZS"

// DeliveryEstimateHours 预计送达时长（小时）
const DeliveryEstimateHours = 72

// 队列任务类型常量
const (
	TaskOrderStatusNotify = "order:status_notify"
	QueueDefault          = "default"
)

// 用户账号状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
