package service

import "errors"

// 服务层哨兵错误，HTTP 层通过错误映射表转换为响应码。
var (
	// 购物车与结算
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrQuantityInvalid   = errors.New("quantity must be positive")
	ErrSKUNotFound       = errors.New("sku not found")
	ErrSKUUnavailable    = errors.New("sku is unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")

	// 折扣码
	ErrDiscountCodeInvalid  = errors.New("invalid or expired discount code")
	ErrDiscountCodeMinOrder = errors.New("order total too low for code")

	// 积分
	ErrLoyaltyMinRedemption      = errors.New("minimum redemption is 1000 points")
	ErrLoyaltyInsufficientPoints = errors.New("insufficient loyalty points")
	ErrLoyaltyCartTooLow         = errors.New("cart total too low for redemption")

	// 订单
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrOrderAccessDenied  = errors.New("order does not belong to user")
	ErrPaymentRefRequired = errors.New("payment reference required")

	// 用户
	ErrUserNotFound = errors.New("user not found")

	// 认证
	ErrInvalidCredentials = errors.New("invalid username or password")

	// 活动与折扣码管理
	ErrPromotionNotFound       = errors.New("promotion not found")
	ErrPromotionPercentInvalid = errors.New("discount percent must be between 1 and 70")
	ErrPromotionWindowInvalid  = errors.New("start time must be before end time")
	ErrFlashWindowTooLong      = errors.New("flash deal window cannot exceed 24 hours")
	ErrPromotionTargetInvalid  = errors.New("invalid promotion target")
	ErrDiscountCodeNotFound    = errors.New("discount code not found")
	ErrDiscountCodeExists      = errors.New("discount code already exists")
	ErrDiscountValueInvalid    = errors.New("either percent or amount must be set")

	// 分类与商品
	ErrCategoryNotFound          = errors.New("category not found")
	ErrProductNotFound           = errors.New("product not found")
	ErrVerificationStatusInvalid = errors.New("verification status must be approved or rejected")
)
