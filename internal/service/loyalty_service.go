package service

import (
	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoyaltyService 积分服务（1 积分 = 1 TZS）
type LoyaltyService struct {
	userRepo    repository.UserRepository
	loyaltyRepo repository.LoyaltyRepository
}

// NewLoyaltyService 创建积分服务
func NewLoyaltyService(userRepo repository.UserRepository, loyaltyRepo repository.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{userRepo: userRepo, loyaltyRepo: loyaltyRepo}
}

// RedeemResult 积分抵扣结果
type RedeemResult struct {
	PointsUsed      decimal.Decimal
	DiscountAmount  decimal.Decimal
	RemainingPoints decimal.Decimal
}

// RedeemPoints 在事务内抵扣积分。
//
// 单次至少 1000 分；抵扣金额不超过购物车总额的 50%；
// 触顶裁剪时按裁剪后的金额扣减余额。用户行持锁后才改余额。
func (s *LoyaltyService) RedeemPoints(tx *gorm.DB, userID uint, pointsToUse int64, cartTotal decimal.Decimal, orderID *uint) (*RedeemResult, error) {
	if pointsToUse < constants.LoyaltyMinRedeemPoints {
		return nil, ErrLoyaltyMinRedemption
	}
	if cartTotal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrLoyaltyCartTooLow
	}

	userRepo := s.userRepo.WithTx(tx)
	loyaltyRepo := s.loyaltyRepo.WithTx(tx)

	user, err := userRepo.GetByIDForUpdate(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	requested := decimal.NewFromInt(pointsToUse)
	if user.LoyaltyPointsBalance.Decimal.LessThan(requested) {
		return nil, ErrLoyaltyInsufficientPoints
	}

	// 抵扣上限：购物车总额的 50%
	cap := cartTotal.Mul(decimal.NewFromInt(constants.LoyaltyMaxCartPercent)).
		Div(decimal.NewFromInt(100)).Round(2)
	discount := requested
	if discount.GreaterThan(cap) {
		discount = cap
	}

	// 余额只扣实际抵扣掉的部分
	newBalance := user.LoyaltyPointsBalance.Decimal.Sub(discount)
	user.LoyaltyPointsBalance = models.NewMoneyFromDecimal(newBalance)
	if err := userRepo.Update(user); err != nil {
		return nil, err
	}

	txn := &models.LoyaltyTransaction{
		UserID:       userID,
		OrderID:      orderID,
		Kind:         constants.LoyaltyTxnRedeem,
		Points:       models.NewMoneyFromDecimal(discount.Neg()),
		BalanceAfter: models.NewMoneyFromDecimal(newBalance),
	}
	if err := loyaltyRepo.CreateTransaction(txn); err != nil {
		return nil, err
	}

	return &RedeemResult{
		PointsUsed:      discount,
		DiscountAmount:  discount,
		RemainingPoints: newBalance,
	}, nil
}

// GrantPoints 在事务内增加积分（推荐奖励、人工调整）
func (s *LoyaltyService) GrantPoints(tx *gorm.DB, userID uint, points decimal.Decimal, kind string, orderID *uint, remark string) error {
	userRepo := s.userRepo.WithTx(tx)
	loyaltyRepo := s.loyaltyRepo.WithTx(tx)

	user, err := userRepo.GetByIDForUpdate(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	newBalance := user.LoyaltyPointsBalance.Decimal.Add(points)
	if newBalance.IsNegative() {
		return ErrLoyaltyInsufficientPoints
	}
	user.LoyaltyPointsBalance = models.NewMoneyFromDecimal(newBalance)
	if err := userRepo.Update(user); err != nil {
		return err
	}

	return loyaltyRepo.CreateTransaction(&models.LoyaltyTransaction{
		UserID:       userID,
		OrderID:      orderID,
		Kind:         kind,
		Points:       models.NewMoneyFromDecimal(points),
		BalanceAfter: models.NewMoneyFromDecimal(newBalance),
		Remark:       remark,
	})
}

// AdjustPoints 后台人工调整积分（正数增加，负数扣减）
func (s *LoyaltyService) AdjustPoints(userID uint, points decimal.Decimal, remark string) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		return s.GrantPoints(tx, userID, points, constants.LoyaltyTxnAdminAdjust, nil, remark)
	})
}

// ListTransactions 用户积分流水
func (s *LoyaltyService) ListTransactions(userID uint, page, pageSize int) ([]models.LoyaltyTransaction, int64, error) {
	return s.loyaltyRepo.ListTransactions(repository.LoyaltyTransactionListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}
