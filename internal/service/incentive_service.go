package service

import (
	"strings"
	"time"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncentiveService 优惠选择器：按固定优先序叠加活动折扣与折扣码
type IncentiveService struct {
	promotionRepo repository.PromotionRepository
	usageRepo     repository.PromotionUsageRepository
	codeRepo      repository.DiscountCodeRepository
}

// NewIncentiveService 创建优惠选择器
func NewIncentiveService(promotionRepo repository.PromotionRepository, usageRepo repository.PromotionUsageRepository, codeRepo repository.DiscountCodeRepository) *IncentiveService {
	return &IncentiveService{
		promotionRepo: promotionRepo,
		usageRepo:     usageRepo,
		codeRepo:      codeRepo,
	}
}

// AppliedIncentive 单条优惠明细（写入订单快照）
type AppliedIncentive struct {
	Type     string       `json:"type"`      // promotion / code / loyalty
	SourceID uint         `json:"source_id"` // 活动或折扣码ID
	Label    string       `json:"label"`     // 名称或码值
	Amount   models.Money `json:"amount"`    // 优惠金额
}

// LineIncentive 购物车行级优惠结果
type LineIncentive struct {
	SKUID         uint
	PromotionID   *uint
	PromotionName string
	Discount      decimal.Decimal
}

// IncentiveBreakdown 优惠计算结果
type IncentiveBreakdown struct {
	OriginalTotal     decimal.Decimal
	PromotionDiscount decimal.Decimal
	CodeDiscount      decimal.Decimal
	TotalDiscount     decimal.Decimal
	FinalTotal        decimal.Decimal
	CodeID            *uint
	Lines             []LineIncentive
	Applied           []AppliedIncentive
	// PendingUsages 待落库的活动使用记录，OrderID 由结算侧回填
	PendingUsages []models.PromotionUsage
}

// SelectIncentives 在事务内计算并占用优惠。
//
// 活动按 priority desc, discount_percent desc, id asc 排序，
// 每个购物车行只考察排序最高的命中活动，该活动不满足门槛时
// 整行静默放弃优惠；无效折扣码返回错误。每次活动命中都在锁内
// 累加计数并生成使用记录，同一次结算中前面行的使用会占用每人上限。
func (s *IncentiveService) SelectIncentives(tx *gorm.DB, userID uint, items []models.CartItem, code string, now time.Time) (*IncentiveBreakdown, error) {
	promotionRepo := s.promotionRepo.WithTx(tx)
	usageRepo := s.usageRepo.WithTx(tx)
	codeRepo := s.codeRepo.WithTx(tx)

	originalTotal := CartSubtotal(items)
	breakdown := &IncentiveBreakdown{
		OriginalTotal: originalTotal,
		Lines:         make([]LineIncentive, 0, len(items)),
	}

	promotions, err := promotionRepo.ListActive(now)
	if err != nil {
		return nil, err
	}

	// 用户对各活动的已用次数，数据库行数 + 本次结算内已占用次数
	userUses := make(map[uint]int64)
	promotionDiscount := decimal.Zero

	for i := range items {
		item := &items[i]
		if item.SKU == nil || item.SKU.Product == nil {
			breakdown.Lines = append(breakdown.Lines, LineIncentive{SKUID: item.SKUID, Discount: decimal.Zero})
			continue
		}
		product := item.SKU.Product
		line := LineIncentive{SKUID: item.SKUID, Discount: decimal.Zero}

		// 单次查找：每行只考察排序最高的命中活动，
		// 该活动不满足门槛时整行放弃优惠，不降级到更低优先级的活动。
		for p := range promotions {
			promo := &promotions[p]
			if !promo.MatchesItem(product.ID, item.SKU.ID, product.CategoryID, product.SellerID) {
				continue
			}

			// 每人上限：先查后裁，同一次结算内的占用同样计数
			used, ok := userUses[promo.ID]
			if !ok {
				used, err = usageRepo.CountByPromotionAndUser(promo.ID, userID)
				if err != nil {
					return nil, err
				}
				userUses[promo.ID] = used
			}
			if promo.MaxUsesPerUser > 0 && used >= int64(promo.MaxUsesPerUser) {
				break
			}
			if originalTotal.LessThan(promo.MinOrderAmount.Decimal) {
				break
			}

			unit := EffectiveUnitPrice(item.SKU)
			discount := unit.Mul(promo.DiscountPercent.Decimal).
				Div(decimal.NewFromInt(100)).
				Mul(decimal.NewFromInt(int64(item.Quantity))).
				Round(2)
			if promo.MaxDiscountCap != nil && discount.GreaterThan(promo.MaxDiscountCap.Decimal) {
				discount = promo.MaxDiscountCap.Decimal
			}
			if discount.LessThanOrEqual(decimal.Zero) {
				break
			}

			// 锁定活动行再累加共享计数
			locked, err := promotionRepo.GetByIDForUpdate(promo.ID)
			if err != nil {
				return nil, err
			}
			if locked == nil || !locked.ActiveAt(now) {
				break
			}
			if err := promotionRepo.IncrementUsage(promo.ID, models.NewMoneyFromDecimal(discount)); err != nil {
				return nil, err
			}

			userUses[promo.ID] = used + 1
			promoID := promo.ID
			line.PromotionID = &promoID
			line.PromotionName = promo.Name
			line.Discount = discount
			promotionDiscount = promotionDiscount.Add(discount)
			// 每个命中行记一条明细，同一活动命中多行则多条
			breakdown.Applied = append(breakdown.Applied, AppliedIncentive{
				Type:     constants.IncentiveTypePromotion,
				SourceID: promo.ID,
				Label:    promo.Name,
				Amount:   models.NewMoneyFromDecimal(discount),
			})
			breakdown.PendingUsages = append(breakdown.PendingUsages, models.PromotionUsage{
				PromotionID:    promo.ID,
				UserID:         userID,
				DiscountAmount: models.NewMoneyFromDecimal(discount),
			})
			break
		}
		breakdown.Lines = append(breakdown.Lines, line)
	}

	runningTotal := originalTotal.Sub(promotionDiscount)
	codeDiscount := decimal.Zero

	trimmed := strings.TrimSpace(code)
	if trimmed != "" {
		row, err := codeRepo.GetByCodeForUpdate(trimmed)
		if err != nil {
			return nil, err
		}
		if row == nil || !row.ActiveAt(now) {
			return nil, ErrDiscountCodeInvalid
		}
		if runningTotal.LessThan(row.MinOrderAmount.Decimal) {
			return nil, ErrDiscountCodeMinOrder
		}
		switch {
		case row.DiscountPercent != nil:
			codeDiscount = runningTotal.Mul(row.DiscountPercent.Decimal).
				Div(decimal.NewFromInt(100)).Round(2)
		case row.DiscountAmount != nil:
			codeDiscount = row.DiscountAmount.Decimal
		}
		if codeDiscount.GreaterThan(runningTotal) {
			codeDiscount = runningTotal
		}
		if codeDiscount.LessThan(decimal.Zero) {
			codeDiscount = decimal.Zero
		}
		if err := codeRepo.IncrementUsedCount(row.ID); err != nil {
			return nil, err
		}
		codeID := row.ID
		breakdown.CodeID = &codeID
		breakdown.Applied = append(breakdown.Applied, AppliedIncentive{
			Type:     constants.IncentiveTypeCode,
			SourceID: row.ID,
			Label:    row.Code,
			Amount:   models.NewMoneyFromDecimal(codeDiscount),
		})
	}

	finalTotal := runningTotal.Sub(codeDiscount)
	if finalTotal.LessThan(decimal.Zero) {
		finalTotal = decimal.Zero
	}

	breakdown.PromotionDiscount = promotionDiscount
	breakdown.CodeDiscount = codeDiscount
	breakdown.TotalDiscount = promotionDiscount.Add(codeDiscount)
	breakdown.FinalTotal = finalTotal
	return breakdown, nil
}
