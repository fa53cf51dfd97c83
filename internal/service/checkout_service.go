package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/logger"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/queue"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService 结算服务：一个事务内完成校验、优惠、扣减与下单
type CheckoutService struct {
	cartRepo         repository.CartRepository
	skuRepo          repository.SKURepository
	orderRepo        repository.OrderRepository
	deliveryRepo     repository.DeliveryRepository
	usageRepo        repository.PromotionUsageRepository
	incentiveService *IncentiveService
	loyaltyService   *LoyaltyService
	queueClient      *queue.Client
	estimateHours    int
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartRepo repository.CartRepository, skuRepo repository.SKURepository, orderRepo repository.OrderRepository, deliveryRepo repository.DeliveryRepository, usageRepo repository.PromotionUsageRepository, incentiveService *IncentiveService, loyaltyService *LoyaltyService, queueClient *queue.Client, estimateHours int) *CheckoutService {
	if estimateHours <= 0 {
		estimateHours = constants.DeliveryEstimateHours
	}
	return &CheckoutService{
		cartRepo:         cartRepo,
		skuRepo:          skuRepo,
		orderRepo:        orderRepo,
		deliveryRepo:     deliveryRepo,
		usageRepo:        usageRepo,
		incentiveService: incentiveService,
		loyaltyService:   loyaltyService,
		queueClient:      queueClient,
		estimateHours:    estimateHours,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID       uint
	DiscountCode string
	PointsToUse  int64
	ClientIP     string
}

// Checkout 结算下单。
//
// 全流程在一个数据库事务里：购物车校验、库存加锁复核、
// 优惠占用、积分抵扣、订单与物流创建、清空购物车。
// 库存只复核不扣减，扣减由外部库存系统负责。
// 任一步失败整体回滚，计数与余额不留残留。
func (s *CheckoutService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}
	now := time.Now()

	var order *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		skuRepo := s.skuRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		deliveryRepo := s.deliveryRepo.WithTx(tx)
		usageRepo := s.usageRepo.WithTx(tx)

		cart, err := cartRepo.GetByUser(input.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		// 加锁复核库存，首个不足的 SKU 直接报错
		for i := range cart.Items {
			item := &cart.Items[i]
			locked, err := skuRepo.GetByIDForUpdate(item.SKUID)
			if err != nil {
				return err
			}
			if locked == nil {
				return ErrSKUNotFound
			}
			if !locked.IsAvailable {
				return fmt.Errorf("%w: %s", ErrSKUUnavailable, locked.SKUCode)
			}
			if locked.StockQuantity < item.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, locked.SKUCode)
			}
		}

		breakdown, err := s.incentiveService.SelectIncentives(tx, input.UserID, cart.Items, input.DiscountCode, now)
		if err != nil {
			return err
		}

		finalTotal := breakdown.FinalTotal
		loyaltyDiscount := decimal.Zero
		pointsUsed := decimal.Zero
		if input.PointsToUse > 0 {
			redeem, err := s.loyaltyService.RedeemPoints(tx, input.UserID, input.PointsToUse, finalTotal, nil)
			if err != nil {
				return err
			}
			loyaltyDiscount = redeem.DiscountAmount
			pointsUsed = redeem.PointsUsed
			finalTotal = finalTotal.Sub(loyaltyDiscount)
			if finalTotal.LessThan(decimal.Zero) {
				finalTotal = decimal.Zero
			}
		}

		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for i := range cart.Items {
			item := &cart.Items[i]
			unit := EffectiveUnitPrice(item.SKU)
			lineSubtotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
			lineDiscount := decimal.Zero
			var promotionID *uint
			if i < len(breakdown.Lines) {
				lineDiscount = breakdown.Lines[i].Discount
				promotionID = breakdown.Lines[i].PromotionID
			}
			lineTotal := lineSubtotal.Sub(lineDiscount)
			if lineTotal.LessThan(decimal.Zero) {
				lineTotal = decimal.Zero
			}
			orderItems = append(orderItems, models.OrderItem{
				SKUID:        item.SKUID,
				SellerID:     item.SKU.Product.SellerID,
				SKUSnapshot:  buildSKUSnapshot(item.SKU, unit),
				Quantity:     item.Quantity,
				UnitPrice:    models.NewMoneyFromDecimal(unit),
				LineSubtotal: models.NewMoneyFromDecimal(lineSubtotal),
				LineDiscount: models.NewMoneyFromDecimal(lineDiscount),
				LineTotal:    models.NewMoneyFromDecimal(lineTotal),
				PromotionID:  promotionID,
			})
		}

		applied := breakdown.Applied
		if loyaltyDiscount.GreaterThan(decimal.Zero) {
			applied = append(applied, AppliedIncentive{
				Type:   constants.IncentiveTypeLoyalty,
				Label:  "loyalty_points",
				Amount: models.NewMoneyFromDecimal(loyaltyDiscount),
			})
		}

		order = &models.Order{
			OrderNo:           generateOrderNo(input.UserID, now),
			UserID:            input.UserID,
			Status:            constants.OrderStatusPending,
			Subtotal:          models.NewMoneyFromDecimal(breakdown.OriginalTotal),
			PromotionDiscount: models.NewMoneyFromDecimal(breakdown.PromotionDiscount),
			CodeDiscount:      models.NewMoneyFromDecimal(breakdown.CodeDiscount),
			LoyaltyDiscount:   models.NewMoneyFromDecimal(loyaltyDiscount),
			TotalAmount:       models.NewMoneyFromDecimal(finalTotal),
			Currency:          constants.DefaultCurrency,
			DiscountCodeID:    breakdown.CodeID,
			AppliedIncentives: appliedToJSONArray(applied),
			CartSnapshot: buildCartSnapshot(orderItems, applied, models.JSON{
				"subtotal":           breakdown.OriginalTotal.StringFixed(2),
				"promotion_discount": breakdown.PromotionDiscount.StringFixed(2),
				"code_discount":      breakdown.CodeDiscount.StringFixed(2),
				"loyalty_discount":   loyaltyDiscount.StringFixed(2),
				"total_amount":       finalTotal.StringFixed(2),
			}),
			LoyaltyPointsUsed: models.NewMoneyFromDecimal(pointsUsed),
			Items:             orderItems,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		for i := range breakdown.PendingUsages {
			usage := breakdown.PendingUsages[i]
			usage.OrderID = order.ID
			if err := usageRepo.Create(&usage); err != nil {
				return err
			}
		}

		delivery := &models.Delivery{
			OrderID:           order.ID,
			EstimatedDelivery: now.Add(time.Duration(s.estimateHours) * time.Hour),
		}
		if err := deliveryRepo.Create(delivery); err != nil {
			return err
		}
		order.Delivery = delivery

		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("updated_at", now).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("checkout_completed",
		"order_no", order.OrderNo,
		"user_id", input.UserID,
		"total", order.TotalAmount.String(),
		"client_ip", input.ClientIP,
	)
	return order, nil
}

// buildSKUSnapshot 下单时刻的商品快照
func buildSKUSnapshot(sku *models.SKU, unit decimal.Decimal) models.JSON {
	snapshot := models.JSON{
		"sku_id":     sku.ID,
		"sku_code":   sku.SKUCode,
		"unit_price": unit.StringFixed(2),
	}
	if sku.Product != nil {
		snapshot["product_id"] = sku.Product.ID
		snapshot["title"] = sku.Product.Title
		snapshot["base_price"] = sku.Product.BasePrice.Decimal.StringFixed(2)
		if sku.Product.Brand != nil {
			snapshot["brand"] = sku.Product.Brand.Name
		}
	}
	if len(sku.VariantAttributes) > 0 {
		snapshot["variant_attributes"] = map[string]interface{}(sku.VariantAttributes)
	}
	return snapshot
}

// buildCartSnapshot 订单级不可变快照：行、优惠明细与合计一体落库
func buildCartSnapshot(items []models.OrderItem, applied []AppliedIncentive, totals models.JSON) models.JSON {
	lines := make([]interface{}, 0, len(items))
	for i := range items {
		item := &items[i]
		lines = append(lines, map[string]interface{}{
			"sku_snapshot":  map[string]interface{}(item.SKUSnapshot),
			"quantity":      item.Quantity,
			"unit_price":    item.UnitPrice.Decimal.StringFixed(2),
			"line_subtotal": item.LineSubtotal.Decimal.StringFixed(2),
			"line_discount": item.LineDiscount.Decimal.StringFixed(2),
			"line_total":    item.LineTotal.Decimal.StringFixed(2),
		})
	}
	incentives := make([]interface{}, 0, len(applied))
	for _, entry := range appliedToJSONArray(applied) {
		incentives = append(incentives, entry)
	}
	return models.JSON{
		"items":      lines,
		"incentives": incentives,
		"totals":     map[string]interface{}(totals),
	}
}

// appliedToJSONArray 优惠明细转订单快照
func appliedToJSONArray(applied []AppliedIncentive) models.JSONArray {
	out := make(models.JSONArray, 0, len(applied))
	for _, entry := range applied {
		out = append(out, map[string]interface{}{
			"type":      entry.Type,
			"source_id": entry.SourceID,
			"label":     entry.Label,
			"amount":    entry.Amount.String(),
		})
	}
	return out
}

// generateOrderNo 生成订单号：KK + 时间戳 + 用户ID + 随机尾缀
func generateOrderNo(userID uint, now time.Time) string {
	return fmt.Sprintf("%s%s%d%s",
		constants.OrderNoPrefix,
		now.Format("20060102150405"),
		userID,
		randNumeric(4),
	)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
