package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/queue"
	"github.com/kariakoo/marketplace/internal/repository"

	"gorm.io/gorm"
)

func newCheckoutService(t *testing.T, db *gorm.DB) *CheckoutService {
	t.Helper()

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	return NewCheckoutService(
		repository.NewCartRepository(db),
		repository.NewSKURepository(db),
		repository.NewOrderRepository(db),
		repository.NewDeliveryRepository(db),
		repository.NewPromotionUsageRepository(db),
		newIncentiveService(db),
		newLoyaltyService(db),
		queueClient,
		constants.DeliveryEstimateHours,
	)
}

func TestCheckoutFullFlow(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCheckoutService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 50000)
	sku := createTestProduct(t, db, "phone", 50000, 5)
	createTestPromotion(t, db, "ten off", 10, 200, sku.ProductID)
	createTestDiscountCode(t, db, "SAVE5000", 5000, 50000)
	addCartItem(t, db, user.ID, sku, 2)

	order, err := svc.Checkout(CheckoutInput{
		UserID:       user.ID,
		DiscountCode: "SAVE5000",
		PointsToUse:  1000,
	})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	if !strings.HasPrefix(order.OrderNo, constants.OrderNoPrefix) {
		t.Fatalf("expected %s prefix, got %s", constants.OrderNoPrefix, order.OrderNo)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	mustDecimal(t, order.Subtotal.Decimal, 100000, "subtotal")
	mustDecimal(t, order.PromotionDiscount.Decimal, 10000, "promotion discount")
	mustDecimal(t, order.CodeDiscount.Decimal, 5000, "code discount")
	mustDecimal(t, order.LoyaltyDiscount.Decimal, 1000, "loyalty discount")
	mustDecimal(t, order.TotalAmount.Decimal, 84000, "total amount")
	if order.Currency != constants.DefaultCurrency {
		t.Fatalf("expected %s, got %s", constants.DefaultCurrency, order.Currency)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	item := order.Items[0]
	mustDecimal(t, item.UnitPrice.Decimal, 50000, "unit price")
	mustDecimal(t, item.LineDiscount.Decimal, 10000, "line discount")
	if item.SKUSnapshot["title"] != "phone" {
		t.Fatalf("expected snapshot title, got %+v", item.SKUSnapshot)
	}
	if len(order.AppliedIncentives) != 3 {
		t.Fatalf("expected 3 applied incentives, got %d", len(order.AppliedIncentives))
	}

	// 库存只复核不扣减，扣减属于外部库存系统
	var reloadedSKU models.SKU
	if err := db.First(&reloadedSKU, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloadedSKU.StockQuantity != 5 {
		t.Fatalf("expected stock untouched at 5, got %d", reloadedSKU.StockQuantity)
	}

	// 购物车清空
	var itemCount int64
	if err := db.Model(&models.CartItem{}).Where("deleted_at IS NULL").Count(&itemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected empty cart, got %d rows", itemCount)
	}

	// 活动使用记录带订单号
	var usage models.PromotionUsage
	if err := db.First(&usage).Error; err != nil {
		t.Fatalf("load usage failed: %v", err)
	}
	if usage.OrderID != order.ID {
		t.Fatalf("expected usage bound to order %d, got %d", order.ID, usage.OrderID)
	}

	// 物流记录与预计送达
	var delivery models.Delivery
	if err := db.Where("order_id = ?", order.ID).First(&delivery).Error; err != nil {
		t.Fatalf("load delivery failed: %v", err)
	}
	if delivery.EstimatedDelivery.Before(order.CreatedAt) {
		t.Fatalf("estimated delivery should be in the future")
	}

	// 积分余额扣减
	var reloadedUser models.User
	if err := db.First(&reloadedUser, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	mustDecimal(t, reloadedUser.LoyaltyPointsBalance.Decimal, 49000, "points balance")
}

func TestCheckoutCartSnapshotWithBrand(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCheckoutService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "speaker", 20000, 5)

	brand := models.Brand{Name: "Simba Audio"}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", sku.ProductID).
		Update("brand_id", brand.ID).Error; err != nil {
		t.Fatalf("attach brand failed: %v", err)
	}
	addCartItem(t, db, user.ID, sku, 2)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	// 行级快照带品牌与下单时基础价
	item := order.Items[0]
	if item.SKUSnapshot["brand"] != "Simba Audio" {
		t.Fatalf("expected brand in sku snapshot, got %+v", item.SKUSnapshot)
	}
	if item.SKUSnapshot["base_price"] != "20000.00" {
		t.Fatalf("expected base price in sku snapshot, got %+v", item.SKUSnapshot)
	}

	// 订单级快照：行 + 优惠明细 + 合计一体落库
	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	lines, ok := stored.CartSnapshot["items"].([]interface{})
	if !ok || len(lines) != 1 {
		t.Fatalf("expected 1 snapshot line, got %+v", stored.CartSnapshot["items"])
	}
	totals, ok := stored.CartSnapshot["totals"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected totals in cart snapshot, got %+v", stored.CartSnapshot)
	}
	if totals["total_amount"] != "40000.00" {
		t.Fatalf("expected total 40000.00, got %v", totals["total_amount"])
	}
	if _, ok := stored.CartSnapshot["incentives"]; !ok {
		t.Fatalf("expected incentives key in cart snapshot")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCheckoutService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	if err := db.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	_, err := svc.Checkout(CheckoutInput{UserID: user.ID})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutMissingCart(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCheckoutService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)

	_, err := svc.Checkout(CheckoutInput{UserID: user.ID})
	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestCheckoutInsufficientStockNamesSKU(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCheckoutService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "scarce", 1000, 1)
	addCartItem(t, db, user.ID, sku, 3)

	_, err := svc.Checkout(CheckoutInput{UserID: user.ID})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if !strings.Contains(err.Error(), sku.SKUCode) {
		t.Fatalf("expected sku code in error, got %v", err)
	}
}

func TestCheckoutRollsBackCountersOnLoyaltyFailure(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCheckoutService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 100)
	sku := createTestProduct(t, db, "phone", 50000, 5)
	promotion := createTestPromotion(t, db, "ten off", 10, 200, sku.ProductID)
	addCartItem(t, db, user.ID, sku, 1)

	// 积分余额不足：优惠占用发生在前，必须随事务回滚
	_, err := svc.Checkout(CheckoutInput{UserID: user.ID, PointsToUse: 1000})
	if !errors.Is(err, ErrLoyaltyInsufficientPoints) {
		t.Fatalf("expected ErrLoyaltyInsufficientPoints, got %v", err)
	}

	var reloaded models.Promotion
	if err := db.First(&reloaded, promotion.ID).Error; err != nil {
		t.Fatalf("reload promotion failed: %v", err)
	}
	if reloaded.UsesCount != 0 {
		t.Fatalf("expected uses_count rolled back to 0, got %d", reloaded.UsesCount)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}

	var reloadedSKU models.SKU
	if err := db.First(&reloadedSKU, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloadedSKU.StockQuantity != 5 {
		t.Fatalf("expected stock untouched, got %d", reloadedSKU.StockQuantity)
	}
}

func TestCheckoutFinalTotalFlooredAtZero(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCheckoutService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "sticker", 1000, 5)
	createTestDiscountCode(t, db, "MEGA", 50000, 0)
	addCartItem(t, db, user.ID, sku, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, DiscountCode: "MEGA"})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	mustDecimal(t, order.TotalAmount.Decimal, 0, "floored total")
}
