package service

import (
	"errors"
	"testing"
	"time"

	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"gorm.io/gorm"
)

func newIncentiveService(db *gorm.DB) *IncentiveService {
	return NewIncentiveService(
		repository.NewPromotionRepository(db),
		repository.NewPromotionUsageRepository(db),
		repository.NewDiscountCodeRepository(db),
	)
}

func cartItemsFor(sku models.SKU, quantity int) []models.CartItem {
	s := sku
	return []models.CartItem{{SKUID: s.ID, Quantity: quantity, SKU: &s}}
}

func TestSelectIncentivesPromotionThenCode(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "phone", 50000, 10)
	createTestPromotion(t, db, "ten off", 10, 200, sku.ProductID)
	createTestDiscountCode(t, db, "SAVE5000", 5000, 50000)

	breakdown, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 2), "SAVE5000", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	mustDecimal(t, breakdown.OriginalTotal, 100000, "original total")
	mustDecimal(t, breakdown.PromotionDiscount, 10000, "promotion discount")
	mustDecimal(t, breakdown.CodeDiscount, 5000, "code discount")
	mustDecimal(t, breakdown.FinalTotal, 85000, "final total")
	if len(breakdown.Applied) != 2 {
		t.Fatalf("expected 2 applied entries, got %d", len(breakdown.Applied))
	}
	if len(breakdown.PendingUsages) != 1 {
		t.Fatalf("expected 1 pending usage, got %d", len(breakdown.PendingUsages))
	}

	var promotion models.Promotion
	if err := db.First(&promotion).Error; err != nil {
		t.Fatalf("reload promotion failed: %v", err)
	}
	if promotion.UsesCount != 1 {
		t.Fatalf("expected uses_count 1, got %d", promotion.UsesCount)
	}
	mustDecimal(t, promotion.TotalBurn.Decimal, 10000, "total burn")
}

func TestSelectIncentivesHigherPriorityWins(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "radio", 10000, 10)
	createTestPromotion(t, db, "normal twenty", 20, 100, sku.ProductID)
	winner := createTestPromotion(t, db, "priority ten", 10, 200, sku.ProductID)

	breakdown, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	// 优先级高的活动即使折扣更低也先命中
	mustDecimal(t, breakdown.PromotionDiscount, 1000, "promotion discount")
	if breakdown.Lines[0].PromotionID == nil || *breakdown.Lines[0].PromotionID != winner.ID {
		t.Fatalf("expected promotion %d to win, got %+v", winner.ID, breakdown.Lines[0].PromotionID)
	}
}

func TestSelectIncentivesPerUserCapWithinSelection(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	skuA := createTestProduct(t, db, "tv", 10000, 10)
	skuB := createTestProduct(t, db, "fan", 20000, 10)

	promotion := createTestPromotion(t, db, "category wide", 10, 100, skuA.ProductID)
	if err := db.Model(&promotion).Update("max_uses_per_user", 1).Error; err != nil {
		t.Fatalf("update cap failed: %v", err)
	}
	if err := db.Create(&models.PromotionTarget{
		PromotionID: promotion.ID,
		TargetType:  "product",
		TargetID:    skuB.ProductID,
	}).Error; err != nil {
		t.Fatalf("add second target failed: %v", err)
	}

	a := skuA
	b := skuB
	items := []models.CartItem{
		{SKUID: a.ID, Quantity: 1, SKU: &a},
		{SKUID: b.ID, Quantity: 1, SKU: &b},
	}
	breakdown, err := svc.SelectIncentives(db, user.ID, items, "", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	// 每人上限 1：第一行占用后第二行拿不到
	mustDecimal(t, breakdown.PromotionDiscount, 1000, "promotion discount")
	if breakdown.Lines[1].PromotionID != nil {
		t.Fatalf("second line should not get the promotion")
	}
}

func TestSelectIncentivesNoFallthroughWhenTopMatchGated(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "charger", 1000, 10)

	gated := createTestPromotion(t, db, "gated ten", 10, 200, sku.ProductID)
	if err := db.Model(&gated).Update("min_order_amount", 5000).Error; err != nil {
		t.Fatalf("update min order failed: %v", err)
	}
	open := createTestPromotion(t, db, "open twenty", 20, 100, sku.ProductID)

	breakdown, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	// 排序最高的活动不满足门槛时该行整体放弃优惠，不降级到低优先级活动
	mustDecimal(t, breakdown.PromotionDiscount, 0, "promotion discount")
	if breakdown.Lines[0].PromotionID != nil {
		t.Fatalf("line should receive no promotion, got %d", *breakdown.Lines[0].PromotionID)
	}
	var stored models.Promotion
	if err := db.First(&stored, open.ID).Error; err != nil {
		t.Fatalf("reload open promotion failed: %v", err)
	}
	if stored.UsesCount != 0 {
		t.Fatalf("lower-priority promotion must stay unused, uses_count %d", stored.UsesCount)
	}
}

func TestSelectIncentivesAppliedEntryPerLine(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	skuA := createTestProduct(t, db, "kettle", 10000, 10)
	skuB := createTestProduct(t, db, "toaster", 20000, 10)

	promotion := createTestPromotion(t, db, "both lines", 10, 100, skuA.ProductID)
	if err := db.Create(&models.PromotionTarget{
		PromotionID: promotion.ID,
		TargetType:  "product",
		TargetID:    skuB.ProductID,
	}).Error; err != nil {
		t.Fatalf("add second target failed: %v", err)
	}

	a := skuA
	b := skuB
	items := []models.CartItem{
		{SKUID: a.ID, Quantity: 1, SKU: &a},
		{SKUID: b.ID, Quantity: 1, SKU: &b},
	}
	breakdown, err := svc.SelectIncentives(db, user.ID, items, "", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	// 同一活动命中两行时记两条明细，各带本行金额
	if len(breakdown.Applied) != 2 {
		t.Fatalf("expected 2 applied entries, got %d", len(breakdown.Applied))
	}
	mustDecimal(t, breakdown.Applied[0].Amount.Decimal, 1000, "first line entry")
	mustDecimal(t, breakdown.Applied[1].Amount.Decimal, 2000, "second line entry")
	if breakdown.Applied[0].SourceID != promotion.ID || breakdown.Applied[1].SourceID != promotion.ID {
		t.Fatalf("entries should reference promotion %d", promotion.ID)
	}
}

func TestSelectIncentivesCodeMaxUsesExhausted(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "mixer", 30000, 10)
	code := createTestDiscountCode(t, db, "LASTONE", 5000, 0)
	if err := db.Model(&code).Updates(map[string]interface{}{
		"max_uses":   1,
		"uses_count": 1,
	}).Error; err != nil {
		t.Fatalf("exhaust code failed: %v", err)
	}

	_, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "LASTONE", time.Now())
	if !errors.Is(err, ErrDiscountCodeInvalid) {
		t.Fatalf("expected ErrDiscountCodeInvalid, got %v", err)
	}
}

func TestSelectIncentivesBurnCapExhausted(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "blender", 10000, 10)
	promotion := createTestPromotion(t, db, "burned out", 10, 100, sku.ProductID)
	if err := db.Model(&promotion).Updates(map[string]interface{}{
		"max_total_burn": 500,
		"total_burn":     500,
	}).Error; err != nil {
		t.Fatalf("exhaust burn cap failed: %v", err)
	}

	breakdown, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	mustDecimal(t, breakdown.PromotionDiscount, 0, "promotion discount")
	mustDecimal(t, breakdown.FinalTotal, 10000, "final total")
}

func TestSelectIncentivesMinOrderSilentSkip(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "cable", 1000, 10)
	promotion := createTestPromotion(t, db, "big spender", 10, 100, sku.ProductID)
	if err := db.Model(&promotion).Update("min_order_amount", 5000).Error; err != nil {
		t.Fatalf("update min order failed: %v", err)
	}

	breakdown, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "", time.Now())
	if err != nil {
		t.Fatalf("expected silent skip, got error: %v", err)
	}
	mustDecimal(t, breakdown.PromotionDiscount, 0, "promotion discount")
	mustDecimal(t, breakdown.FinalTotal, 1000, "final total")
}

func TestSelectIncentivesMaxDiscountCap(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "laptop", 100000, 10)
	promotion := createTestPromotion(t, db, "capped", 50, 100, sku.ProductID)
	if err := db.Model(&promotion).Update("max_discount_cap", 20000).Error; err != nil {
		t.Fatalf("update cap failed: %v", err)
	}

	breakdown, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	mustDecimal(t, breakdown.PromotionDiscount, 20000, "capped discount")
}

func TestSelectIncentivesInvalidCode(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "mouse", 5000, 10)

	_, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "NOPE", time.Now())
	if !errors.Is(err, ErrDiscountCodeInvalid) {
		t.Fatalf("expected ErrDiscountCodeInvalid, got %v", err)
	}
}

func TestSelectIncentivesCodeMinOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "case", 5000, 10)
	createTestDiscountCode(t, db, "BIG", 1000, 50000)

	_, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "BIG", time.Now())
	if !errors.Is(err, ErrDiscountCodeMinOrder) {
		t.Fatalf("expected ErrDiscountCodeMinOrder, got %v", err)
	}
}

func TestSelectIncentivesCodeCaseInsensitive(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newIncentiveService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "charger", 10000, 10)
	createTestDiscountCode(t, db, "WEEKEND", 1000, 0)

	breakdown, err := svc.SelectIncentives(db, user.ID, cartItemsFor(sku, 1), "weekend", time.Now())
	if err != nil {
		t.Fatalf("SelectIncentives error: %v", err)
	}
	mustDecimal(t, breakdown.CodeDiscount, 1000, "code discount")
}
