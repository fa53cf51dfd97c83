package service

import (
	"errors"
	"testing"
	"time"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/queue"
	"github.com/kariakoo/marketplace/internal/repository"

	"gorm.io/gorm"
)

func newOrderStatusService(t *testing.T, db *gorm.DB) *OrderStatusService {
	t.Helper()

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	return NewOrderStatusService(
		repository.NewOrderRepository(db),
		repository.NewDeliveryRepository(db),
		repository.NewUserRepository(db),
		repository.NewReferralRewardRepository(db),
		newLoyaltyService(db),
		queueClient,
	)
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uint, status string) models.Order {
	t.Helper()

	order := models.Order{
		OrderNo:     generateOrderNo(userID, time.Now()),
		UserID:      userID,
		Status:      status,
		Subtotal:    models.NewMoneyFromInt(10000),
		TotalAmount: models.NewMoneyFromInt(10000),
		Currency:    constants.DefaultCurrency,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Create(&models.Delivery{OrderID: order.ID, EstimatedDelivery: time.Now()}).Error; err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}
	return order
}

func TestIsTransitionAllowedTable(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusPaid, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusPaid, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCompleted, true},
		{constants.OrderStatusDisputed, constants.OrderStatusRefunded, true},
		{constants.OrderStatusCompleted, constants.OrderStatusCompleted, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPaid, false},
		{constants.OrderStatusRefunded, constants.OrderStatusCompleted, false},
	}
	for _, c := range cases {
		if got := isTransitionAllowed(c.from, c.to); got != c.want {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestTransitionRejectsSkippingStates(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderStatusService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPending)

	_, err := svc.MarkShipped(order.ID, "carrier", "TN1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderLifecycle(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderStatusService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPending)

	paid, err := svc.ConfirmPayment(order.ID, user.ID, "MPESA-123")
	if err != nil {
		t.Fatalf("ConfirmPayment error: %v", err)
	}
	if paid.PaidAt == nil || paid.PaymentReference != "MPESA-123" {
		t.Fatalf("payment fields not recorded: %+v", paid)
	}

	if _, err := svc.ConfirmOrder(order.ID); err != nil {
		t.Fatalf("ConfirmOrder error: %v", err)
	}
	shipped, err := svc.MarkShipped(order.ID, "bodaboda", "TN99")
	if err != nil {
		t.Fatalf("MarkShipped error: %v", err)
	}
	if shipped.ShippedAt == nil {
		t.Fatalf("shipped_at not set")
	}

	delivered, err := svc.RecordDeliveryProof(order.ID, "https://cdn.example.com/p.jpg")
	if err != nil {
		t.Fatalf("RecordDeliveryProof error: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("delivered_at not set")
	}
	var delivery models.Delivery
	if err := db.Where("order_id = ?", order.ID).First(&delivery).Error; err != nil {
		t.Fatalf("load delivery failed: %v", err)
	}
	if delivery.ActualDelivery == nil || delivery.DeliveryProof == "" {
		t.Fatalf("delivery proof not recorded: %+v", delivery)
	}

	completed, err := svc.CompleteOrder(order.ID, user.ID)
	if err != nil {
		t.Fatalf("CompleteOrder error: %v", err)
	}
	if completed.CompletedAt == nil || !completed.EscrowReleased {
		t.Fatalf("completion side effects missing: %+v", completed)
	}

	// 终态后再次完成必须被拒绝
	if _, err := svc.CompleteOrder(order.ID, user.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on double complete, got %v", err)
	}
}

func TestReferralRewardGrantedExactlyOnce(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderStatusService(t, db)
	referrer := createTestUser(t, db, "referrer@example.com", 0)
	referee := createTestUser(t, db, "referee@example.com", 0)
	if err := db.Model(&models.User{}).Where("id = ?", referee.ID).
		Update("referred_by_id", referrer.ID).Error; err != nil {
		t.Fatalf("bind referrer failed: %v", err)
	}

	first := createTestOrder(t, db, referee.ID, constants.OrderStatusDelivered)
	if _, err := svc.CompleteOrder(first.ID, referee.ID); err != nil {
		t.Fatalf("complete first order error: %v", err)
	}

	var referrerRow, refereeRow models.User
	if err := db.First(&referrerRow, referrer.ID).Error; err != nil {
		t.Fatalf("reload referrer failed: %v", err)
	}
	if err := db.First(&refereeRow, referee.ID).Error; err != nil {
		t.Fatalf("reload referee failed: %v", err)
	}
	mustDecimal(t, referrerRow.LoyaltyPointsBalance.Decimal, constants.ReferralRewardPoints, "referrer points")
	mustDecimal(t, refereeRow.LoyaltyPointsBalance.Decimal, constants.ReferralRewardPoints, "referee points")

	// 第二单完成不再发奖
	second := createTestOrder(t, db, referee.ID, constants.OrderStatusDelivered)
	if _, err := svc.CompleteOrder(second.ID, referee.ID); err != nil {
		t.Fatalf("complete second order error: %v", err)
	}
	if err := db.First(&referrerRow, referrer.ID).Error; err != nil {
		t.Fatalf("reload referrer failed: %v", err)
	}
	mustDecimal(t, referrerRow.LoyaltyPointsBalance.Decimal, constants.ReferralRewardPoints, "referrer points unchanged")

	var rewardCount int64
	if err := db.Model(&models.ReferralReward{}).Count(&rewardCount).Error; err != nil {
		t.Fatalf("count rewards failed: %v", err)
	}
	if rewardCount != 1 {
		t.Fatalf("expected 1 reward row, got %d", rewardCount)
	}
}

func TestCancelOrderLeavesStockUntouched(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderStatusService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "phone", 10000, 3)
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPending)
	if err := db.Create(&models.OrderItem{
		OrderID:      order.ID,
		SKUID:        sku.ID,
		SellerID:     sku.Product.SellerID,
		Quantity:     2,
		UnitPrice:    models.NewMoneyFromInt(10000),
		LineSubtotal: models.NewMoneyFromInt(20000),
		LineTotal:    models.NewMoneyFromInt(20000),
	}).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(order.ID, user.ID)
	if err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}

	// 库存归外部系统管理，取消不回补
	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.StockQuantity != 3 {
		t.Fatalf("expected stock untouched at 3, got %d", reloaded.StockQuantity)
	}
}

func TestConfirmPaymentRequiresReference(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderStatusService(t, db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	order := createTestOrder(t, db, user.ID, constants.OrderStatusPending)

	if _, err := svc.ConfirmPayment(order.ID, user.ID, "  "); !errors.Is(err, ErrPaymentRefRequired) {
		t.Fatalf("expected ErrPaymentRefRequired, got %v", err)
	}
}

func TestTransitionsRejectForeignUser(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderStatusService(t, db)
	owner := createTestUser(t, db, "owner@example.com", 0)
	other := createTestUser(t, db, "other@example.com", 0)
	order := createTestOrder(t, db, owner.ID, constants.OrderStatusPending)

	if _, err := svc.ConfirmPayment(order.ID, other.ID, "REF"); !errors.Is(err, ErrOrderAccessDenied) {
		t.Fatalf("expected ErrOrderAccessDenied, got %v", err)
	}
}
