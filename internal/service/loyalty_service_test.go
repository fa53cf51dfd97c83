package service

import (
	"errors"
	"testing"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newLoyaltyService(db *gorm.DB) *LoyaltyService {
	return NewLoyaltyService(
		repository.NewUserRepository(db),
		repository.NewLoyaltyRepository(db),
	)
}

func TestRedeemPointsCappedAtHalfCart(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newLoyaltyService(db)
	user := createTestUser(t, db, "points@example.com", 5000)

	result, err := svc.RedeemPoints(db, user.ID, 2000, decimal.NewFromInt(3000), nil)
	if err != nil {
		t.Fatalf("RedeemPoints error: %v", err)
	}
	// 2000 分撞上 50% 上限（1500），余额只扣实际抵扣部分
	mustDecimal(t, result.DiscountAmount, 1500, "discount amount")
	mustDecimal(t, result.PointsUsed, 1500, "points used")
	mustDecimal(t, result.RemainingPoints, 3500, "remaining points")

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	mustDecimal(t, reloaded.LoyaltyPointsBalance.Decimal, 3500, "stored balance")

	var txn models.LoyaltyTransaction
	if err := db.Where("user_id = ?", user.ID).First(&txn).Error; err != nil {
		t.Fatalf("load loyalty txn failed: %v", err)
	}
	if txn.Kind != constants.LoyaltyTxnRedeem {
		t.Fatalf("expected redeem txn, got %s", txn.Kind)
	}
	mustDecimal(t, txn.Points.Decimal, -1500, "txn points")
}

func TestRedeemPointsBelowMinimum(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newLoyaltyService(db)
	user := createTestUser(t, db, "points@example.com", 5000)

	_, err := svc.RedeemPoints(db, user.ID, 999, decimal.NewFromInt(10000), nil)
	if !errors.Is(err, ErrLoyaltyMinRedemption) {
		t.Fatalf("expected ErrLoyaltyMinRedemption, got %v", err)
	}
}

func TestRedeemPointsInsufficientBalance(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newLoyaltyService(db)
	user := createTestUser(t, db, "points@example.com", 500)

	_, err := svc.RedeemPoints(db, user.ID, 1000, decimal.NewFromInt(10000), nil)
	if !errors.Is(err, ErrLoyaltyInsufficientPoints) {
		t.Fatalf("expected ErrLoyaltyInsufficientPoints, got %v", err)
	}
}

func TestRedeemPointsRejectsZeroCart(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newLoyaltyService(db)
	user := createTestUser(t, db, "points@example.com", 5000)

	_, err := svc.RedeemPoints(db, user.ID, 1000, decimal.Zero, nil)
	if !errors.Is(err, ErrLoyaltyCartTooLow) {
		t.Fatalf("expected ErrLoyaltyCartTooLow, got %v", err)
	}
}

func TestGrantPointsWritesLedger(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newLoyaltyService(db)
	user := createTestUser(t, db, "points@example.com", 100)

	if err := svc.GrantPoints(db, user.ID, decimal.NewFromInt(1000), constants.LoyaltyTxnReferralReward, nil, "referral reward"); err != nil {
		t.Fatalf("GrantPoints error: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	mustDecimal(t, reloaded.LoyaltyPointsBalance.Decimal, 1100, "balance after grant")

	var count int64
	if err := db.Model(&models.LoyaltyTransaction{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count txns failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 ledger row, got %d", count)
	}
}
