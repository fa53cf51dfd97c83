package service

import (
	"errors"
	"testing"
	"time"

	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/repository"
)

func baseDiscountCodeInput(code string) DiscountCodeInput {
	now := time.Now()
	flat := models.NewMoneyFromInt(5000)
	return DiscountCodeInput{
		Code:           code,
		DiscountAmount: &flat,
		MinOrderAmount: models.NewMoneyFromInt(0),
		StartAt:        now,
		EndAt:          now.Add(24 * time.Hour),
	}
}

func TestDiscountCodeAdminCreateUpperCasesCode(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDiscountCodeAdminService(repository.NewDiscountCodeRepository(db))

	code, err := svc.Create(baseDiscountCodeInput("  save5000 "))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if code.Code != "SAVE5000" {
		t.Fatalf("expected code SAVE5000, got %q", code.Code)
	}
}

func TestDiscountCodeAdminExactlyOneValue(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDiscountCodeAdminService(repository.NewDiscountCodeRepository(db))

	input := baseDiscountCodeInput("BOTH")
	pct := models.NewMoneyFromInt(10)
	input.DiscountPercent = &pct
	if _, err := svc.Create(input); !errors.Is(err, ErrDiscountValueInvalid) {
		t.Fatalf("expected ErrDiscountValueInvalid when both set, got %v", err)
	}

	input = baseDiscountCodeInput("NEITHER")
	input.DiscountAmount = nil
	if _, err := svc.Create(input); !errors.Is(err, ErrDiscountValueInvalid) {
		t.Fatalf("expected ErrDiscountValueInvalid when neither set, got %v", err)
	}

	input = baseDiscountCodeInput("BIGPCT")
	input.DiscountAmount = nil
	over := models.NewMoneyFromInt(101)
	input.DiscountPercent = &over
	if _, err := svc.Create(input); !errors.Is(err, ErrDiscountValueInvalid) {
		t.Fatalf("expected ErrDiscountValueInvalid for percent over 100, got %v", err)
	}
}

func TestDiscountCodeAdminDuplicateCode(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDiscountCodeAdminService(repository.NewDiscountCodeRepository(db))

	if _, err := svc.Create(baseDiscountCodeInput("WEEKEND")); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(baseDiscountCodeInput("weekend")); !errors.Is(err, ErrDiscountCodeExists) {
		t.Fatalf("expected ErrDiscountCodeExists, got %v", err)
	}
}

func TestDiscountCodeAdminUpdateKeepsUsesCount(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDiscountCodeAdminService(repository.NewDiscountCodeRepository(db))

	created, err := svc.Create(baseDiscountCodeInput("WEEKEND"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := db.Model(&models.DiscountCode{}).
		Where("id = ?", created.ID).
		Update("uses_count", 3).Error; err != nil {
		t.Fatalf("seed uses_count failed: %v", err)
	}

	input := baseDiscountCodeInput("WEEKEND")
	input.Description = "updated"
	updated, err := svc.Update(created.ID, input)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Description != "updated" {
		t.Fatalf("description not updated: %q", updated.Description)
	}

	var stored models.DiscountCode
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("load code failed: %v", err)
	}
	if stored.UsesCount != 3 {
		t.Fatalf("uses_count overwritten: got %d", stored.UsesCount)
	}
}
