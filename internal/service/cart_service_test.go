package service

import (
	"errors"
	"testing"

	"github.com/kariakoo/marketplace/internal/repository"

	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewSKURepository(db),
	)
}

func TestAddItemMergesQuantity(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "phone", 10000, 10)

	if _, err := svc.AddItem(user.ID, sku.ID, 2); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	view, err := svc.AddItem(user.ID, sku.ID, 3)
	if err != nil {
		t.Fatalf("AddItem merge error: %v", err)
	}
	if len(view.Cart.Items) != 1 || view.Cart.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %+v", view.Cart.Items)
	}
	mustDecimal(t, view.Subtotal.Decimal, 50000, "subtotal")
}

func TestAddItemRejectsOverStock(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "phone", 10000, 3)

	if _, err := svc.AddItem(user.ID, sku.ID, 2); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.AddItem(user.ID, sku.ID, 2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "phone", 10000, 3)

	if _, err := svc.AddItem(user.ID, sku.ID, 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
}

func TestUpdateItemQuantityZeroRemoves(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	sku := createTestProduct(t, db, "phone", 10000, 10)

	if _, err := svc.AddItem(user.ID, sku.ID, 2); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	view, err := svc.UpdateItemQuantity(user.ID, sku.ID, 0)
	if err != nil {
		t.Fatalf("UpdateItemQuantity error: %v", err)
	}
	if len(view.Cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", view.Cart.Items)
	}
}

func TestRemoveAndClear(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	user := createTestUser(t, db, "buyer@example.com", 0)
	skuA := createTestProduct(t, db, "phone", 10000, 10)
	skuB := createTestProduct(t, db, "radio", 5000, 10)

	if _, err := svc.AddItem(user.ID, skuA.ID, 1); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.AddItem(user.ID, skuB.ID, 1); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	view, err := svc.RemoveItem(user.ID, skuA.ID)
	if err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	if len(view.Cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Cart.Items))
	}
	if err := svc.ClearCart(user.ID); err != nil {
		t.Fatalf("ClearCart error: %v", err)
	}
	view, err = svc.GetCart(user.ID)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(view.Cart.Items) != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}
