package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupServiceTestDB 打开独立的内存库并迁移全部表，
// 同时接管 models.DB 供事务型服务使用。
func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.SellerProfile{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.SKU{},
		&models.Cart{},
		&models.CartItem{},
		&models.Promotion{},
		&models.PromotionTarget{},
		&models.PromotionUsage{},
		&models.DiscountCode{},
		&models.Order{},
		&models.OrderItem{},
		&models.Delivery{},
		&models.LoyaltyTransaction{},
		&models.ReferralReward{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	previous := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = previous })
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, points int64) models.User {
	t.Helper()

	user := models.User{
		Email:                email,
		PasswordHash:         "hash",
		DisplayName:          "tester",
		Status:               constants.UserStatusActive,
		ReferralCode:         GenerateReferralCode(),
		LoyaltyPointsBalance: models.NewMoneyFromInt(points),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

// createTestProduct 建一条完整的目录链：分类、卖家、商品、SKU
func createTestProduct(t *testing.T, db *gorm.DB, title string, basePrice int64, stock int) models.SKU {
	t.Helper()

	category := models.Category{Slug: fmt.Sprintf("cat-%s-%d", title, time.Now().UnixNano()), Name: "Electronics"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	seller := createTestUser(t, db, fmt.Sprintf("seller-%s-%d@example.com", title, time.Now().UnixNano()), 0)
	profile := models.SellerProfile{UserID: seller.ID, ShopName: "Test Shop", IsVerified: true}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create seller profile failed: %v", err)
	}
	product := models.Product{
		SellerID:           seller.ID,
		CategoryID:         category.ID,
		Title:              title,
		BasePrice:          models.NewMoneyFromInt(basePrice),
		VerificationStatus: constants.ProductVerificationApproved,
		IsActive:           true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	sku := models.SKU{
		ProductID:     product.ID,
		SKUCode:       fmt.Sprintf("%s-STD", title),
		StockQuantity: stock,
		IsAvailable:   true,
	}
	if err := db.Create(&sku).Error; err != nil {
		t.Fatalf("create sku failed: %v", err)
	}
	sku.Product = &product
	return sku
}

func addCartItem(t *testing.T, db *gorm.DB, userID uint, sku models.SKU, quantity int) models.Cart {
	t.Helper()

	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			t.Fatalf("create cart failed: %v", err)
		}
	} else if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	item := models.CartItem{CartID: cart.ID, SKUID: sku.ID, Quantity: quantity}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	return cart
}

// createTestPromotion 建一条商品级活动
func createTestPromotion(t *testing.T, db *gorm.DB, name string, percent int64, priority int, productID uint) models.Promotion {
	t.Helper()

	now := time.Now()
	promotion := models.Promotion{
		Name:            name,
		PromotionType:   constants.PromotionTypeTimed,
		DiscountPercent: models.NewMoneyFromInt(percent),
		Priority:        priority,
		StartAt:         now.Add(-time.Hour),
		EndAt:           now.Add(time.Hour),
		MaxUsesPerUser:  10,
		Targets: []models.PromotionTarget{
			{TargetType: constants.PromotionTargetProduct, TargetID: productID},
		},
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	return promotion
}

func createTestDiscountCode(t *testing.T, db *gorm.DB, code string, amount, minOrder int64) models.DiscountCode {
	t.Helper()

	now := time.Now()
	flat := models.NewMoneyFromInt(amount)
	row := models.DiscountCode{
		Code:           code,
		DiscountAmount: &flat,
		MinOrderAmount: models.NewMoneyFromInt(minOrder),
		StartAt:        now.Add(-time.Hour),
		EndAt:          now.Add(time.Hour),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create discount code failed: %v", err)
	}
	return row
}

func mustDecimal(t *testing.T, got decimal.Decimal, want int64, label string) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("%s: expected %d, got %s", label, want, got.String())
	}
}
