package main

import (
	"time"

	"github.com/kariakoo/marketplace/internal/config"
	"github.com/kariakoo/marketplace/internal/constants"
	"github.com/kariakoo/marketplace/internal/logger"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", SortOrder: 10},
		{Slug: "fashion", Name: "Fashion", SortOrder: 20},
		{Slug: "home-kitchen", Name: "Home & Kitchen", SortOrder: 30},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "fashion", "home-kitchen"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	electronicsID := categoryIDs["electronics"]
	fashionID := categoryIDs["fashion"]
	homeID := categoryIDs["home-kitchen"]

	// 添加品牌
	brands := []models.Brand{
		{Name: "Simba Audio", Logo: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=200"},
		{Name: "Kilima Wear", Logo: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=200"},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("name = ?", brand.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", brand.Name, err)
			} else {
				stdLog.Printf("Created brand: %s", brand.Name)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", brand.Name)
		}
	}

	brandIDs := map[string]uint{}
	var brandList []models.Brand
	if err := models.DB.Where("name IN ?", []string{"Simba Audio", "Kilima Wear"}).Find(&brandList).Error; err != nil {
		stdLog.Printf("Failed to load brands: %v", err)
	}
	for _, brand := range brandList {
		brandIDs[brand.Name] = brand.ID
	}
	simbaID := brandIDs["Simba Audio"]
	kilimaID := brandIDs["Kilima Wear"]

	// 添加演示用户（卖家 + 买家）
	seedUsers := []models.User{
		{Email: "seller@example.com", DisplayName: "Demo Seller", Status: constants.UserStatusActive},
		{Email: "buyer@example.com", DisplayName: "Demo Buyer", Status: constants.UserStatusActive},
		{Email: "friend@example.com", DisplayName: "Referred Friend", Status: constants.UserStatusActive},
	}
	userIDs := map[string]uint{}
	for _, u := range seedUsers {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err != nil {
			hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
			if hashErr != nil {
				stdLog.Printf("Failed to hash password for %s: %v", u.Email, hashErr)
				continue
			}
			u.PasswordHash = string(hash)
			u.ReferralCode = service.GenerateReferralCode()
			if err := models.DB.Create(&u).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", u.Email, err)
				continue
			}
			stdLog.Printf("Created user: %s (referral code %s)", u.Email, u.ReferralCode)
			userIDs[u.Email] = u.ID
		} else {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[u.Email] = existing.ID
		}
	}
	sellerUserID := userIDs["seller@example.com"]

	// 卖家档案
	var sellerProfile models.SellerProfile
	if err := models.DB.Where("user_id = ?", sellerUserID).First(&sellerProfile).Error; err != nil {
		sellerProfile = models.SellerProfile{
			UserID:      sellerUserID,
			ShopName:    "Kariakoo Demo Shop",
			Description: "Demo storefront seeded for local development.",
			IsVerified:  true,
		}
		if err := models.DB.Create(&sellerProfile).Error; err != nil {
			stdLog.Printf("Failed to create seller profile: %v", err)
		} else {
			stdLog.Printf("Created seller profile: %s", sellerProfile.ShopName)
		}
	} else {
		stdLog.Printf("Seller profile already exists: %s", sellerProfile.ShopName)
	}
	sellerID := sellerProfile.ID

	// 添加商品（已审核通过并上架）
	products := []struct {
		product models.Product
		skus    []models.SKU
	}{
		{
			product: models.Product{
				SellerID:           sellerID,
				CategoryID:         electronicsID,
				BrandID:            &simbaID,
				Title:              "Wireless Bluetooth Earphones",
				Description:        "Bluetooth 5.0, active noise cancellation, 24 hour battery life.",
				BasePrice:          models.NewMoneyFromDecimal(decimal.NewFromInt(85000)),
				VerificationStatus: constants.ProductVerificationApproved,
				IsActive:           true,
			},
			skus: []models.SKU{
				{SKUCode: "EAR-BLK", VariantAttributes: models.JSON(map[string]interface{}{"color": "black"}), StockQuantity: 50, IsAvailable: true},
				{SKUCode: "EAR-WHT", VariantAttributes: models.JSON(map[string]interface{}{"color": "white"}), StockQuantity: 30, IsAvailable: true},
			},
		},
		{
			product: models.Product{
				SellerID:           sellerID,
				CategoryID:         fashionID,
				BrandID:            &kilimaID,
				Title:              "Cotton T-Shirt",
				Description:        "Plain cotton t-shirt, pre-shrunk, unisex fit.",
				BasePrice:          models.NewMoneyFromDecimal(decimal.NewFromInt(15000)),
				VerificationStatus: constants.ProductVerificationApproved,
				IsActive:           true,
			},
			skus: []models.SKU{
				{SKUCode: "TSH-M", VariantAttributes: models.JSON(map[string]interface{}{"size": "M"}), StockQuantity: 100, IsAvailable: true},
				{SKUCode: "TSH-L", VariantAttributes: models.JSON(map[string]interface{}{"size": "L"}), StockQuantity: 80, IsAvailable: true},
			},
		},
		{
			product: models.Product{
				SellerID:           sellerID,
				CategoryID:         homeID,
				Title:              "Stainless Steel Cooking Pot",
				Description:        "5 liter stainless steel pot with glass lid.",
				BasePrice:          models.NewMoneyFromDecimal(decimal.NewFromInt(42000)),
				VerificationStatus: constants.ProductVerificationApproved,
				IsActive:           true,
			},
			skus: []models.SKU{
				{SKUCode: "POT-5L", StockQuantity: 25, IsAvailable: true},
			},
		},
	}

	productIDs := map[string]uint{}
	for _, entry := range products {
		var existing models.Product
		if err := models.DB.Where("seller_id = ? AND title = ?", entry.product.SellerID, entry.product.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&entry.product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", entry.product.Title, err)
				continue
			}
			stdLog.Printf("Created product: %s", entry.product.Title)
			productIDs[entry.product.Title] = entry.product.ID
		} else {
			stdLog.Printf("Product already exists: %s", entry.product.Title)
			productIDs[entry.product.Title] = existing.ID
		}

		productID := productIDs[entry.product.Title]
		for _, sku := range entry.skus {
			var existingSKU models.SKU
			if err := models.DB.Where("product_id = ? AND sku_code = ?", productID, sku.SKUCode).First(&existingSKU).Error; err != nil {
				sku.ProductID = productID
				if err := models.DB.Create(&sku).Error; err != nil {
					stdLog.Printf("Failed to create SKU %s: %v", sku.SKUCode, err)
				} else {
					stdLog.Printf("Created SKU: %s", sku.SKUCode)
				}
			} else {
				stdLog.Printf("SKU already exists: %s", sku.SKUCode)
			}
		}
	}

	// 添加活动（一个限时活动 + 一个闪购活动）
	now := time.Now()
	flashCap := models.NewMoneyFromDecimal(decimal.NewFromInt(20000))
	flashUses := 200
	promotions := []models.Promotion{
		{
			Name:            "Electronics Week",
			PromotionType:   constants.PromotionTypeTimed,
			Description:     "10% off all electronics for one week.",
			DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			Priority:        100,
			StartAt:         now.Add(-24 * time.Hour),
			EndAt:           now.Add(6 * 24 * time.Hour),
			MaxUsesPerUser:  3,
			Targets: []models.PromotionTarget{
				{TargetType: constants.PromotionTargetCategory, TargetID: electronicsID},
			},
		},
		{
			Name:            "Earphones Flash Sale",
			PromotionType:   constants.PromotionTypeFlash,
			Description:     "25% off wireless earphones, today only.",
			DiscountPercent: models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
			Priority:        200,
			StartAt:         now.Add(-time.Hour),
			EndAt:           now.Add(23 * time.Hour),
			MaxDiscountCap:  &flashCap,
			MaxUses:         &flashUses,
			MaxUsesPerUser:  1,
			Targets: []models.PromotionTarget{
				{TargetType: constants.PromotionTargetProduct, TargetID: productIDs["Wireless Bluetooth Earphones"]},
			},
		},
	}
	for _, promo := range promotions {
		var existing models.Promotion
		if err := models.DB.Where("name = ?", promo.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promo).Error; err != nil {
				stdLog.Printf("Failed to create promotion %s: %v", promo.Name, err)
			} else {
				stdLog.Printf("Created promotion: %s", promo.Name)
			}
		} else {
			stdLog.Printf("Promotion already exists: %s", promo.Name)
		}
	}

	// 添加折扣码
	welcomePercent := models.NewMoneyFromDecimal(decimal.NewFromInt(5))
	welcomeUses := 1000
	discountCodes := []models.DiscountCode{
		{
			Code:            "KARIBU5",
			Description:     "5% off your order, welcome offer.",
			DiscountPercent: &welcomePercent,
			MinOrderAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(10000)),
			MaxUses:         &welcomeUses,
			StartAt:         now.Add(-24 * time.Hour),
			EndAt:           now.Add(90 * 24 * time.Hour),
		},
	}
	for _, code := range discountCodes {
		var existing models.DiscountCode
		if err := models.DB.Where("code = ?", code.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&code).Error; err != nil {
				stdLog.Printf("Failed to create discount code %s: %v", code.Code, err)
			} else {
				stdLog.Printf("Created discount code: %s", code.Code)
			}
		} else {
			stdLog.Printf("Discount code already exists: %s", code.Code)
		}
	}

	stdLog.Printf("Seed finished: %d categories, %d brands, %d users, %d products, %d promotions, %d discount codes",
		len(categories), len(brands), len(seedUsers), len(products), len(promotions), len(discountCodes))
}
