package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kariakoo/marketplace/internal/authz"
	"github.com/kariakoo/marketplace/internal/cache"
	"github.com/kariakoo/marketplace/internal/config"
	adminhandlers "github.com/kariakoo/marketplace/internal/http/handlers/admin"
	publichandlers "github.com/kariakoo/marketplace/internal/http/handlers/public"
	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/logger"
	"github.com/kariakoo/marketplace/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "kk"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/brands", publicHandler.GetBrands)
			public.GET("/deals", publicHandler.GetActiveDeals)
		}

		// 买家接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:sku_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:sku_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyByUserID), publicHandler.Checkout)

			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByOrderNo)
			user.POST("/orders/:id/confirm-payment", publicHandler.ConfirmPayment)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.POST("/orders/:id/complete", publicHandler.CompleteOrder)
			user.POST("/orders/:id/dispute", publicHandler.OpenDispute)

			user.GET("/loyalty/balance", publicHandler.GetLoyaltyBalance)
			user.GET("/loyalty/transactions", publicHandler.ListLoyaltyTransactions)

			user.GET("/referral/code", publicHandler.GetReferralCode)
			user.POST("/referral/attach", publicHandler.AttachReferrer)
			user.GET("/referral/rewards", publicHandler.ListReferralRewards)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		{
			loginRule := RateLimitRule{
				Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
				WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
				MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
			}
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 商品审核与目录管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products/:id/verify", adminHandler.VerifyProduct)
				authorized.PUT("/products/:id", adminHandler.SetProductActive)
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/brands", adminHandler.GetAdminBrands)
				authorized.POST("/brands", adminHandler.CreateBrand)
				authorized.PUT("/brands/:id", adminHandler.UpdateBrand)
				authorized.DELETE("/brands/:id", adminHandler.DeleteBrand)

				// 活动与折扣码
				authorized.POST("/promotions", adminHandler.CreatePromotion)
				authorized.GET("/promotions", adminHandler.GetAdminPromotions)
				authorized.GET("/promotions/:id", adminHandler.GetAdminPromotion)
				authorized.PUT("/promotions/:id", adminHandler.UpdatePromotion)
				authorized.DELETE("/promotions/:id", adminHandler.DeletePromotion)
				authorized.POST("/discount-codes", adminHandler.CreateDiscountCode)
				authorized.GET("/discount-codes", adminHandler.GetDiscountCodes)
				authorized.GET("/discount-codes/:id", adminHandler.GetDiscountCode)
				authorized.PUT("/discount-codes/:id", adminHandler.UpdateDiscountCode)
				authorized.DELETE("/discount-codes/:id", adminHandler.DeleteDiscountCode)

				// 订单履约
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.POST("/orders/:id/confirm", adminHandler.ConfirmOrder)
				authorized.POST("/orders/:id/ship", adminHandler.ShipOrder)
				authorized.POST("/orders/:id/delivery-proof", adminHandler.RecordDeliveryProof)
				authorized.POST("/orders/:id/resolve-dispute", adminHandler.ResolveDispute)
				authorized.POST("/orders/:id/refund", adminHandler.RefundOrder)

				// 用户与积分
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.POST("/loyalty/adjust", adminHandler.AdjustLoyaltyPoints)

				// 权限管理
				authorized.POST("/logout", adminHandler.Logout)

				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
