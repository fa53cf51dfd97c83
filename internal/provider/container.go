package provider

import (
	"github.com/kariakoo/marketplace/internal/authz"
	"github.com/kariakoo/marketplace/internal/cache"
	"github.com/kariakoo/marketplace/internal/config"
	"github.com/kariakoo/marketplace/internal/logger"
	"github.com/kariakoo/marketplace/internal/models"
	"github.com/kariakoo/marketplace/internal/queue"
	"github.com/kariakoo/marketplace/internal/repository"
	"github.com/kariakoo/marketplace/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo          repository.AdminRepository
	UserRepo           repository.UserRepository
	ProductRepo        repository.ProductRepository
	SKURepo            repository.SKURepository
	CategoryRepo       repository.CategoryRepository
	BrandRepo          repository.BrandRepository
	CartRepo           repository.CartRepository
	PromotionRepo      repository.PromotionRepository
	PromotionUsageRepo repository.PromotionUsageRepository
	DiscountCodeRepo   repository.DiscountCodeRepository
	OrderRepo          repository.OrderRepository
	DeliveryRepo       repository.DeliveryRepository
	LoyaltyRepo        repository.LoyaltyRepository
	ReferralRewardRepo repository.ReferralRewardRepository

	// Services
	AuthService              *service.AuthService
	AuthzService             *authz.Service
	CartService              *service.CartService
	CatalogService           *service.CatalogService
	CatalogAdminService      *service.CatalogAdminService
	IncentiveService         *service.IncentiveService
	LoyaltyService           *service.LoyaltyService
	CheckoutService          *service.CheckoutService
	OrderService             *service.OrderService
	OrderStatusService       *service.OrderStatusService
	PromotionService         *service.PromotionService
	PromotionAdminService    *service.PromotionAdminService
	DiscountCodeAdminService *service.DiscountCodeAdminService
	ReferralService          *service.ReferralService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.SKURepo = repository.NewSKURepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.PromotionUsageRepo = repository.NewPromotionUsageRepository(db)
	c.DiscountCodeRepo = repository.NewDiscountCodeRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRepository(db)
	c.LoyaltyRepo = repository.NewLoyaltyRepository(db)
	c.ReferralRewardRepo = repository.NewReferralRewardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.SKURepo)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.SKURepo, c.CategoryRepo, c.BrandRepo)
	c.CatalogAdminService = service.NewCatalogAdminService(c.ProductRepo)
	c.IncentiveService = service.NewIncentiveService(c.PromotionRepo, c.PromotionUsageRepo, c.DiscountCodeRepo)
	c.LoyaltyService = service.NewLoyaltyService(c.UserRepo, c.LoyaltyRepo)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.SKURepo, c.OrderRepo, c.DeliveryRepo, c.PromotionUsageRepo, c.IncentiveService, c.LoyaltyService, c.QueueClient, c.Config.Checkout.DeliveryEstimateHours)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.OrderStatusService = service.NewOrderStatusService(c.OrderRepo, c.DeliveryRepo, c.UserRepo, c.ReferralRewardRepo, c.LoyaltyService, c.QueueClient)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.PromotionAdminService = service.NewPromotionAdminService(c.PromotionRepo, c.PromotionService)
	c.DiscountCodeAdminService = service.NewDiscountCodeAdminService(c.DiscountCodeRepo)
	c.ReferralService = service.NewReferralService(c.UserRepo, c.ReferralRewardRepo)
}
