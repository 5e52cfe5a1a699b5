package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/config"
	httpx "github.com/shubham23mamgain/bringit/internal/http"
	"github.com/shubham23mamgain/bringit/internal/http/handlers"
	"github.com/shubham23mamgain/bringit/internal/http/middleware"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/auth"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/cache"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/database"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/notifications"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/repositories"
	"github.com/shubham23mamgain/bringit/internal/logging"
	"github.com/shubham23mamgain/bringit/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger log.Logger
	Clock  domain.Clock

	// Infrastructure
	DB          *gorm.DB
	RedisClient *database.RedisClient
	Casbin      *auth.CasbinService
	Registry    *prometheus.Registry

	// Repositories
	UserRepo         domain.UserRepository
	ProductRepo      domain.ProductRepository
	BlogRepo         domain.BlogRepository
	CartRepo         domain.CartRepository
	CategoryRepo     domain.CatalogRepository[domain.ProductCategory]
	BlogCategoryRepo domain.CatalogRepository[domain.BlogCategory]
	BrandRepo        domain.CatalogRepository[domain.Brand]
	CouponRepo       domain.CatalogRepository[domain.Coupon]
	ProductCache     domain.ProductCache

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuthSvc         domain.AuthService
	ResetSvc        domain.PasswordResetService
	ProductSvc      domain.ProductService
	BlogSvc         domain.BlogService
	CartSvc         domain.CartService
	PolicySvc       domain.PolicyService

	Router *gin.Engine
}

// Option customises a Container before it is initialised
type Option func(*Container)

// WithClock replaces time.Now for token and reset expiry
func WithClock(clock domain.Clock) Option {
	return func(c *Container) { c.Clock = clock }
}

// WithNotifier replaces the SMS and email senders
func WithNotifier(n domain.NotificationService) Option {
	return func(c *Container) { c.NotificationSvc = n }
}

// NewContainer creates and initializes all dependencies. The schema is
// migrated and the default policies are seeded.
func NewContainer(cfg *config.Config, logger log.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	container := &Container{Config: cfg, Logger: logger}
	for _, opt := range opts {
		opt(container)
	}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		container.Close()
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		container.Close()
		return nil, err
	}
	if err := container.initCasbin(); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	container.initServices()

	container.initRouter()
	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(database.Options{
		Driver:   c.Config.DBDriver,
		DSN:      c.Config.DSN,
		LogLevel: c.Config.DBLogLevel,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	c.DB = db

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	return nil
}

// initRedis connects the product cache; without an address products are
// always read from the database
func (c *Container) initRedis() error {
	if c.Config.RedisAddr == "" {
		_ = level.Warn(c.Logger).Log("msg", "redis not configured, product cache disabled")
		c.ProductCache = cache.NoopProductCache{}
		return nil
	}

	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := c.RedisClient.Ping(context.Background()); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	c.ProductCache = cache.NewRedisProductCache(c.RedisClient.Client, c.Config.ProductCacheTTL, c.Logger)
	return nil
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("init casbin: %w", err)
	}
	seeded, err := cas.SeedDefaultPolicies()
	if err != nil {
		return fmt.Errorf("seed casbin policies: %w", err)
	}
	if seeded {
		_ = level.Info(c.Logger).Log("msg", "casbin: seeded default policies")
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.ProductRepo = repositories.NewProductRepository(c.DB)
	c.BlogRepo = repositories.NewBlogRepository(c.DB)
	c.CartRepo = repositories.NewCartRepository(c.DB)
	c.CategoryRepo = repositories.NewCatalogRepository[domain.ProductCategory](c.DB, "Category")
	c.BlogCategoryRepo = repositories.NewCatalogRepository[domain.BlogCategory](c.DB, "Blog category")
	c.BrandRepo = repositories.NewCatalogRepository[domain.Brand](c.DB, "Brand")
	c.CouponRepo = repositories.NewCatalogRepository[domain.Coupon](c.DB, "Coupon")
}

func (c *Container) initServices() {
	// Initialize basic services
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)
	c.TokenSvc = auth.NewJWTService(auth.JWTConfig{
		AccessSecret:  c.Config.JWTAccessSecret,
		RefreshSecret: c.Config.JWTRefreshSecret,
		Issuer:        c.Config.JWTIssuer,
		AccessTTL:     c.Config.AccessTTL,
		RefreshTTL:    c.Config.RefreshTTL,
	}, c.Clock)
	if c.NotificationSvc == nil {
		c.NotificationSvc = notifications.NewNotifier(
			notifications.NewTwilioSMSSender(notifications.TwilioConfig{
				AccountSID: c.Config.TwilioSID,
				AuthToken:  c.Config.TwilioToken,
				FromNumber: c.Config.TwilioFrom,
			}, c.Logger),
			notifications.NewSMTPMailer(notifications.SMTPConfig{
				Host:     c.Config.SMTPHost,
				Port:     c.Config.SMTPPort,
				Username: c.Config.SMTPUsername,
				Password: c.Config.SMTPPassword,
				From:     c.Config.SMTPFrom,
			}, c.Logger),
		)
	}

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.Clock)
	c.ResetSvc = services.NewPasswordResetService(
		c.UserRepo,
		c.PasswordSvc,
		c.NotificationSvc,
		services.ResetConfig{TTL: c.Config.ResetTTL, PublicURL: c.Config.PublicURL},
		c.Clock,
		c.Logger,
	)
	c.ProductSvc = services.NewProductService(c.ProductRepo, c.ProductCache)
	c.BlogSvc = services.NewBlogService(c.BlogRepo)
	c.CartSvc = services.NewCartService(c.CartRepo, c.ProductRepo)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
}

func (c *Container) initRouter() {
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c.Router = httpx.BuildRouter(httpx.Deps{
		Auth: handlers.NewAuthHandlers(c.AuthSvc, c.ResetSvc, handlers.CookieConfig{
			Secure: c.Config.CookieSecure,
			MaxAge: c.Config.RefreshTTL,
		}),
		Users:          handlers.NewUserHandlers(c.UserRepo, c.ProductSvc),
		Products:       handlers.NewProductHandlers(c.ProductSvc),
		Carts:          handlers.NewCartHandlers(c.CartSvc),
		Blogs:          handlers.NewBlogHandlers(c.BlogRepo, c.BlogSvc),
		Categories:     handlers.NewCatalogHandlers(c.CategoryRepo, handlers.ProductCategoryCodec()),
		BlogCategories: handlers.NewCatalogHandlers(c.BlogCategoryRepo, handlers.BlogCategoryCodec()),
		Brands:         handlers.NewCatalogHandlers(c.BrandRepo, handlers.BrandCodec()),
		Coupons:        handlers.NewCatalogHandlers(c.CouponRepo, handlers.CouponCodec()),
		Policies:       handlers.NewPolicyHandlers(c.PolicySvc),

		JWT:            middleware.NewAuthMW(c.TokenSvc, c.UserRepo),
		Authz:          middleware.NewAuthzMW(c.PolicySvc),
		Metrics:        middleware.NewMetrics(c.Registry),
		MetricsHandler: promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}),
		Logger:         logging.Component(c.Logger, "http"),
	})
}

// Handler returns the HTTP handler serving the API
func (c *Container) Handler() http.Handler {
	return c.Router
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
