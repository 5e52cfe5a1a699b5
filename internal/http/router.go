package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/http/handlers"
	"github.com/shubham23mamgain/bringit/internal/http/middleware"
)

// Deps are the handlers and middleware the router mounts
type Deps struct {
	Auth           *handlers.AuthHandlers
	Users          *handlers.UserHandlers
	Products       *handlers.ProductHandlers
	Carts          *handlers.CartHandlers
	Blogs          *handlers.BlogHandlers
	Categories     *handlers.CatalogHandlers[domain.ProductCategory]
	BlogCategories *handlers.CatalogHandlers[domain.BlogCategory]
	Brands         *handlers.CatalogHandlers[domain.Brand]
	Coupons        *handlers.CatalogHandlers[domain.Coupon]
	Policies       *handlers.PolicyHandlers

	JWT     *middleware.AuthMW
	Authz   *middleware.AuthzMW
	Metrics *middleware.Metrics
	// MetricsHandler serves /metrics when set
	MetricsHandler http.Handler
	Logger         log.Logger
}

func BuildRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	if d.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(d.MetricsHandler))
	}

	auth := d.JWT.WithJWT()
	admin := d.Authz.RequireAdmin()

	user := r.Group("/api/user")
	user.POST("/register", d.Auth.Register)
	user.POST("/login", d.Auth.Login)
	user.POST("/admin-login", d.Auth.AdminLogin)
	user.GET("/refresh", d.Auth.Refresh)
	user.GET("/logout", d.Auth.Logout)
	user.POST("/forgot-password-token", d.Auth.ForgotPassword)
	user.PUT("/reset-password/:token", d.Auth.ResetPassword)
	user.PUT("/password", auth, d.Auth.UpdatePassword)
	user.GET("/all-users", auth, admin, d.Users.List)
	user.GET("/wishlist", auth, d.Users.Wishlist)
	user.POST("/cart", auth, d.Carts.Save)
	user.GET("/cart", auth, d.Carts.Get)
	user.DELETE("/empty-cart", auth, d.Carts.Empty)
	user.PUT("/edit-user", auth, d.Users.Edit)
	user.PUT("/save-address", auth, d.Users.SaveAddress)
	user.PUT("/block-user/:id", auth, admin, d.Users.Block)
	user.PUT("/unblock-user/:id", auth, admin, d.Users.Unblock)
	user.GET("/:id", auth, admin, d.Users.Get)
	user.DELETE("/:id", auth, admin, d.Users.Delete)

	product := r.Group("/api/product")
	product.POST("", auth, admin, d.Products.Create)
	product.GET("", d.Products.List)
	product.PUT("/wishlist", auth, d.Users.ToggleWishlist)
	product.GET("/:id", d.Products.Get)
	product.PUT("/:id", auth, admin, d.Products.Update)
	product.DELETE("/:id", auth, admin, d.Products.Delete)

	blog := r.Group("/api/blog")
	blog.POST("", auth, admin, d.Blogs.Create)
	blog.GET("", d.Blogs.List)
	blog.PUT("/likes", auth, d.Blogs.Like)
	blog.PUT("/dislikes", auth, d.Blogs.Dislike)
	blog.GET("/:id", d.Blogs.Get)
	blog.PUT("/:id", auth, admin, d.Blogs.Update)
	blog.DELETE("/:id", auth, admin, d.Blogs.Delete)

	mountCatalog(r.Group("/api/category"), d.Categories, auth, admin)
	mountCatalog(r.Group("/api/blog-category"), d.BlogCategories, auth, admin)
	mountCatalog(r.Group("/api/brand"), d.Brands, auth, admin)
	mountCatalog(r.Group("/api/coupon"), d.Coupons, auth, admin)

	adm := r.Group("/api/admin").Use(auth, admin)
	adm.GET("/policies", d.Policies.List)
	adm.POST("/policies", d.Policies.Add)
	adm.DELETE("/policies", d.Policies.Remove)

	return r
}

// mountCatalog serves reads publicly and gates writes on the admin role
func mountCatalog[T any](g *gin.RouterGroup, h *handlers.CatalogHandlers[T], auth, admin gin.HandlerFunc) {
	g.POST("", auth, admin, h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", auth, admin, h.Update)
	g.DELETE("/:id", auth, admin, h.Delete)
}
