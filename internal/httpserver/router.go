package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/furnico/internal/models"
	middleware "github.com/Skotchmaster/furnico/pkg/middleware/auth"
	"github.com/Skotchmaster/furnico/pkg/middleware/csrf"
	"github.com/Skotchmaster/furnico/pkg/middleware/demo"
	loggingmw "github.com/Skotchmaster/furnico/pkg/middleware/logging"
	"github.com/Skotchmaster/furnico/pkg/validate"
)

type Deps struct {
	Auth     *AuthHTTP
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Orders   *OrderHTTP
	Address  *AddressHTTP
	Reviews  *ReviewHTTP
	Payments *PaymentHTTP
	Uploads  *UploadHTTP
	Health   *HealthHTTP

	JWTSecret []byte
	Refresher middleware.Refresher
	Logger    *slog.Logger

	AllowedOrigins []string
	CSRFEnabled    bool
	CookieSecure   bool
}

// New builds the echo instance with the shared middleware stack and all routes.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(d.Logger))
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(echomw.BodyLimit("1M"))
	if len(d.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     d.AllowedOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
		}))
	}
	if d.CSRFEnabled {
		cfg := csrf.DefaultConfig()
		cfg.Secure = d.CookieSecure
		cfg.AllowedOrigins = d.AllowedOrigins
		cfg.SkipPaths = []string{"/api/auth/login", "/api/auth/register", "/health/live", "/health/ready"}
		e.Use(csrf.Middleware(cfg))
	}

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.Refresher, models.AdminRoles()...)
	guard := demo.Guard(models.DemoRoles()...)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/me", d.Auth.Me, authMW.RequireAuth)

	user := api.Group("/user")
	user.POST("/otp", d.Auth.SendOTP)
	user.POST("/reset-password", d.Auth.ResetPassword)
	user.POST("/update-password", d.Auth.UpdatePassword, authMW.RequireAuth, guard)

	addresses := user.Group("/addresses", authMW.RequireAuth)
	addresses.GET("", d.Address.List)
	addresses.POST("", d.Address.Add)
	addresses.PUT("/:id", d.Address.Update)
	addresses.DELETE("/:id", d.Address.Delete)

	api.GET("/categories", d.Catalog.Categories)
	products := api.Group("/products")
	products.GET("", d.Catalog.List)
	products.GET("/search", d.Catalog.Search)
	products.GET("/:id", d.Catalog.Get)
	products.GET("/:id/reviews", d.Reviews.List)
	products.POST("/:id/reviews", d.Reviews.Add, authMW.RequireAuth)

	cart := api.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.Cart.GetCart)
	cart.POST("", d.Cart.AddToCart)
	cart.DELETE("", d.Cart.Clear)
	cart.PATCH("/:id", d.Cart.UpdateQuantity)
	cart.DELETE("/:id", d.Cart.RemoveItem)

	payments := api.Group("/payments", authMW.RequireAuth)
	payments.POST("/orders", d.Payments.CreateOrder)
	payments.POST("/verify", d.Payments.Verify)

	orders := api.Group("/orders", authMW.RequireAuth)
	orders.POST("", d.Orders.Create)
	orders.GET("", d.Orders.List)
	orders.GET("/:id", d.Orders.Get)
	orders.POST("/:id/cancel", d.Orders.Cancel)

	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.POST("/products", d.Catalog.Create, guard)
	admin.PUT("/products/:id", d.Catalog.Update, guard)
	admin.PATCH("/products/:id/stock", d.Catalog.UpdateStock, guard)
	admin.DELETE("/products/:id", d.Catalog.Delete, guard)

	admin.GET("/orders", d.Orders.AdminList)
	admin.PATCH("/orders/:id/status", d.Orders.AdminSetStatus, guard)

	admin.POST("/uploads/images", d.Uploads.Images, guard)
	admin.POST("/uploads/models", d.Uploads.Model, guard)
}
