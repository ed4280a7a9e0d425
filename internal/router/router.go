// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/handlers"
	"github.com/fashionfactory/store-backend/internal/middleware"
	"github.com/fashionfactory/store-backend/internal/services"
	"github.com/fashionfactory/store-backend/internal/utils"
)

// Options overrides collaborators that default from the config.
type Options struct {
	Mailer     services.Mailer
	RateLimits *middleware.RateLimits
}

func Initialize(stores Stores, cfg *config.Config, logger *logrus.Logger, opts Options) (*gin.Engine, error) {
	mailer := opts.Mailer
	if mailer == nil {
		mailer = services.NewMailer(cfg.Email, logger)
	}
	limits := middleware.DefaultRateLimits()
	if opts.RateLimits != nil {
		limits = *opts.RateLimits
	}

	// Initialize services
	notificationService, err := services.NewNotificationService(mailer, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	authService := services.NewAuthService(stores.Users, jwtManager, notificationService, logger)
	userService := services.NewUserService(stores.Users, storageService)
	productService := services.NewProductService(stores.Products, stores.Taxonomy, cfg.Catalog)
	taxonomyService := services.NewTaxonomyService(stores.Taxonomy)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(limits.General.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"store":   cfg.Database.Driver,
		})
	})

	authRequired := middleware.AuthRequired(jwtManager)
	adminRequired := middleware.AdminRequired()

	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/new-arrivals", productHandler.GetNewArrivals)
			products.GET("/top-selling", productHandler.GetTopSelling)
			products.GET("/top-discounted", productHandler.GetTopDiscounted)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/by-gender/:gender", productHandler.GetByGender)
			products.GET("/by-size/:size", productHandler.GetBySize)
			products.GET("/colors", productHandler.GetColors)
			products.GET("/sizes", productHandler.GetSizes)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/variants", productHandler.GetVariants)

			admin := products.Group("")
			admin.Use(authRequired, adminRequired)
			{
				admin.POST("", productHandler.CreateProduct)
				admin.POST("/upload-images", productHandler.UploadProductImages)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		api.GET("/categories", taxonomyHandler.GetCategories)
		api.POST("/categories", authRequired, adminRequired, taxonomyHandler.CreateCategory)
		api.GET("/brands", taxonomyHandler.GetBrands)
		api.POST("/brands", authRequired, adminRequired, taxonomyHandler.CreateBrand)

		user := api.Group("/user")
		{
			user.POST("/register", authHandler.Register)
			user.POST("/login", limits.Login.Middleware(), authHandler.Login)
			user.POST("/send-otp", authHandler.SendOTP)
			user.POST("/verify-otp", authHandler.VerifyOTP)
			user.POST("/forgot-password", limits.ForgotPassword.Middleware(), authHandler.ForgotPassword)
			user.POST("/reset-password", authHandler.ResetPassword)

			protected := user.Group("")
			protected.Use(authRequired)
			{
				protected.GET("/me", userHandler.GetProfile)
				protected.PUT("/update", userHandler.UpdateProfile)
				protected.PUT("/avatar", userHandler.UpdateAvatar)
				protected.POST("/avatar/upload", userHandler.UploadAvatar)
				protected.POST("/change-password", limits.ChangePassword.Middleware(), authHandler.ChangePassword)
			}

			admin := user.Group("")
			admin.Use(authRequired, adminRequired)
			{
				admin.GET("/all", userHandler.GetUsers)
				admin.GET("/:id", userHandler.GetUser)
				admin.DELETE("/:id", userHandler.DeleteUser)
				admin.PUT("/block/:id", userHandler.ToggleBlock)
				admin.PUT("/role/:id", userHandler.ChangeRole)
			}
		}
	}

	// Locally stored uploads
	if !cfg.AWS.Enabled() {
		r.Static("/uploads", cfg.Server.UploadDir)
	}

	return r, nil
}
