package api

import (
	"cbots-backend/config"
	adminBanner "cbots-backend/internal/api/v1/admin/banner"
	adminBot "cbots-backend/internal/api/v1/admin/bot"
	adminDeposit "cbots-backend/internal/api/v1/admin/deposit"
	adminPayment "cbots-backend/internal/api/v1/admin/payment"
	adminTransaction "cbots-backend/internal/api/v1/admin/transaction"
	adminUser "cbots-backend/internal/api/v1/admin/user"
	adminWithdrawal "cbots-backend/internal/api/v1/admin/withdrawal"
	"cbots-backend/internal/api/v1/auth"
	botRoutes "cbots-backend/internal/api/v1/bot"
	catalogRoutes "cbots-backend/internal/api/v1/catalog"
	depositRoutes "cbots-backend/internal/api/v1/deposit"
	userRoutes "cbots-backend/internal/api/v1/user"
	withdrawalRoutes "cbots-backend/internal/api/v1/withdrawal"
	"cbots-backend/internal/database"
	"cbots-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Uploaded proof and banner images
	router.Static("/uploads", cfg.UploadDir)

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)
		catalogRoutes.RegisterPublicRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			depositRoutes.RegisterRoutes(authorized)
			withdrawalRoutes.RegisterRoutes(authorized)
			botRoutes.RegisterRoutes(authorized)
			catalogRoutes.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminDeposit.RegisterRoutes(admin)
			adminWithdrawal.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
			adminBot.RegisterRoutes(admin)
			adminPayment.RegisterRoutes(admin)
			adminBanner.RegisterRoutes(admin)
		}
	}

	return router, nil
}
