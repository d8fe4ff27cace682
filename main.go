package main

import (
	"log"

	"cbots-backend/config"
	"cbots-backend/internal/api"
	"cbots-backend/internal/database"
	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.DepositRequest{},
		&models.WithdrawalRequest{},
		&models.BotType{},
		&models.ActiveBot{},
		&models.PaymentMethod{},
		&models.Banner{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	initAdminUser()

	services.StartNotifier()

	sched, err := services.StartAccrualScheduler()
	if err != nil {
		log.Fatalf("failed to start accrual scheduler: %v", err)
	}
	defer sched.Shutdown()

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func initAdminUser() {
	adminEmail := "admin@cbots.local"
	adminPassword := "ChangeMe1234"

	var adminUser models.User
	result := database.DB.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error != nil {
		if result.Error.Error() == "record not found" {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}

			adminUser = models.User{
				Name:         "Admin",
				Email:        adminEmail,
				Password:     string(hashedPassword),
				ReferralCode: "ADMIN000",
				Role:         models.RoleAdmin,
				Status:       models.UserStatusActive,
				IsVerified:   true,
			}

			if err := database.DB.Create(&adminUser).Error; err != nil {
				log.Fatalf("failed to create admin user: %v", err)
			}
			log.Println("Admin user created successfully!")
		} else {
			log.Fatalf("failed to check for admin user: %v", result.Error)
		}
	} else {
		log.Println("Admin user already exists.")
	}
}
