package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"party-package-store/internal/config"
	"party-package-store/internal/database"
	"party-package-store/internal/handlers"
	"party-package-store/internal/middleware"
	"party-package-store/internal/repositories"
	"party-package-store/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	cartRepo := repositories.NewCartRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)
	intentRepo := repositories.NewCheckoutIntentRepository(db.DB)
	reviewRepo := repositories.NewReviewRepository(db.DB)
	wishlistRepo := repositories.NewWishlistRepository(db.DB)

	// Payment gateway
	var gateway services.PaymentGateway
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		gateway = services.NewRazorpayService(services.RazorpayConfig{
			KeyID:     cfg.Razorpay.KeyID,
			KeySecret: cfg.Razorpay.KeySecret,
			Currency:  cfg.Razorpay.Currency,
		})
		log.Println("Payment gateway: Razorpay")
	} else {
		gateway = services.NewMockPaymentGateway("", "")
		log.Println("Payment gateway: mock (no Razorpay credentials configured)")
	}

	// Email
	var emailService services.EmailService
	if cfg.Email.SMTPUser != "" {
		emailService = services.NewSMTPEmailService(services.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUser,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
	} else {
		emailService = services.NewMockEmailService()
		log.Println("Email service: mock (no SMTP credentials configured)")
	}

	// Storage
	var storageService services.StorageService
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		r2Service, err := services.NewR2Service(cfg.R2)
		if err != nil {
			log.Printf("Failed to initialize R2: %v, using local storage", err)
			storageService = services.NewFallbackStorageService("./uploads", "http://localhost:"+cfg.Server.Port+"/uploads")
		} else {
			storageService = r2Service
			log.Println("Storage: Cloudflare R2")
		}
	} else {
		storageService = services.NewFallbackStorageService("./uploads", "http://localhost:"+cfg.Server.Port+"/uploads")
		log.Println("Storage: local (R2 credentials not configured)")
	}

	// Services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(eventRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, eventRepo)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, intentRepo, gateway, emailService)
	reviewService := services.NewReviewService(reviewRepo, eventRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, eventRepo)
	imageService := services.NewImageService(storageService)

	// Abandoned checkout intents pile up; sweep hourly.
	go func() {
		for range time.Tick(time.Hour) {
			checkoutService.CleanupExpiredIntents(24 * time.Hour)
		}
	}()

	authMiddleware := middleware.NewAuthMiddleware(authService, sessionStore)

	router := &handlers.Router{
		Auth:     handlers.NewAuthHandler(authService, sessionStore),
		Catalog:  handlers.NewCatalogHandler(catalogService, reviewService),
		Cart:     handlers.NewCartHandler(cartService),
		Orders:   handlers.NewOrderHandler(checkoutService),
		Reviews:  handlers.NewReviewHandler(reviewService),
		Wishlist: handlers.NewWishlistHandler(wishlistService),
		Contact:  handlers.NewContactHandler(emailService, cfg.Admin.ContactEmail),
		Admin:    handlers.NewAdminHandler(catalogService, userService, imageService, orderRepo),
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server listening on http://%s", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(authMiddleware),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("Server failed:", err)
	}
}
