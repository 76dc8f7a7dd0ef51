package main

import (
	"context"
	"encoding/gob"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"

	"stagefront/internal/config"
	"stagefront/internal/database"
	"stagefront/internal/handlers"
	"stagefront/internal/kvstore"
	"stagefront/internal/middleware"
	"stagefront/internal/models"
	"stagefront/internal/repositories"
	"stagefront/internal/server"
	"stagefront/internal/services"
)

func main() {
	// Register types for session serialization
	gob.Register(&models.Cart{})
	gob.Register(models.CartItem{})
	gob.Register([]models.CartItem{})

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
	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)
	productRepo := repositories.NewProductRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)
	draftRepo := repositories.NewDraftRepository(db.DB)

	// Token store for backend function auth
	var tokens kvstore.Store
	if cfg.Functions.TokenPath != "" {
		tokens = kvstore.NewFileStore(cfg.Functions.TokenPath)
	} else {
		tokens = kvstore.NewMemoryStore()
	}

	// Services
	var emailService services.EmailServiceInterface
	if cfg.Resend.APIKey != "" {
		emailService = services.NewResendEmailService(cfg.Resend)
	} else {
		emailService = services.NewMockEmailService()
	}

	paymentService := services.NewMockPaymentService(&cfg.Paystack)
	functionsService := services.NewFunctionsService(cfg.Functions, tokens)

	holdDuration := time.Duration(cfg.Checkout.HoldSeconds) * time.Second
	autosaveDelay := time.Duration(cfg.Checkout.AutosaveDelayMs) * time.Millisecond

	authService := services.NewAuthService(userRepo, emailService)
	eventService := services.NewEventService(eventRepo)
	ticketService := services.NewTicketService(ticketRepo, eventRepo, holdDuration)
	productService := services.NewProductService(productRepo, eventRepo)
	orderService := services.NewOrderService(orderRepo, ticketRepo, eventRepo, productRepo, emailService, holdDuration)
	draftService := services.NewDraftService(draftRepo, autosaveDelay)

	var imageService *services.ImageService
	if storage, err := services.NewR2Service(cfg.R2); err != nil {
		log.Printf("Image storage disabled: %v", err)
	} else {
		imageService = services.NewImageService(storage)
	}

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, authService)

	router := server.NewRouter(server.Handlers{
		Auth:      handlers.NewAuthHandler(authService, sessionStore),
		Public:    handlers.NewPublicHandler(eventService, ticketService, productService),
		Cart:      handlers.NewCartHandler(sessionStore, eventService, ticketService, productService),
		Checkout:  handlers.NewCheckoutHandler(orderService, ticketService, paymentService),
		Payment:   handlers.NewPaymentHandler(orderService, orderRepo, paymentService, paymentService),
		Orders:    handlers.NewOrderHandler(orderService, ticketService),
		Profile:   handlers.NewProfileHandler(authService),
		Organizer: handlers.NewOrganizerHandler(eventService, ticketService, productService, imageService),
		Drafts:    handlers.NewDraftHandler(draftService),
		Contact:   handlers.NewContactHandler(functionsService),
	}, authMiddleware)

	// Return inventory held by orders whose payment never landed.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				swept, err := orderService.SweepExpiredOrders()
				if err != nil {
					log.Printf("Expired order sweep failed: %v", err)
				} else if swept > 0 {
					log.Printf("Swept %d expired orders", swept)
				}
			}
		}
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Flush pending draft writes before the process exits.
	draftService.Close()
	log.Println("Server stopped")
}
