package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"gamebazaar/internal/adapter/api"
	"gamebazaar/internal/adapter/api/handler"
	apimiddleware "gamebazaar/internal/adapter/api/middleware"
	"gamebazaar/internal/adapter/api/router"
	"gamebazaar/internal/adapter/repository"
	domainrepo "gamebazaar/internal/domain/repository"
	"gamebazaar/internal/domain/service"
	"gamebazaar/internal/infrastructure/auth"
	"gamebazaar/internal/infrastructure/ratelimit"
	"gamebazaar/internal/infrastructure/seed"
	"gamebazaar/internal/infrastructure/textgen"
	"gamebazaar/internal/infrastructure/websocket"
	"gamebazaar/internal/usecase"
	"gamebazaar/pkg/config"
	"gamebazaar/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orderRepo, closeOrders, err := newOrderRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize order store: %v", err)
	}
	defer closeOrders()

	userRepo := repository.NewMemoryUserRepository()
	listingRepo := repository.NewMemoryListingRepository()
	boostingRepo := repository.NewMemoryBoostingRepository()
	chatRepo := repository.NewMemoryChatRepository()

	seedData, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	if err := seedData.Apply(ctx, seed.Repositories{
		Users:    userRepo,
		Listings: listingRepo,
		Boosting: boostingRepo,
		Chats:    chatRepo,
	}); err != nil {
		log.Fatalf("Failed to apply seed data: %v", err)
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter(cfg.MessageRatePerMinute, cfg.MessageBurst)
	rateLimiter.StartCleanupRoutine(10 * time.Minute)
	defer rateLimiter.Stop()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	var generator service.TextGenerator
	if cfg.TextGenURL != "" {
		generator = textgen.NewClient(cfg.TextGenURL, cfg.TextGenAPIKey, cfg.TextGenModel, cfg.TextGenTimeout)
	}
	payments := service.NewSimulatedPaymentService(cfg.PaymentDelay)
	linkPolicy := service.NewLinkPolicy(cfg.PlatformDomain)

	userUseCase := usecase.NewUserUseCase(userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, linkPolicy, wsManager, rateLimiter)
	orderUseCase := usecase.NewOrderUseCase(chatRepo, orderRepo, wsManager)
	checkoutUseCase := usecase.NewCheckoutUseCase(listingRepo, orderRepo, chatRepo, payments, wsManager)
	boostingUseCase := usecase.NewBoostingUseCase(boostingRepo, chatRepo, wsManager, rateLimiter, cfg.BidDelay)
	listingUseCase := usecase.NewListingUseCase(listingRepo, generator, cfg.TextGenTimeout)

	wsManager.SetInboundHandler(chatUseCase)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokens, userUseCase)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	router.Setup(e, router.Handlers{
		Health:   handler.NewHealthHandler(cfg.OrderStore),
		DevToken: handler.NewDevTokenHandler(tokens, userRepo),
		User:     handler.NewUserHandler(userUseCase),
		Chat:     handler.NewChatHandler(chatUseCase),
		Order:    handler.NewOrderHandler(orderUseCase),
		Checkout: handler.NewCheckoutHandler(checkoutUseCase),
		Listing:  handler.NewListingHandler(listingUseCase),
		Boosting: handler.NewBoostingHandler(boostingUseCase),
		Admin:    handler.NewAdminHandler(orderUseCase),
		WS:       handler.NewWebSocketHandler(wsManager, cfg.IsDevelopment()),
	}, cfg.Environment, authMiddleware, adminMiddleware)

	go func() {
		logger.Info("Server starting on port %s (environment=%s, order_store=%s)", cfg.ServerPort, cfg.Environment, cfg.OrderStore)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// newOrderRepository builds the administrative order mirror selected by ORDER_STORE.
func newOrderRepository(ctx context.Context, cfg *config.Config) (domainrepo.OrderRepository, func(), error) {
	switch cfg.OrderStore {
	case "", "memory":
		return repository.NewMemoryOrderRepository(), func() {}, nil
	case "firestore":
	default:
		return nil, nil, fmt.Errorf("unknown order store %q", cfg.OrderStore)
	}

	if cfg.FirebaseProject == "" {
		return nil, nil, errors.New("FIREBASE_PROJECT_ID is required for the firestore order store")
	}

	var opts []option.ClientOption
	switch {
	case cfg.FirebaseServiceAccountJSON != "":
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)))
	case cfg.FirebaseServiceAccountPath != "":
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
			return nil, nil, fmt.Errorf("service account file: %w", err)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountPath))
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return repository.NewFirestoreOrderRepository(client), func() { client.Close() }, nil
}
