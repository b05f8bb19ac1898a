package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	apperrors "shop-service/common/errors"
	"shop-service/common/logger"
	"shop-service/config"
	"shop-service/controllers"
	"shop-service/database"
	"shop-service/repository"
	"shop-service/routes"
	"shop-service/services"
	"shop-service/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	ctx := context.Background()

	db, disconnect, err := database.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Log.Fatal("mongo init failed", zap.Error(err))
	}
	defer disconnect()

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("redis init failed", zap.Error(err))
	}
	defer redisClient.Close()

	awsCfg, err := storage.LoadAWSConfig(ctx)
	if err != nil {
		logger.Log.Fatal("aws config failed", zap.Error(err))
	}
	blobs := storage.NewS3BlobStore(awsCfg, cfg.InvoiceBucket)

	productRepo := repository.NewMongoProductRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	cartCache := repository.NewRedisCartCache(redisClient, cfg.CartCacheTTL)

	cartService := services.NewCartService(userRepo, productRepo, cartCache, logger.Log)
	checkoutService := services.NewCheckoutService(services.NewStripeSessionCreator(cfg.StripeSecretKey), cfg.Currency, logger.Log)
	orderService := services.NewOrderService(orderRepo, userRepo, cartCache, logger.Log)
	invoiceService := services.NewInvoiceService(orderRepo, blobs, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(cors.Default())
	router.Use(apperrors.ErrorMiddleware())

	routes.Register(router,
		controllers.NewProductController(productRepo, cfg.PageSize),
		controllers.NewCartController(cartService),
		controllers.NewCheckoutController(cartService, checkoutService, orderService),
		controllers.NewOrderController(orderService, invoiceService),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("shop service listening on port " + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal("shutdown error", zap.Error(err))
	}
}
