package main

import (
	"log"
	"time"

	"fitclub-backend/config"
	"fitclub-backend/database"
	authapi "fitclub-backend/internal/api/auth"
	billingapi "fitclub-backend/internal/api/billing"
	catalogapi "fitclub-backend/internal/api/catalog"
	stripewebhooks "fitclub-backend/internal/api/stripewebhook"
	uploadapi "fitclub-backend/internal/api/upload"
	routes "fitclub-backend/internal/app/http"
	"fitclub-backend/internal/catalogsync"
	"fitclub-backend/internal/infra/blobstore"
	"fitclub-backend/internal/infra/bunny"
	"fitclub-backend/internal/infra/stripebilling"
	"fitclub-backend/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DBURL)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	stripeClient := stripebilling.New(cfg.StripeSecretKey)
	bunnyClient := bunny.New(bunny.Config{
		BaseURL:   cfg.BunnyAPIBaseURL,
		LibraryID: cfg.BunnyLibraryID,
		AccessKey: cfg.BunnyAccessKey,
	})
	blobs, err := blobstore.NewS3(blobstore.Config{
		Endpoint:      cfg.StorageEndpoint,
		Region:        cfg.StorageRegion,
		Bucket:        cfg.StorageBucket,
		AccessKey:     cfg.StorageAccessKey,
		SecretKey:     cfg.StorageSecretKey,
		PublicBaseURL: cfg.StoragePublicURL,
	})
	if err != nil {
		logger.Fatal("blob storage init failed", zap.Error(err))
	}

	st := store.New(db)
	engine := catalogsync.New(st, stripeClient, bunnyClient, blobs, cfg.Currency, logger)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret: cfg.JWTSecret,
		Catalog:   catalogapi.NewHandler(engine, st),
		Upload:    uploadapi.NewHandler(bunnyClient, logger),
		Auth:      authapi.NewHandler(db, cfg.JWTSecret),
		Billing:   billingapi.NewHandler(db, stripeClient, cfg.AppURL),
		Webhook:   stripewebhooks.NewHandler(db, cfg.StripeWebhookSecret, logger),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
