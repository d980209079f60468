package routes

import (
	authapi "fitclub-backend/internal/api/auth"
	billingapi "fitclub-backend/internal/api/billing"
	catalogapi "fitclub-backend/internal/api/catalog"
	stripewebhooks "fitclub-backend/internal/api/stripewebhook"
	uploadapi "fitclub-backend/internal/api/upload"
	"fitclub-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	JWTSecret string

	Catalog *catalogapi.Handler
	Upload  *uploadapi.Handler
	Auth    *authapi.Handler
	Billing *billingapi.Handler
	Webhook *stripewebhooks.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Webhook signature verification needs the raw body, so it stays
	// outside the sanitizing group.
	r.POST("/webhook", d.Webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/login", d.Auth.Login)
	public.GET("/packages", d.Catalog.ListPackages)
	public.GET("/packages/:id", d.Catalog.GetPackage)
	public.GET("/packages/:id/videos", d.Catalog.ListPackageVideos)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(d.JWTSecret), middleware.SanitizeAndCleanInputMiddleware())
	auth.POST("/create-checkout-session", d.Billing.CreateCheckoutSession)
	auth.POST("/billing-portal", d.Billing.CreateBillingPortal)

	// Admin: every catalog mutation and the upload proxy.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(d.JWTSecret), middleware.RequireRole("admin"),
		middleware.SanitizeAndCleanInputMiddleware())
	admin.POST("/packages", d.Catalog.CreatePackage)
	admin.PUT("/packages/:id", d.Catalog.UpdatePackage)
	admin.POST("/videos", d.Catalog.CreateVideo)
	admin.PUT("/videos/:id", d.Catalog.UpdateVideo)
	admin.DELETE("/videos/:id", d.Catalog.DeleteVideo)
	admin.POST("/videos/assets", d.Catalog.CreateVideoAsset)
	admin.PUT("/videos/upload/:libraryId/:videoId", d.Upload.Proxy)
}
