package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"menfem/cmd/fx/access_fx"
	"menfem/cmd/fx/account_fx"
	"menfem/cmd/fx/content_fx"
	"menfem/cmd/fx/db_fx"
	"menfem/cmd/fx/event_fx"
	"menfem/cmd/fx/mail_fx"
	"menfem/cmd/fx/memcache_fx"
	"menfem/cmd/fx/newsletter_fx"
	"menfem/cmd/fx/payment_service_fx"
	"menfem/cmd/fx/taxonomy_fx"
	"menfem/internal/api/controllers"
	"menfem/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		access_fx.Module,
		taxonomy_fx.Module,
		content_fx.Module,
		account_fx.Module,
		newsletter_fx.Module,
		payment_service_fx.Module,
		event_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	contentController *controllers.ContentController,
	trackingController *controllers.TrackingController,
	taxonomyController *controllers.TaxonomyController,
	accountController *controllers.AccountController,
	newsletterController *controllers.NewsletterController,
	paymentController *controllers.PaymentController,
	eventController *controllers.EventController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		contentController, trackingController, taxonomyController,
		accountController, newsletterController, paymentController,
		eventController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	contentController *controllers.ContentController,
	trackingController *controllers.TrackingController,
	taxonomyController *controllers.TaxonomyController,
	accountController *controllers.AccountController,
	newsletterController *controllers.NewsletterController,
	paymentController *controllers.PaymentController,
	eventController *controllers.EventController) {

	// Public reads carry an optional bearer token so premium items unlock
	// for entitled viewers without requiring auth for anyone else.
	content := r.Group("/content", middleware.OptionalJWTAuthMiddleware())
	content.GET("", contentController.ListContent)
	content.GET("/:slug", contentController.GetContentBySlug)

	r.GET("/categories", taxonomyController.ListCategories)
	r.GET("/tags", taxonomyController.ListTags)

	r.POST("/track", trackingController.Track)

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/verify-email", accountController.VerifyEmail)
	accounts.POST("/forgot-password", accountController.ForgotPassword)
	accounts.POST("/reset-password", accountController.ResetPassword)

	me := accounts.Group("/me", middleware.JWTAuthMiddleware())
	me.GET("", accountController.GetMe)
	me.GET("/access", accountController.GetAccess)

	newsletter := r.Group("/newsletter")
	newsletter.POST("/subscribe", newsletterController.Subscribe)
	newsletter.POST("/confirm", newsletterController.ConfirmSubscription)
	newsletter.POST("/unsubscribe", newsletterController.Unsubscribe)

	r.GET("/plans", paymentController.ListPlans)

	payments := r.Group("/payments")
	payments.POST("/webhook", paymentController.HandleWebhook)
	checkout := payments.Group("/checkout", middleware.JWTAuthMiddleware())
	checkout.POST("/plan", paymentController.CreatePlanCheckout)
	checkout.POST("/content", paymentController.CreateContentCheckout)

	events := r.Group("/events")
	events.GET("", eventController.ListUpcoming)
	events.GET("/:slug", eventController.GetBySlug)
	events.POST("/:slug/rsvp", middleware.JWTAuthMiddleware(), eventController.RSVP)

	admin := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	admin.POST("/content", contentController.CreateContent)
	admin.PUT("/content", contentController.UpdateContent)
	admin.POST("/content/:id/publish", contentController.PublishContent)
	admin.DELETE("/content/:id", contentController.DeleteContent)
	admin.POST("/categories", taxonomyController.CreateCategory)
	admin.DELETE("/categories/:id", taxonomyController.DeleteCategory)
	admin.POST("/tags", taxonomyController.CreateTag)
	admin.DELETE("/tags/:id", taxonomyController.DeleteTag)
	admin.GET("/newsletter/digest/preview", newsletterController.PreviewDigest)
	admin.POST("/newsletter/digest/send", newsletterController.SendDigest)
}
