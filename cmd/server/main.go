package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/neighborly/forum/internal/audit"
	"github.com/neighborly/forum/internal/config"
	"github.com/neighborly/forum/internal/database"
	"github.com/neighborly/forum/internal/guard"
	"github.com/neighborly/forum/internal/handler"
	"github.com/neighborly/forum/internal/middleware"
	"github.com/neighborly/forum/internal/notifier"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/internal/service"
	"github.com/neighborly/forum/internal/uploads"
	"github.com/neighborly/forum/pkg/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	auditLog, err := audit.Open(cfg.AuditLogPath)
	if err != nil {
		log.Fatalf("Failed to open audit log: %v", err)
	}
	defer auditLog.Close()

	broker, err := notifier.NewRedisBroker(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect redis broker: %v", err)
	}
	defer broker.Close()

	imageStore := uploads.NewStore(cfg.UploadDir, cfg.BaseURL)

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)
	adRepo := repository.NewAdvertisementRepository(database.DB)
	directoryRepo := repository.NewDirectoryRepository(database.DB)

	// Services
	g := guard.New(userRepo)
	authService := service.NewAuthService(userRepo, broker, cfg.JWTSecret, cfg.JWTExpiry)
	postService := service.NewPostService(postRepo, g, broker)
	messageService := service.NewMessageService(messageRepo, userRepo, g, broker)
	adService := service.NewAdvertisementService(adRepo, g, imageStore)
	directoryService := service.NewDirectoryService(directoryRepo)
	adminService := service.NewAdminService(userRepo, postService, adService, broker, auditLog)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	messageHandler := handler.NewMessageHandler(messageService)
	adHandler := handler.NewAdvertisementHandler(adService, imageStore)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Websocket hub consuming the broker subscription
	hub := notifier.NewHub(broker)
	go func() {
		if err := hub.Run(); err != nil {
			log.Fatalf("Notifier hub stopped: %v", err)
		}
	}()

	rateLimiter := middleware.NewRateLimiter(broker.Client(), middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = false
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(rateLimiter.Middleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Welcome to Neighborhood Forum API"})
	})
	router.Static("/uploads", imageStore.Dir())

	// Public routes
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/public-services/categories", directoryHandler.ListCategories)

	// Protected routes (require JWT)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/profile", authHandler.Profile)

		protected.GET("/posts", postHandler.List)
		protected.POST("/posts", postHandler.Create)
		protected.DELETE("/posts/:id", postHandler.Delete)

		protected.GET("/messages", messageHandler.List)
		protected.POST("/messages/admin", messageHandler.SendToAdmin)
		protected.POST("/messages/reply/:user_id", messageHandler.Reply)
		protected.POST("/messages/:id/read", messageHandler.MarkRead)
		protected.DELETE("/messages/:id", messageHandler.Delete)

		protected.GET("/advertisements", adHandler.List)
		protected.POST("/advertisements", adHandler.Create)
		protected.PUT("/advertisements/:id", adHandler.Update)
		protected.DELETE("/advertisements/:id", adHandler.Delete)

		protected.GET("/public-services", directoryHandler.ListGrouped)

		protected.GET("/ws", hub.HandleWebSocket)

		// Admin-only routes, gated on the cached admin claim
		admin := protected.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/public-services", directoryHandler.CreateService)
			admin.PUT("/public-services/:id", directoryHandler.UpdateService)
			admin.DELETE("/public-services/:id", directoryHandler.DeleteService)
			admin.POST("/public-services/categories", directoryHandler.CreateCategory)
			admin.PUT("/public-services/categories/:id", directoryHandler.UpdateCategory)
			admin.DELETE("/public-services/categories/:id", directoryHandler.DeleteCategory)

			admin.GET("/admin/pending-users", adminHandler.PendingUsers)
			admin.GET("/admin/users", adminHandler.AllUsers)
			admin.POST("/admin/users/:id/approve", adminHandler.ApproveUser)
			admin.POST("/admin/users/:id/reject", adminHandler.RejectUser)
			admin.POST("/admin/users/:id/ban", adminHandler.BanUser)
			admin.POST("/admin/users/:id/unban", adminHandler.UnbanUser)
			admin.POST("/admin/posts/:id/delete", adminHandler.DeletePost)
			admin.POST("/admin/advertisements/:id/delete", adminHandler.DeleteAdvertisement)
			admin.GET("/admin/audit", adminHandler.AuditEntries)
		}
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
