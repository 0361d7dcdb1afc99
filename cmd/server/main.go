package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/config"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/database"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/handlers"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/kafka"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/middleware"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/redis"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/repositories"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/router"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/secrets"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/services"
	"github.com/tsuiketsu/tsuika-api-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger.InitLogger()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Redis is optional; a nil service disables caching
	redisService := redis.NewService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Kafka producer for sharing events
	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","))
	defer producer.Close()

	hasher, err := secrets.NewHasher(secrets.Params{
		Time:      cfg.HashTime,
		MemoryKiB: cfg.HashMemory,
		Threads:   cfg.HashThreads,
		KeyLen:    32,
		SaltLen:   16,
	})
	if err != nil {
		log.Fatal("Invalid hasher configuration:", err)
	}

	// Repositories and services
	folderRepo := repositories.NewFolderRepository(db)
	collaboratorRepo := repositories.NewCollaboratorRepository(db)
	shareLinkRepo := repositories.NewShareLinkRepository(db)

	userService := services.NewUserService(cfg.UserServiceURL)
	gate := services.NewAccessService(folderRepo, collaboratorRepo)
	collaborationService := services.NewCollaborationService(gate, folderRepo, collaboratorRepo, userService, producer, redisService)
	shareLinkService := services.NewShareLinkService(gate, shareLinkRepo, folderRepo, userService, hasher, producer)

	// Handlers
	folderHandler := handlers.NewFolderHandler(folderRepo, gate, redisService)
	bookmarkHandler := handlers.NewBookmarkHandler(db, gate)
	collaboratorHandler := handlers.NewCollaboratorHandler(collaborationService)
	shareLinkHandler := handlers.NewShareLinkHandler(shareLinkService)
	publicHandler := handlers.NewPublicHandler(shareLinkService)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	middleware.SetupPrometheus(r)
	r.Use(middleware.LoggerMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.SiteRoutes(r)

	// Anonymous share link resolution
	public := r.Group("/public")
	router.PublicRoutes(public, publicHandler)

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.TokenSecret))
	router.FolderRoutes(protected, folderHandler, bookmarkHandler, collaboratorHandler, shareLinkHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown:", err)
	}

	if redisService != nil {
		redisService.Close()
	}

	log.Println("Server exited")
}
