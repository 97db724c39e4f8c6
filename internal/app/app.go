package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "taskhub/docs"
	"taskhub/internal/config"
	"taskhub/internal/handlers"
	"taskhub/internal/middleware"
	"taskhub/internal/pdf"
	"taskhub/internal/repositories"
	"taskhub/internal/routes"
	"taskhub/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMin)*time.Minute)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	userService := services.NewUserService(userRepo, emailService, authService)

	var notifier services.TaskNotifier
	if cfg.Telegram.BotToken != "" {
		n, err := services.NewTelegramNotifier(cfg.Telegram.BotToken)
		if err != nil {
			log.Printf("telegram notifications disabled: %v", err)
		} else {
			notifier = n
		}
	}
	taskService := services.NewTaskService(taskRepo, userRepo, notifier)

	reportGen := pdf.NewReportGenerator()

	// === Handlers ===
	refreshTTL := time.Duration(cfg.Auth.RefreshTTLDay) * 24 * time.Hour
	authHandler := handlers.NewAuthHandler(userService, authService, refreshTTL)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, userService, reportGen)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		router.Use(middleware.RateLimit(rdb, cfg.Redis.RateLimit,
			time.Duration(cfg.Redis.RateWindowSecs)*time.Second))
	}

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, []byte(cfg.Auth.JWTSecret), authHandler, userHandler, taskHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server error: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
