package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amoltdhage/FitChallengeBackend/cache"
	"github.com/amoltdhage/FitChallengeBackend/challenge"
	"github.com/amoltdhage/FitChallengeBackend/config"
	"github.com/amoltdhage/FitChallengeBackend/db"
	"github.com/amoltdhage/FitChallengeBackend/handlers"
	"github.com/amoltdhage/FitChallengeBackend/middleware"
	"github.com/amoltdhage/FitChallengeBackend/models"
	"github.com/amoltdhage/FitChallengeBackend/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Инициализация логирования и метрик
	utils.InitLogger()
	defer utils.Logger.Sync()
	utils.InitMetrics()

	utils.Logger.Info("starting_application")

	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatal("config_load_failed", zap.Error(err))
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	// Подключение к БД
	db.Connect(cfg)
	if err := db.DB.AutoMigrate(
		&models.User{},
		&models.ActivityRecord{},
	); err != nil {
		utils.Logger.Fatal("migration_failed", zap.Error(err))
	}

	// Redis не критичен для старта: без него живём без кэша и rate limit
	redisUp := true
	if err := cache.InitRedis(cfg, utils.Logger); err != nil {
		utils.Logger.Warn("redis_unavailable_continuing_without_cache", zap.Error(err))
		redisUp = false
	}

	// Ядро: адаптер хранилища + контроллер прогресса, собираются один раз
	store := challenge.NewGormStore(db.DB)
	progression := challenge.NewProgression(store, utils.Logger, time.Now)
	challengeHandler := handlers.NewChallengeHandler(store, progression, cfg, time.Now)
	handlers.Store = store

	// Настройка Gin
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Middleware в правильном порядке
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())

	// CSRF нужен только web-клиенту с cookie, мобильное приложение ходит
	// с Bearer-токеном
	if os.Getenv("ENABLE_CSRF") == "true" {
		r.Use(middleware.CSRFProtection([]byte(cfg.JWTSecret)))
	}

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статика
	r.Static("/uploads", "./uploads")

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
			"database":  "connected",
		})
	})

	// Публичные эндпоинты
	auth := r.Group("/api")
	if redisUp {
		auth.Use(middleware.RateLimitMiddleware(10, time.Minute))
	}
	auth.POST("/register", handlers.Register)
	auth.POST("/login", handlers.Login)

	// Защищенные эндпоинты
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Профиль
		api.GET("/profile", handlers.Profile)
		api.PUT("/profile", handlers.UpdateProfile)
		api.DELETE("/profile", handlers.DeleteProfile)

		// Челлендж
		ch := api.Group("/challenge")
		if redisUp {
			ch.Use(middleware.CacheMiddleware(30 * time.Second))
		}
		ch.GET("/days", challengeHandler.GetDays)
		ch.GET("/summary", challengeHandler.GetSummary)
		ch.POST("/days/:day/select", challengeHandler.SelectDay)
		ch.POST("/days/:day/activity", challengeHandler.SubmitActivity)

		// Админка
		admin := api.Group("/admin")
		admin.Use(middleware.RoleMiddleware(models.RoleAdmin))
		admin.GET("/activities", handlers.ListActivityRecords)
		admin.POST("/activities/approve", handlers.ApproveActivity)
	}

	// Метрики Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	utils.Logger.Info("challenge_configured",
		zap.Time("start_date", cfg.ChallengeStart),
		zap.Int("total_days", cfg.TotalDays),
	)

	// Запуск сервера
	startServer(r, cfg)
}

func startServer(router *gin.Engine, cfg *config.Config) {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("starting_http_server", zap.String("port", cfg.Port))

	fmt.Println("\n🚀 ================================")
	fmt.Println("   FitChallenge Backend Started")
	fmt.Println("   ================================")
	fmt.Printf("   🌐 Server:  http://localhost:%s\n", cfg.Port)
	fmt.Printf("   📊 Metrics: http://localhost:%s/metrics\n", cfg.Port)
	fmt.Printf("   ❤️  Health: http://localhost:%s/health\n", cfg.Port)
	fmt.Println("   ================================")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("shutting_down_server")
	fmt.Println("\n🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("server_forced_shutdown", zap.Error(err))
	}

	cache.Close()
	utils.Logger.Info("server_stopped")
	fmt.Println("✅ Server stopped gracefully")
}
