package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okuznetsova/coffeepoint-bot/bot"
	"github.com/okuznetsova/coffeepoint-bot/config"
	"github.com/okuznetsova/coffeepoint-bot/controllers"
	"github.com/okuznetsova/coffeepoint-bot/flow"
	"github.com/okuznetsova/coffeepoint-bot/logger"
	"github.com/okuznetsova/coffeepoint-bot/models"
)

func main() {
	// Missing credentials are fatal: the bot must not accept a single
	// update without them.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.LogLevel)
	defer zl.Sync()
	sugar := zl.Sugar()

	// Connect to database and migrate. AutoMigrate only adds what is
	// missing, so the milk/addons columns appear on databases created
	// before they existed without touching old rows.
	if err := config.ConnectDatabase(cfg); err != nil {
		sugar.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.GetDB().AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		sugar.Fatalf("Failed to migrate database: %v", err)
	}
	sugar.Info("Database migration completed successfully")

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		sugar.Fatalf("Failed to connect to Telegram: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := flow.NewSessionStore(flow.DefaultSessionTTL)
	go sessions.RunSweeper(ctx, 10*time.Minute)

	// Staff-internal admin surface: health, recent orders, metrics.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/orders", controllers.GetOrders)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		sugar.Infof("Admin server is running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("Failed to start admin server: %v", err)
		}
	}()

	b := bot.New(api, sessions, cfg.StaffChatID)
	b.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("Admin server shutdown failed: %v", err)
	}
	sugar.Info("Shut down cleanly")
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coffeepoint bot is running",
	})
}
