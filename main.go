package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"medchat/controller"
	"medchat/model"
	"medchat/platform"
	"medchat/service"

	"github.com/gin-gonic/gin"
	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = platform.Logger

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing) for the browser client
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Accept, Accept-Encoding")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, X-Request-Id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			c.GetString("requestId"),
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			c.Request.Method,
			path,
			c.Request.UserAgent(),
		)
	}
}

func newRouter(cfg *platform.Config, ctrl *controller.ConversationController, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware(cfg.CORSOrigin))
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	r.Static(service.UploadURLPrefix, cfg.UploadDir)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	ctrl.RegisterRoutes(api)
	return r
}

func run() error {
	//Load the .env file
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("failed to load the env file")
	}

	cfg, err := platform.LoadConfig()
	if err != nil {
		return err
	}
	if err := platform.InitLogger(cfg.LogPath, "medchat"); err != nil {
		return err
	}

	//init database
	db, err := platform.InitDB(cfg)
	if err != nil {
		return err
	}
	if err := model.InstallDB(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	audio, err := service.NewAudioStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := platform.NewLLMMetrics(registry)

	provider, err := service.SelectProvider(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	logger.Infof("LLM provider: %s", provider.Name())
	provider = service.WithTimeout(provider, cfg.LLMTimeout, metrics)

	conversations := service.NewConversationService(
		model.NewStore(db),
		service.NewTranslationService(provider),
		service.NewSummaryService(provider),
	)
	ctrl := controller.NewConversationController(conversations, audio, provider.Name())

	logger.Infof("Server listening on :%s", cfg.Port)
	return newRouter(cfg, ctrl, registry).Run(":" + cfg.Port)
}

func main() {
	if err := run(); err != nil {
		logger.Errorf("server stopped: %s", err)
		os.Exit(1)
	}
}
