package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/hanlabs/namegen-proxy/internal/config"
	"github.com/hanlabs/namegen-proxy/internal/diagnostics"
	"github.com/hanlabs/namegen-proxy/internal/logger"
	"github.com/hanlabs/namegen-proxy/internal/metrics"
	"github.com/hanlabs/namegen-proxy/internal/namegen"
	"github.com/hanlabs/namegen-proxy/internal/payment"
	"github.com/hanlabs/namegen-proxy/internal/quota"
	"github.com/hanlabs/namegen-proxy/internal/share"
	"github.com/hanlabs/namegen-proxy/internal/tts"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	startupLog := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		TimeFormat:      time.Kitchen,
	})

	startupLog.Info("Setting Gin mode", "mode", cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	appLogger := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))

	// The shared directory backs both uploads and static serving.
	if err := os.MkdirAll(cfg.SharedDir, 0o755); err != nil {
		startupLog.Fatal("Failed to create shared directory", "dir", cfg.SharedDir, "error", err)
	}

	if cfg.PolicyFile != "" {
		if err := namegen.LoadPolicyFile(cfg.PolicyFile); err != nil {
			startupLog.Fatal("Failed to load policy file", "path", cfg.PolicyFile, "error", err)
		}
		startupLog.Info("Loaded policy overrides", "path", cfg.PolicyFile)
	}

	// Initialize services
	diagRecorder := diagnostics.NewRecorder()
	upstreamClient := namegen.NewClient(
		cfg.ZhipuBaseURL,
		cfg.ZhipuAPIKey,
		cfg.ZhipuModel,
		time.Duration(cfg.UpstreamTimeoutSeconds)*time.Second,
		diagRecorder,
		appLogger,
	)
	pipeline := namegen.NewPipeline(upstreamClient, diagRecorder, appLogger)
	quotaService := quota.NewService(
		quota.NewMemoryStore(),
		quota.NewMemoryMemberStore(),
		cfg.FreeMonthlyRequests,
		appLogger,
	)
	janitor := quotaService.StartJanitor(cfg.QuotaRetentionMonths)
	ttsService := tts.NewService(
		cfg.BaiduAPIKey,
		cfg.BaiduSecretKey,
		cfg.BaiduTokenURL,
		cfg.BaiduTTSURL,
		time.Duration(cfg.TTSTimeoutSeconds)*time.Second,
	)

	// Initialize handlers
	generateHandler := namegen.NewHandler(pipeline, upstreamClient, quotaService, appLogger)
	memberHandler := quota.NewHandler(quotaService, appLogger)
	debugHandler := diagnostics.NewHandler(
		diagRecorder,
		quotaService,
		upstreamClient.HasCredentials,
		upstreamClient.ChatCompletionsURL(),
		appLogger,
	)
	ttsHandler := tts.NewHandler(ttsService, appLogger)
	paymentHandler := payment.NewHandler(cfg.PaypalClientID, cfg.PaypalPlanID, cfg.PayProvider, appLogger)
	shareHandler := share.NewHandler(cfg.SharedDir, cfg.PublicBaseURL, appLogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLoggingMiddleware(appLogger))

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Member")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/generate", quota.RequireQuota(quotaService, appLogger), generateHandler.Generate)

	debug := router.Group("/debug")
	{
		debug.GET("/status", debugHandler.Status)
		debug.GET("/ping", debugHandler.Ping)
	}

	member := router.Group("/member")
	{
		member.GET("/status", memberHandler.MemberStatus)
		member.POST("/activate", memberHandler.ActivateMember)
	}

	router.GET("/payment/config", paymentHandler.Config)
	router.POST("/subscription/checkout", paymentHandler.CheckoutSubscription)

	router.POST("/tts", ttsHandler.Synthesize)

	router.POST("/share/upload", quota.RequireMember(quotaService, "share_upload"), shareHandler.Upload)
	router.Static("/share", cfg.SharedDir)

	router.GET("/metrics", metrics.Handler())

	port := ":" + cfg.Port

	startupLog.Info("🔁  namegen proxy listening on " + port)
	startupLog.Info("✅  free quota", "requests_per_month", cfg.FreeMonthlyRequests)
	if cfg.ZhipuAPIKey == "" {
		startupLog.Warn("⚠️  ZHIPU_API_KEY not set, /generate will answer 500")
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			startupLog.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	startupLog.Info("🛑 Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		startupLog.Fatal("Server forced to shutdown", "error", err)
	}

	startupLog.Info("✅ Server exited")
}
