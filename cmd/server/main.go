package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/foliogen-api/internal/cache"
	"github.com/yourusername/foliogen-api/internal/config"
	"github.com/yourusername/foliogen-api/internal/handler"
	"github.com/yourusername/foliogen-api/internal/middleware"
	"github.com/yourusername/foliogen-api/internal/repository"
	"github.com/yourusername/foliogen-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting Foliogen API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connected")

	// ── Cache ────────────────────────────────────────────
	portfolioCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	defer portfolioCache.Close()
	if cfg.RedisAddr == "" {
		log.Warn().Msg("No Redis configured, portfolio caching disabled")
	}

	// ── Repositories ─────────────────────────────────────
	userRepo := repository.NewUserRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	projectRepo := repository.NewProjectRepo(pool)
	analyticsRepo := repository.NewAnalyticsRepo(pool)

	// ── Services ─────────────────────────────────────────
	groq := service.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	engine := service.NewEngine()
	templates := service.NewTemplateRegistry()
	snapshotter := service.NewSnapshotter(cfg.ChromePath)

	// ── Middleware ────────────────────────────────────────
	issuer := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(issuer)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)

	// ── Handlers ─────────────────────────────────────────
	authHandler := handler.NewAuthHandler(userRepo, issuer)
	resumeHandler := handler.NewResumeHandler(groq, sessionRepo)
	generateHandler := handler.NewGenerateHandler(engine, templates, groq, portfolioCache, sessionRepo, analyticsRepo)
	previewHandler := handler.NewPreviewHandler(snapshotter)
	chatHandler := handler.NewChatHandler(groq, sessionRepo, projectRepo)
	historyHandler := handler.NewHistoryHandler(projectRepo)

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "foliogen-api",
			"time":    time.Now().UTC(),
		})
	})

	// ── Public Routes ────────────────────────────────────
	public := r.Group("/api", rateLimiter.Limit())
	{
		public.POST("/auth/signup", authHandler.Signup)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/refresh", authHandler.Refresh)
		public.GET("/templates", generateHandler.ListTemplates)
		public.GET("/templates/random", generateHandler.RandomTemplate)
	}

	// ── Authenticated Routes ─────────────────────────────
	api := r.Group("/api", authMiddleware.Authenticate(), rateLimiter.Limit())
	{
		// Auth
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)

		// Resume upload + sessions
		api.POST("/resume/upload", resumeHandler.Upload)
		api.GET("/resume/:sessionId", resumeHandler.GetSession)
		api.PATCH("/resume/:sessionId", resumeHandler.UpdateSession)

		// Generation
		api.POST("/generate", generateHandler.Generate)
		api.POST("/templates/suggest", generateHandler.SuggestTemplate)

		// Preview
		api.POST("/preview", previewHandler.Render)
		api.POST("/preview/screenshot", previewHandler.Screenshot)
		api.POST("/preview/pdf", previewHandler.PDF)

		// Chat refinement
		api.POST("/chat", chatHandler.Chat)
		api.POST("/chat/stream", chatHandler.ChatStream)
		api.GET("/chat/:sessionId", chatHandler.History)

		// History
		api.GET("/history", historyHandler.List)
		api.POST("/history", historyHandler.Save)
		api.GET("/history/:id", historyHandler.Get)
		api.DELETE("/history/:id", historyHandler.Delete)
		api.GET("/history/:id/archive", historyHandler.Archive)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("Foliogen API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
