package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/handler"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/ratelimit"
	"github.com/Zachkp/portfolio/internal/repository"
	"github.com/Zachkp/portfolio/internal/service"
	"github.com/Zachkp/portfolio/internal/storage"
	"github.com/Zachkp/portfolio/web"
)

const uploadsPath = "/uploads"

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Environment, cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	bucket, uploadDir := newBucket(ctx, cfg)
	notifier, closeNotifier := newNotifier(cfg)
	defer closeNotifier()

	services := service.New(service.Deps{
		DB:          db,
		Bucket:      bucket,
		Notifier:    notifier,
		Limiter:     newLimiter(ctx, cfg),
		VisitorSalt: cfg.VisitorSalt,
	})

	authSvc := auth.NewService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.SessionTTL)
	unsubscribe := watchSessions(authSvc)
	defer unsubscribe()

	go cleanupOldVisitorData(ctx, services.Visitors)

	tmpl, err := web.Templates()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	h := handler.New(services, authSvc, cfg, fallbackProfile())
	r := newRouter(cfg, tmpl, h, authSvc, services.Visitors, uploadDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}

func newRouter(cfg *config.Config, tmpl *template.Template, h *handler.Handler, authSvc *auth.Service, visitors *service.VisitorService, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware())
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(web.Static()))
	if uploadDir != "" {
		r.Static(uploadsPath, uploadDir)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	r.Use(auth.LoadSession(authSvc), visitorTrackingMiddleware(visitors))
	registerRedirects(r, cfg.Redirects)

	h.Routes(r, cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	return r
}

// registerRedirects serves the static path aliases: 308 when permanent,
// 307 otherwise.
func registerRedirects(r *gin.Engine, redirects []config.Redirect) {
	for _, rd := range redirects {
		status := http.StatusTemporaryRedirect
		if rd.Permanent {
			status = http.StatusPermanentRedirect
		}
		destination := rd.Destination
		r.GET(rd.Source, func(c *gin.Context) {
			c.Redirect(status, destination)
		})
	}
}

// newBucket uses MinIO when it is configured and a local directory
// otherwise. The directory is returned so the router can serve it.
func newBucket(ctx context.Context, cfg *config.Config) (storage.Bucket, string) {
	if cfg.MinIO.Enabled() {
		bucket, err := storage.NewMinioBucket(ctx, cfg.MinIO)
		if err == nil {
			log.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.Bucket).Msg("storing images in MinIO")
			return bucket, ""
		}
		log.Error().Err(err).Msg("MinIO unavailable, falling back to local uploads")
	}

	bucket, err := storage.NewLocalBucket(cfg.UploadDir, cfg.PublicBaseURL+uploadsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload directory")
	}
	log.Info().Str("dir", cfg.UploadDir).Msg("storing images on local disk")
	return bucket, cfg.UploadDir
}

// newNotifier mails contact messages over SMTP and publishes them to
// RabbitMQ, whichever are configured.
func newNotifier(cfg *config.Config) (notify.Notifier, func()) {
	var notifiers notify.Multi
	if cfg.SMTP.Enabled() {
		notifiers = append(notifiers, notify.NewSMTPNotifier(cfg.SMTP))
	} else {
		log.Warn().Msg("SMTP credentials not configured, contact emails will not be sent")
	}

	events, err := notify.NewAMQPNotifier(cfg.RabbitMQURL)
	if err != nil {
		log.Error().Err(err).Msg("RabbitMQ unavailable, contact events will not be published")
	} else if events.Enabled() {
		notifiers = append(notifiers, events)
	}

	closeFn := func() {
		if events == nil {
			return
		}
		if err := events.Close(); err != nil {
			log.Warn().Err(err).Msg("closing event publisher")
		}
	}
	if len(notifiers) == 0 {
		return notify.LogNotifier{}, closeFn
	}
	return notifiers, closeFn
}

func newLimiter(ctx context.Context, cfg *config.Config) ratelimit.Limiter {
	if cfg.RedisURL == "" {
		return ratelimit.Unlimited{}
	}
	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Error().Err(err).Msg("Redis unavailable, contact form is not rate limited")
		return ratelimit.Unlimited{}
	}
	return ratelimit.NewRedisLimiter(client, "contact:", cfg.ContactRateLimit, cfg.ContactRateWindow)
}
