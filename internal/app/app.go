package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpController "culinary-hub/internal/controller/http"
	"culinary-hub/internal/model"
	"culinary-hub/internal/notify"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/cache"
	"culinary-hub/pkg/config"
	"culinary-hub/pkg/database"
	"culinary-hub/pkg/imageproc"
	"culinary-hub/pkg/jwt"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/middleware"
	"culinary-hub/pkg/queue"
	"culinary-hub/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "culinary-hub/docs" // Swagger docs
)

const shutdownTimeout = 5 * time.Second

// Dependencies are the external resources the API runs on. Redis and
// Publisher are optional: without Redis the course cache and rate limiter
// are disabled, without Publisher no notification events are sent.
type Dependencies struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Storage   storage.Storage
	Publisher usecase.EventPublisher
}

type App struct {
	cfg       *config.Config
	log       *logger.Logger
	deps      Dependencies
	queue     *queue.Client
	router    *gin.Engine
	server    *http.Server
	scheduler *cron.Cron
	errCh     chan error
}

// NewApp connects to every backing service named in cfg and wires the API.
func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(model.All()...); err != nil {
			return nil, fmt.Errorf("failed to auto-migrate: %w", err)
		}
		log.Info("Schema auto-migrated")
	}

	store, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", cfg.StorageDriver, err)
	}

	deps := Dependencies{DB: db, Storage: store}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, running without cache and rate limiting: %v", err)
	} else {
		deps.Redis = redisClient
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, notifications disabled: %v", err)
	} else {
		deps.Publisher = queueClient
	}

	a, err := New(cfg, log, deps)
	if err != nil {
		return nil, err
	}
	a.queue = queueClient
	return a, nil
}

// New wires repositories, use cases and handlers over already open
// dependencies.
func New(cfg *config.Config, log *logger.Logger, deps Dependencies) (*App, error) {
	var (
		store cache.Store
		feed  notify.Subscriber
	)
	if deps.Redis != nil {
		store = cache.NewStore(deps.Redis)
		feed = notify.NewFeed(deps.Redis)
	}

	// Initialize repositories
	userRepo := persistent.NewUserRepository(deps.DB)
	postRepo := persistent.NewPostRepository(deps.DB)
	commentRepo := persistent.NewCommentRepository(deps.DB)
	courseRepo := persistent.NewCourseRepository(deps.DB)
	reviewRepo := persistent.NewReviewRepository(deps.DB)
	recipeRepo := persistent.NewRecipeRepository(deps.DB)
	chefRepo := persistent.NewChefRepository(deps.DB)
	enrollmentRepo := persistent.NewEnrollmentRepository(deps.DB)

	// Initialize use cases
	uploader := usecase.NewImageUploader(deps.Storage, imageproc.Options{
		MaxWidth:  cfg.ImageMaxWidth,
		MaxHeight: cfg.ImageMaxHeight,
		Quality:   float32(cfg.ImageQuality),
	})
	userUseCase := usecase.NewUserUseCase(userRepo, store, uploader, log)
	postUseCase := usecase.NewPostUseCase(postRepo, commentRepo, uploader, log)
	commentUseCase := usecase.NewCommentUseCase(postRepo, commentRepo, log)
	courseUseCase := usecase.NewCourseUseCase(courseRepo, reviewRepo, store, uploader, log)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, courseRepo, recipeRepo, store, log)
	recipeUseCase := usecase.NewRecipeUseCase(recipeRepo, uploader, log)
	chefUseCase := usecase.NewChefUseCase(chefRepo, userRepo, reviewRepo, uploader, deps.Publisher, log)
	enrollmentUseCase := usecase.NewEnrollmentUseCase(enrollmentRepo, userRepo, deps.Publisher, log)

	// Initialize HTTP handlers
	handlers := httpController.Handlers{
		User:         httpController.NewUserHandler(userUseCase, log),
		Post:         httpController.NewPostHandler(postUseCase, commentUseCase, log),
		Course:       httpController.NewCourseHandler(courseUseCase, log),
		Review:       httpController.NewReviewHandler(reviewUseCase, log),
		Recipe:       httpController.NewRecipeHandler(recipeUseCase, log),
		Chef:         httpController.NewChefHandler(chefUseCase, log),
		Enrollment:   httpController.NewEnrollmentHandler(enrollmentUseCase, log),
		Notification: httpController.NewNotificationHandler(feed, log),
	}

	scheduler, err := newScheduler(cfg.RatingReconcileCron, chefUseCase, log)
	if err != nil {
		return nil, err
	}

	router := newRouter(cfg, log, deps.Redis, handlers, userUseCase)

	return &App{
		cfg:       cfg,
		log:       log,
		deps:      deps,
		router:    router,
		scheduler: scheduler,
		server: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		errCh: make(chan error, 1),
	}, nil
}

func newRouter(cfg *config.Config, log *logger.Logger, redisClient *redis.Client, handlers httpController.Handlers, accounts middleware.AccountChecker) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.Zap()))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	httpController.RegisterRoutes(
		r.Group("/api"),
		handlers,
		middleware.AuthMiddleware(jwt.NewService(cfg.JWTSecret), accounts),
		middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute),
	)

	return r
}

// newScheduler registers the chef rating reconciliation. An empty schedule
// disables it.
func newScheduler(schedule string, chefs usecase.ChefUseCase, log *logger.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	if schedule == "" {
		return scheduler, nil
	}

	_, err := scheduler.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		changed, err := chefs.ReconcileRatings(ctx)
		if err != nil {
			log.Error("Chef rating reconciliation failed: %v", err)
			return
		}
		log.Info("Chef rating reconciliation done: %d chefs corrected", changed)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid rating reconcile schedule %q: %w", schedule, err)
	}
	return scheduler, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run starts the scheduler and the HTTP server in the background.
func (a *App) Run() {
	a.scheduler.Start()

	go func() {
		a.log.Info("Culinary Hub API starting on port %s", a.cfg.ServerPort)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- err
		}
	}()
}

// Wait blocks until SIGINT/SIGTERM or a server failure.
func (a *App) Wait() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		a.log.Info("Received %s, shutting down...", sig)
		return nil
	case err := <-a.errCh:
		return fmt.Errorf("server failed: %w", err)
	}
}

// Shutdown drains in-flight requests and closes every connection.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}

	<-a.scheduler.Stop().Done()

	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rabbitmq: %w", err))
		}
	}
	if a.deps.Redis != nil {
		if err := a.deps.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.deps.DB != nil {
		if err := database.Close(a.deps.DB); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	a.log.Info("Culinary Hub API exited")
	return errors.Join(errs...)
}
