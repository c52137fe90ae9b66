// Package server contains the HTTP handlers, routes and middleware wiring for the API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "vidtube/docs" // swagger docs
	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/events"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	store          storage.Store
	publisher      events.Publisher

	userService         *service.UserService
	videoService        *service.VideoService
	commentService      *service.CommentService
	likeService         *service.LikeService
	playlistService     *service.PlaylistService
	subscriptionService *service.SubscriptionService
	tweetService        *service.TweetService
	dashboardService    *service.DashboardService
}

// Deps are the already-initialized collaborators a Server is built from.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Store     storage.Store
	Prober    media.DurationProber
	Publisher events.Publisher
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional: without it caching, rate limits and logout degrade.
	cache.InitRedis(cfg.RedisURL)

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	var prober media.DurationProber = media.NoopProber{}
	if cfg.FFProbeEnabled {
		prober = media.FFProbe{Timeout: 30 * time.Second}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.AMQPURL)
		if err != nil {
			middleware.Logger.Warn("event broker unavailable, events disabled", slog.String("error", err.Error()))
		} else {
			publisher = rabbit
		}
	}

	return NewServerWithDeps(cfg, Deps{
		DB:        db,
		Redis:     cache.GetClient(),
		Store:     store,
		Prober:    prober,
		Publisher: publisher,
	})
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("database is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if deps.Prober == nil {
		deps.Prober = media.NoopProber{}
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}

	userRepo := repository.NewUserRepository(deps.DB)
	videoRepo := repository.NewVideoRepository(deps.DB)
	commentRepo := repository.NewCommentRepository(deps.DB)
	likeRepo := repository.NewLikeRepository(deps.DB)
	playlistRepo := repository.NewPlaylistRepository(deps.DB)
	subRepo := repository.NewSubscriptionRepository(deps.DB)
	tweetRepo := repository.NewTweetRepository(deps.DB)

	uploader := media.NewUploader(deps.Store, deps.Prober, cfg.MediaTempDir)

	return &Server{
		config:         cfg,
		db:             deps.DB,
		redis:          deps.Redis,
		promMiddleware: middleware.InitMetrics("vidtube-api"),
		store:          deps.Store,
		publisher:      deps.Publisher,

		userService:         service.NewUserService(userRepo, uploader, cfg.JWTSecret, cfg.JWTTTL()),
		videoService:        service.NewVideoService(videoRepo, uploader, deps.Publisher),
		commentService:      service.NewCommentService(commentRepo, videoRepo, userRepo),
		likeService:         service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, userRepo),
		playlistService:     service.NewPlaylistService(playlistRepo, videoRepo, userRepo),
		subscriptionService: service.NewSubscriptionService(subRepo, userRepo, deps.Publisher),
		tweetService:        service.NewTweetService(tweetRepo, userRepo),
		dashboardService:    service.NewDashboardService(videoRepo, subRepo),
	}, nil
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	withStack := !s.config.IsProduction()
	app := fiber.New(fiber.Config{
		AppName:   "VidTube API",
		BodyLimit: s.config.MaxUploadBytes(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, err, withStack)
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Tracing before the context middleware so the trace id reaches service logs.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: !strings.Contains(origins, "*"),
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(
				models.NewAPIError(fiber.StatusTooManyRequests, "Too many requests, please try again later.", nil))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/healthcheck", s.ReadinessCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	if _, ok := s.store.(*storage.LocalStore); ok {
		app.Static("/media", s.config.StorageLocalDir, fiber.Static{ByteRange: true})
	}

	api := app.Group("/api/v1")
	api.Get("/swagger/*", swagger.HandlerDefault)

	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	protected := api.Group("", s.AuthRequired())

	me := protected.Group("/users")
	me.Post("/logout", s.Logout)
	me.Get("/current-user", s.GetCurrentUser)

	videos := protected.Group("/videos")
	videos.Get("/", s.ListVideos)
	videos.Post("/", middleware.RateLimit(s.redis, 10, time.Hour, "publish_video"), s.PublishVideo)
	// Specific routes before the generic /:videoId
	videos.Patch("/toggle/publish/:videoId", s.TogglePublishStatus)
	videos.Get("/:videoId", s.GetVideo)
	videos.Patch("/:videoId", s.UpdateVideo)
	videos.Delete("/:videoId", s.DeleteVideo)

	comments := protected.Group("/comments")
	comments.Patch("/c/:commentId", s.UpdateComment)
	comments.Delete("/c/:commentId", s.DeleteComment)
	comments.Get("/:videoId", s.GetVideoComments)
	comments.Post("/:videoId", middleware.RateLimit(s.redis, 20, time.Minute, "create_comment"), s.AddComment)

	likes := protected.Group("/likes")
	likes.Post("/toggle/v/:videoId", s.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", s.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", s.ToggleTweetLike)
	likes.Get("/videos", s.GetLikedVideos)

	tweets := protected.Group("/tweets")
	tweets.Post("/", s.CreateTweet)
	tweets.Get("/user/:userId", s.GetUserTweets)
	tweets.Patch("/:tweetId", s.UpdateTweet)
	tweets.Delete("/:tweetId", s.DeleteTweet)

	playlists := protected.Group("/playlist")
	playlists.Post("/", s.CreatePlaylist)
	playlists.Get("/user/:userId", s.GetUserPlaylists)
	playlists.Patch("/add/:videoId/:playlistId", s.AddVideoToPlaylist)
	playlists.Patch("/remove/:videoId/:playlistId", s.RemoveVideoFromPlaylist)
	playlists.Get("/:playlistId", s.GetPlaylist)
	playlists.Patch("/:playlistId", s.UpdatePlaylist)
	playlists.Delete("/:playlistId", s.DeletePlaylist)

	subscriptions := protected.Group("/subscriptions")
	subscriptions.Post("/c/:channelId", s.ToggleSubscription)
	subscriptions.Get("/c/:channelId", s.GetChannelSubscribers)
	subscriptions.Get("/u/:subscriberId", s.GetSubscribedChannels)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", s.GetChannelStats)
	dashboard.Get("/videos", s.GetChannelVideos)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is reported but
// not required: the API degrades without it.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return models.Respond(c, status, fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  s.store.Name(),
		},
		"time": time.Now(),
	}, "OK")
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		tokenString := ""
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			return models.NewUnauthorizedError("Unauthorized request")
		}

		claims, err := s.userService.ParseToken(c.UserContext(), tokenString)
		if err != nil {
			return err
		}

		c.Locals("userID", claims.UserID)
		c.Locals("tokenClaims", claims)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), claims.UserID))

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			middleware.Logger.Error("error closing event publisher", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
