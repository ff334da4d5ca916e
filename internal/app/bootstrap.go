package app

import (
	"flowboard/internal/app/activity"
	"flowboard/internal/app/analytics"
	"flowboard/internal/app/board"
	"flowboard/internal/app/comment"
	"flowboard/internal/app/health"
	"flowboard/internal/app/tag"
	"flowboard/internal/app/task"
	"flowboard/internal/app/user"
	"flowboard/internal/config"
	"flowboard/internal/db"
	"flowboard/internal/db/seeder"
	"flowboard/internal/gateways/websocket"
	"flowboard/internal/middleware"
	"flowboard/internal/providers/redis"
	"flowboard/internal/router"
	"flowboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	if cfg.SeedDemo {
		seed := seeder.NewSeeder(dbConn, logger)
		if err := seed.Seed(); err != nil {
			logger.Warn("Failed to run seeders", zap.Error(err))
		}
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	eventBus := utils.NewEventBus()

	userRepo := user.NewRepository(dbConn)
	boardRepo := board.NewRepository(dbConn)
	tagRepo := tag.NewRepository(dbConn)
	taskRepo := task.NewRepository(dbConn)
	commentRepo := comment.NewRepository(dbConn)
	activityRepo := activity.NewRepository(dbConn)
	analyticsRepo := analytics.NewRepository(dbConn)

	userService := user.NewService(userRepo)
	boardService := board.NewService(boardRepo)
	tagService := tag.NewService(tagRepo, boardService, redisProvider)
	activityService := activity.NewService(activityRepo)
	taskService := task.NewService(taskRepo, boardService, activityService, redisProvider, eventBus, logger)
	commentService := comment.NewService(commentRepo, taskService, eventBus)
	analyticsService := analytics.NewService(analyticsRepo, boardService, activityService)

	hub := websocket.NewHub(logger, eventBus)
	go hub.Run()

	currentUserID := func(c *gin.Context) (uint64, bool) {
		u := middleware.CurrentUser(c)
		if u == nil {
			return 0, false
		}
		return u.ID, true
	}

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	boardHandler := board.NewHandler(boardService, currentUserID)
	taskHandler := task.NewHandler(taskService, currentUserID)
	tagHandler := tag.NewHandler(tagService, currentUserID)
	commentHandler := comment.NewHandler(commentService, currentUserID)
	analyticsHandler := analytics.NewHandler(analyticsService, currentUserID)

	r := router.NewRouter(logger, middleware.IdentityMiddleware(userService))

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterBoardRoutes(boardHandler)
	r.RegisterTaskRoutes(taskHandler)
	r.RegisterTagRoutes(tagHandler)
	r.RegisterCommentRoutes(commentHandler)
	r.RegisterAnalyticsRoutes(analyticsHandler)
	r.RegisterSwaggerRoutes()

	return &Application{
		Router: r,
		DB:     dbConn,
	}, nil
}
