package router

import (
	"flowboard/internal/app/analytics"
	"flowboard/internal/app/board"
	"flowboard/internal/app/comment"
	"flowboard/internal/app/health"
	"flowboard/internal/app/tag"
	"flowboard/internal/app/task"
	"flowboard/internal/gateways/websocket"
	"flowboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(logger *zap.Logger, identity gin.HandlerFunc) *Router {
	registerValidations()

	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api")
	api.Use(identity)

	return &Router{Engine: engine, api: api}
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("taskstatus", task.ValidateStatus)
		v.RegisterValidation("taskpriority", task.ValidatePriority)
	}
}

// RegisterHealthRoutes stays outside the identity middleware so probes need
// no user header.
func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}

func (r *Router) RegisterBoardRoutes(handler board.Handler) {
	board.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterTaskRoutes(handler task.Handler) {
	task.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterTagRoutes(handler tag.Handler) {
	tag.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterCommentRoutes(handler comment.Handler) {
	comment.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterAnalyticsRoutes(handler analytics.Handler) {
	analytics.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
