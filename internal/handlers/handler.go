package handlers

import (
	"cadr/internal/logger"
	"cadr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	gatherer prometheus.Gatherer
}

// NewHandler constructs a new HTTP handler with dependencies. A nil
// gatherer serves the default Prometheus registry.
func NewHandler(services *service.Service, log *logger.Logger, gatherer prometheus.Gatherer) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{services: services, log: log, gatherer: gatherer}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// chamber status stream
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorIdentity)
	{
		h.registerAnalysisRoutes(api)
		h.registerRecordingRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerAnalysisRoutes(api *gin.RouterGroup) {
	api.GET("/profiles", h.listProfiles)
	api.POST("/fits", h.createFit)

	runs := api.Group("/runs")
	{
		runs.POST("", h.createRun)
		runs.GET("", h.listRuns)
		runs.GET("/:id", h.getRun)
		runs.GET("/:id/events", h.runEvents)
	}
}

func (h *Handler) registerRecordingRoutes(api *gin.RouterGroup) {
	rec := api.Group("/recordings")
	{
		// Body example: {"profile":"sps30","ach":4,"peak":800}
		rec.POST("/start", h.startRecording)
		rec.POST("/stop", h.stopRecording)
		rec.GET("/status", h.recordingStatus)
		rec.GET("", h.listRecordings)
		rec.GET("/:id", h.getRecording)
		rec.GET("/:id/events", h.recordingEvents)
		rec.POST("/:id/fit", h.fitRecording)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
