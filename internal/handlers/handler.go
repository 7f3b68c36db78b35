package handlers

import (
	"time"

	"cryosure/internal/logger"
	"cryosure/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the HTTP layer.
type Options struct {
	SubmitRate  rate.Limit    // submissions per second per client IP
	SubmitBurst int           // burst allowance for submissions
	CacheTTL    time.Duration // catalog response cache lifetime
}

const (
	defaultSubmitRate  = rate.Limit(1)
	defaultSubmitBurst = 3
	defaultCacheTTL    = 5 * time.Minute
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies. Zero options
// fall back to defaults.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.SubmitRate <= 0 {
		opts.SubmitRate = defaultSubmitRate
	}
	if opts.SubmitBurst <= 0 {
		opts.SubmitBurst = defaultSubmitBurst
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// state stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/state", h.getState)
		api.POST("/view", h.switchView)
		api.DELETE("/message", h.dismissMessage)
		api.GET("/notifications", h.getNotifications)

		h.registerCatalogRoutes(api)
		h.registerDraftRoutes(api)
		h.registerMonitoringRoutes(api)
		h.registerConfigRoutes(api)
	}
}

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	store := cache.New(h.opts.CacheTTL, 2*h.opts.CacheTTL)
	catalog := api.Group("/catalog", Cache(store, h.opts.CacheTTL))
	{
		catalog.GET("/storage-types", h.getStorageTypes)
		catalog.GET("/temperature-presets", h.getTemperaturePresets)
	}
}

func (h *Handler) registerDraftRoutes(api *gin.RouterGroup) {
	draft := api.Group("/draft")
	{
		// Body example: {"minTemp":"2","maxTemp":"8"}
		draft.PATCH("/fields", h.editFields)
		draft.POST("/storage-type", h.selectStorageType)
		draft.POST("/preset", h.selectPreset)
		draft.POST("/next", h.nextStep)
		draft.POST("/prev", h.prevStep)
		draft.POST("/submit", RateLimiter(h.opts.SubmitRate, h.opts.SubmitBurst), h.submit)
	}
}

func (h *Handler) registerMonitoringRoutes(api *gin.RouterGroup) {
	mon := api.Group("/monitoring")
	{
		mon.GET("", h.getMonitoring)
		mon.POST("/refresh", h.refresh)
	}
}

func (h *Handler) registerConfigRoutes(api *gin.RouterGroup) {
	configs := api.Group("/configs")
	{
		configs.GET("", h.getConfigs)
		configs.GET("/active", h.getActiveConfig)
	}
}
