package rest

import (
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/kriselko/backend/pkg/httpx"
)

// NewRouter — роутер витрины и бэк-офиса.
// otelServiceName != "" включает otelgin-трейсинг; staticDir != "" —
// раздачу статики витрины.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	// Витрина — статическая страница с другого origin'а, поэтому CORS открыт,
	// как в исходном сервере.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE"}
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/orders", h.createOrder)
		api.GET("/orders", h.listOrders)
		api.PUT("/orders/:id/status", h.updateStatus)
		api.DELETE("/orders/:id", h.deleteOrder)

		api.POST("/novaposhta/cities", h.listSettlements)
		api.POST("/novaposhta/warehouses", h.listWarehouses)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}
