package httpapi

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the analysis routes
func (h *handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics))
	}

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", h.Analyze)
		api.POST("/annotate", h.Annotate)
		api.POST("/batch", h.Batch)
	}
}
