package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jz2447/csci420-gps-proj/internal/config"
	"github.com/jz2447/csci420-gps-proj/internal/handler"
	"github.com/jz2447/csci420-gps-proj/internal/metrics"
	"github.com/jz2447/csci420-gps-proj/internal/middleware"
	"github.com/jz2447/csci420-gps-proj/internal/service"
)

// SetupRouter 设置路由. collector may be nil when metrics are disabled.
func SetupRouter(cfg *config.Config, trackService *service.TrackService, collector *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled && collector != nil {
		r.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	trackHandler := handler.NewTrackHandler(trackService, cfg.MaxUploadBytes)

	// API 路由组
	api := r.Group("/api/v1", middleware.Auth(cfg.JWTSecret))
	{
		// 轨迹相关接口
		tracks := api.Group("/tracks")
		{
			tracks.POST("/analyze", trackHandler.AnalyzeTrack)
		}
	}

	return r
}
