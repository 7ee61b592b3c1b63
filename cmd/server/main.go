package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/analysis"
	"github.com/jz2447/csci420-gps-proj/internal/api"
	"github.com/jz2447/csci420-gps-proj/internal/config"
	"github.com/jz2447/csci420-gps-proj/internal/logging"
	"github.com/jz2447/csci420-gps-proj/internal/metrics"
	"github.com/jz2447/csci420-gps-proj/internal/service"
)

func main() {
	configFilePath := ""
	flag.StringVar(&configFilePath, "c", "", "path to a YAML config file")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configFilePath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Configure(cfg.GetLogLevel(), cfg.LogFilePath, cfg.LogMaxAgeDays); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector()
	}
	trackService := service.NewTrackService(analysis.NewPipeline(cfg.Pipeline), collector)

	// 初始化路由
	router := api.SetupRouter(cfg, trackService, collector)

	// 启动服务器
	log.Infof("Server starting on port %s", cfg.Port)
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, /api/v1 is unauthenticated")
	}
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
