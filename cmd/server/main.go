package main

import (
	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/cache"
	"github.com/manu-acho/wamngo-sub000/internal/config"
	"github.com/manu-acho/wamngo-sub000/internal/database"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/mailer"
	"github.com/manu-acho/wamngo-sub000/internal/router"
	"github.com/manu-acho/wamngo-sub000/internal/scheduler"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.Output, cfg.Log.File)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 统计缓存（redis 未配置时自动降级为直查）
	statsCache := cache.New(cfg.Redis)

	// 管理员通知邮件器（桩：只记录，不发送）
	m, err := mailer.New(cfg.Mailer, cfg.App.URL)
	if err != nil {
		logger.Fatal("Failed to initialize mailer: %v", err)
	}
	defer m.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, statsCache, m, cfg)

	// 启动定时任务
	scheduler.Start(db, cfg)

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
