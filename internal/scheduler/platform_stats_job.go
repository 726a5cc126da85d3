package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/manu-acho/wamngo-sub000/internal/config"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"gorm.io/gorm"
)

// PlatformStatsJob 平台统计快照任务，每日整点写入一条 platform_stats
type PlatformStatsJob struct {
	analyticsLogic *logic.AnalyticsLogic
	config         *config.Config
}

// NewPlatformStatsJob 创建平台统计快照任务
func NewPlatformStatsJob(db *gorm.DB, cfg *config.Config) *PlatformStatsJob {
	return &PlatformStatsJob{
		analyticsLogic: logic.NewAnalyticsLogic(db, nil),
		config:         cfg,
	}
}

// GetName 获取任务名称
func (j *PlatformStatsJob) GetName() string {
	return "platform_stats_snapshot"
}

// GetSchedule 获取调度配置
func (j *PlatformStatsJob) GetSchedule() gocron.JobDefinition {
	hour := j.config.Scheduler.SnapshotHour
	if hour < 0 || hour > 23 {
		hour = 0
	}
	return gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), 0, 0)))
}

// Execute 执行任务
func (j *PlatformStatsJob) Execute() {
	snapshot, err := j.analyticsLogic.SnapshotPlatformStats(time.Now())
	if err != nil {
		logger.Error("Platform stats snapshot failed: %v", err)
		return
	}
	logger.Info("Platform stats snapshot %d written (users=%d proposals=%d projects=%d)",
		snapshot.Id, snapshot.TotalUsers, snapshot.TotalProposals, snapshot.TotalProjects)
}
