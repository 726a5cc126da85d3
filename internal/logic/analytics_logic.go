package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/cache"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe, expected 24h, 7d, 30d or 90d")

// 支持的分析时间窗
var timeframes = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// AnalyticsLogic 平台分析统计
type AnalyticsLogic struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewAnalyticsLogic 创建分析统计逻辑
func NewAnalyticsLogic(db *gorm.DB, c *cache.Cache) *AnalyticsLogic {
	return &AnalyticsLogic{db: db, cache: c}
}

// GetAnalytics 按时间窗聚合平台活跃数据，结果走读穿缓存
func (a *AnalyticsLogic) GetAnalytics(ctx context.Context, timeframe string) (map[string]interface{}, error) {
	window, ok := timeframes[timeframe]
	if !ok {
		return nil, ErrInvalidTimeframe
	}

	cacheKey := "analytics:" + timeframe
	var cached map[string]interface{}
	if a.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	since := time.Now().Add(-window)

	var newUsers int64
	if err := a.db.Model(&model.UserModel{}).Where("created_at >= ?", since).Count(&newUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate analytics: %w", err)
	}

	var proposalsCreated int64
	a.db.Model(&model.ProposalModel{}).Where("created_at >= ?", since).Count(&proposalsCreated)

	var votesCast int64
	a.db.Model(&model.VoteModel{}).Where("created_at >= ?", since).Count(&votesCast)

	var contactSubmissions int64
	a.db.Model(&model.ContactSubmissionModel{}).Where("created_at >= ?", since).Count(&contactSubmissions)

	var purchases int64
	a.db.Model(&model.TokenPurchaseModel{}).Where("created_at >= ?", since).Count(&purchases)

	// 用户行为按类型分组
	type actionCount struct {
		ActionType string `json:"action_type"`
		Count      int64  `json:"count"`
	}
	var rows []actionCount
	a.db.Model(&model.UserActionModel{}).
		Select("action_type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("action_type").
		Scan(&rows)

	actions := make(map[string]int64, len(rows))
	for _, r := range rows {
		actions[r.ActionType] = r.Count
	}

	result := map[string]interface{}{
		"timeframe":          timeframe,
		"newUsers":           newUsers,
		"proposalsCreated":   proposalsCreated,
		"votesCast":          votesCast,
		"contactSubmissions": contactSubmissions,
		"tokenPurchases":     purchases,
		"actionsByType":      actions,
	}

	a.cache.SetJSON(ctx, cacheKey, result)
	return result, nil
}

// SnapshotPlatformStats 写入一条平台统计快照（由定时任务每日调用）
func (a *AnalyticsLogic) SnapshotPlatformStats(now time.Time) (*model.PlatformStatModel, error) {
	snapshot := model.PlatformStatModel{SnapshotDate: now}

	a.db.Model(&model.UserModel{}).Count(&snapshot.TotalUsers)
	a.db.Model(&model.ProposalModel{}).Where("deleted_at IS NULL").Count(&snapshot.TotalProposals)
	a.db.Model(&model.VoteModel{}).Count(&snapshot.TotalVotes)
	a.db.Model(&model.ProjectModel{}).Where("deleted_at IS NULL").Count(&snapshot.TotalProjects)
	a.db.Model(&model.PartnerModel{}).Where("deleted_at IS NULL").Count(&snapshot.TotalPartners)

	a.db.Model(&model.TokenPurchaseModel{}).
		Where("status = ?", model.PurchaseStatusConfirmed).
		Select("COALESCE(SUM(amount_tokens), 0)").
		Scan(&snapshot.TokensSold)

	if err := a.db.Create(&snapshot).Error; err != nil {
		return nil, fmt.Errorf("failed to write platform stats snapshot: %w", err)
	}

	// 每个项目同时落一条募资指标
	var projects []model.ProjectModel
	a.db.Where("deleted_at IS NULL").Find(&projects)
	for _, project := range projects {
		metric := model.ProjectMetricModel{
			ProjectId:  project.Id,
			Name:       "funding_raised",
			Value:      project.FundingRaised,
			RecordedAt: now,
		}
		a.db.Create(&metric)
	}

	return &snapshot, nil
}
