package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/manu-acho/wamngo-sub000/internal/config"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"gorm.io/gorm"
)

// ProposalDeadlineJob 提案截止任务
// 定期关闭已过投票截止时间的提案：赞成多于反对记为通过，否则否决。
type ProposalDeadlineJob struct {
	governanceLogic *logic.GovernanceLogic
	config          *config.Config
}

// NewProposalDeadlineJob 创建提案截止任务
func NewProposalDeadlineJob(db *gorm.DB, cfg *config.Config) *ProposalDeadlineJob {
	return &ProposalDeadlineJob{
		governanceLogic: logic.NewGovernanceLogic(db),
		config:          cfg,
	}
}

// GetName 获取任务名称
func (j *ProposalDeadlineJob) GetName() string {
	return "proposal_deadline_finalizer"
}

// GetSchedule 获取调度配置
func (j *ProposalDeadlineJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.ProposalInterval) * time.Second)
}

// Execute 执行任务
func (j *ProposalDeadlineJob) Execute() {
	finalized, err := j.governanceLogic.FinalizeExpired(time.Now())
	if err != nil {
		logger.Error("Proposal deadline job failed: %v", err)
		return
	}
	if finalized > 0 {
		logger.Info("Finalized %d expired proposals", finalized)
	}
}
