package logic

import (
	"errors"
	"testing"

	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmission(t *testing.T, p *ProjectLogic, title string) *model.ProjectSubmissionModel {
	t.Helper()
	submission := &model.ProjectSubmissionModel{
		Title:           title,
		Description:     "Solar powered irrigation for smallholder farms",
		Category:        "agriculture",
		FundingGoal:     50000,
		SubmitterWallet: "0xsubmitter",
		SubmitterEmail:  "farmer@example.org",
	}
	require.NoError(t, p.CreateSubmission(submission))
	return submission
}

func TestCreateSubmissionStartsSubmitted(t *testing.T) {
	p := NewProjectLogic(newTestDB(t))

	submission := newSubmission(t, p, "Solar Water Pumps")

	assert.Equal(t, model.SubmissionStatusSubmitted, submission.Status)
	assert.Empty(t, submission.ReviewedBy)
	assert.Nil(t, submission.ReviewedAt)
	assert.Nil(t, submission.CreatedProjectId)
}

func TestReviewSubmissionApproveCreatesProject(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db)
	submission := newSubmission(t, p, "Solar Water Pumps")

	reviewed, err := p.ReviewSubmission(submission.Id, model.SubmissionStatusApproved, "looks solid", "0xadmin")
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionStatusApproved, reviewed.Status)
	assert.Equal(t, "0xadmin", reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	require.NotNil(t, reviewed.CreatedProjectId)

	project, err := p.GetProject(*reviewed.CreatedProjectId)
	require.NoError(t, err)
	assert.Equal(t, "Solar Water Pumps", project.Title)
	assert.Equal(t, "solar-water-pumps", project.Slug)
	assert.Equal(t, model.ProjectStatusActive, project.Status)
	assert.Equal(t, submission.SubmitterWallet, project.CreatorWallet)
	assert.Equal(t, submission.FundingGoal, project.FundingGoal)
	require.NotNil(t, project.SubmissionId)
	assert.Equal(t, submission.Id, *project.SubmissionId)

	// 提交者收到审核结果通知
	var count int64
	db.Model(&model.NotificationModel{}).
		Where("wallet_address = ?", submission.SubmitterWallet).
		Count(&count)
	assert.Equal(t, int64(1), count)

	// 审核动作进入审计日志
	var actions []model.AdminActionModel
	require.NoError(t, db.Find(&actions).Error)
	require.Len(t, actions, 1)
	assert.Equal(t, model.AdminActionReviewSubmission, actions[0].ActionType)
	assert.Equal(t, submission.Id, actions[0].TargetId)
}

func TestReviewSubmissionSlugConflictGetsSuffix(t *testing.T) {
	p := NewProjectLogic(newTestDB(t))

	first := newSubmission(t, p, "Solar Water Pumps")
	second := newSubmission(t, p, "Solar water pumps!!")

	reviewedFirst, err := p.ReviewSubmission(first.Id, model.SubmissionStatusApproved, "", "0xadmin")
	require.NoError(t, err)
	reviewedSecond, err := p.ReviewSubmission(second.Id, model.SubmissionStatusApproved, "", "0xadmin")
	require.NoError(t, err)

	projectFirst, err := p.GetProject(*reviewedFirst.CreatedProjectId)
	require.NoError(t, err)
	projectSecond, err := p.GetProject(*reviewedSecond.CreatedProjectId)
	require.NoError(t, err)

	assert.Equal(t, "solar-water-pumps", projectFirst.Slug)
	assert.Equal(t, "solar-water-pumps-2", projectSecond.Slug)
}

func TestReviewSubmissionRejectCreatesNoProject(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db)
	submission := newSubmission(t, p, "Out of scope")

	reviewed, err := p.ReviewSubmission(submission.Id, model.SubmissionStatusRejected, "not aligned", "0xadmin")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusRejected, reviewed.Status)
	assert.Nil(t, reviewed.CreatedProjectId)

	var count int64
	db.Model(&model.ProjectModel{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReviewSubmissionProjectWriteFailureLeavesApprovedOrphan(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db)
	submission := newSubmission(t, p, "Doomed approval")

	// 在 projects 表插入前注入失败，模拟第二步写入故障
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("projects_write_failure", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "projects" {
			tx.AddError(errors.New("connection reset"))
		}
	}))

	_, err := p.ReviewSubmission(submission.Id, model.SubmissionStatusApproved, "", "0xadmin")
	require.Error(t, err)

	// 提交已标记 approved，但没有项目行
	orphaned, err := p.GetSubmission(submission.Id)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusApproved, orphaned.Status)
	assert.Nil(t, orphaned.CreatedProjectId)

	var count int64
	db.Model(&model.ProjectModel{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// 重试被已审核检查拦住
	_, err = p.ReviewSubmission(submission.Id, model.SubmissionStatusApproved, "", "0xadmin")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	db.Model(&model.ProjectModel{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReviewSubmissionTerminalStatesAreFinal(t *testing.T) {
	p := NewProjectLogic(newTestDB(t))
	submission := newSubmission(t, p, "Decided once")

	_, err := p.ReviewSubmission(submission.Id, model.SubmissionStatusRejected, "", "0xadmin")
	require.NoError(t, err)

	_, err = p.ReviewSubmission(submission.Id, model.SubmissionStatusApproved, "", "0xadmin")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewSubmissionUnderReviewIsAdvisory(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db)
	submission := newSubmission(t, p, "Long review")

	reviewed, err := p.ReviewSubmission(submission.Id, model.SubmissionStatusUnderReview, "", "0xadmin")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusUnderReview, reviewed.Status)

	// 提示性状态：不通知提交者，且还可以继续审到终态
	var count int64
	db.Model(&model.NotificationModel{}).Count(&count)
	assert.Equal(t, int64(0), count)

	reviewed, err = p.ReviewSubmission(submission.Id, model.SubmissionStatusApproved, "", "0xadmin")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusApproved, reviewed.Status)
	assert.NotNil(t, reviewed.CreatedProjectId)
}

func TestReviewSubmissionRejectsUnknownStatus(t *testing.T) {
	p := NewProjectLogic(newTestDB(t))
	submission := newSubmission(t, p, "Weird status")

	_, err := p.ReviewSubmission(submission.Id, model.SubmissionStatus("escalated"), "", "0xadmin")
	assert.ErrorIs(t, err, ErrInvalidReviewState)
}

func TestAddProjectUpdateRequiresProject(t *testing.T) {
	p := NewProjectLogic(newTestDB(t))

	err := p.AddProjectUpdate(&model.ProjectUpdateModel{
		ProjectId: 42,
		Title:     "Milestone 1",
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectUpdatesRoundTrip(t *testing.T) {
	p := NewProjectLogic(newTestDB(t))
	submission := newSubmission(t, p, "With updates")
	reviewed, err := p.ReviewSubmission(submission.Id, model.SubmissionStatusApproved, "", "0xadmin")
	require.NoError(t, err)

	update := &model.ProjectUpdateModel{
		ProjectId:    *reviewed.CreatedProjectId,
		Title:        "First wells drilled",
		Body:         "<p>Two wells completed</p>",
		AuthorWallet: "0xsubmitter",
	}
	require.NoError(t, p.AddProjectUpdate(update))

	updates, err := p.GetProjectUpdates(*reviewed.CreatedProjectId)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "First wells drilled", updates[0].Title)
}
