package logic

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyReviewed    = errors.New("submission has already been reviewed")
	ErrInvalidReviewState = errors.New("invalid review status")
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ProjectLogic 项目与项目提交业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// GetProjects 获取项目列表（默认过滤软删除行）
func (p *ProjectLogic) GetProjects(status, category string, page, pageSize int) ([]model.ProjectModel, int64, error) {
	query := p.db.Model(&model.ProjectModel{}).Where("deleted_at IS NULL")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var projects []model.ProjectModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetProject 按ID获取项目详情（软删除行可取到，供审计）
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &project, nil
}

// CreateSubmission 创建项目提交，进入待审核队列
func (p *ProjectLogic) CreateSubmission(submission *model.ProjectSubmissionModel) error {
	if submission.Title == "" {
		return errors.New("submission title is required")
	}

	submission.Description = sanitizeRichText(submission.Description)
	submission.Status = model.SubmissionStatusSubmitted
	submission.ReviewedBy = ""
	submission.ReviewedAt = nil
	submission.CreatedProjectId = nil

	if err := p.db.Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	if submission.SubmitterWallet != "" {
		recordUserAction(p.db, submission.SubmitterWallet, model.UserActionProjectSubmitted, "project_submission", submission.Id)
	}
	return nil
}

// GetSubmissions 获取项目提交列表
func (p *ProjectLogic) GetSubmissions(status string, page, pageSize int) ([]model.ProjectSubmissionModel, int64, error) {
	query := p.db.Model(&model.ProjectSubmissionModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var submissions []model.ProjectSubmissionModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

// GetSubmission 按ID获取项目提交
func (p *ProjectLogic) GetSubmission(id int64) (*model.ProjectSubmissionModel, error) {
	var submission model.ProjectSubmissionModel
	if err := p.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return &submission, nil
}

// ReviewSubmission 审核项目提交（仅限管理员入口调用）
// 先原地更新提交的审核字段（永不删除），通过时再在 projects 表新建
// 一行并回填 created_project_id。两步写入是独立语句无补偿：第二步
// 失败时提交已被标记为 approved 而没有对应项目，只能靠错误日志人工
// 修复，重复审核会被已审核检查拦住。
func (p *ProjectLogic) ReviewSubmission(id int64, status model.SubmissionStatus, reviewNotes, adminWallet string) (*model.ProjectSubmissionModel, error) {
	switch status {
	case model.SubmissionStatusUnderReview, model.SubmissionStatusApproved, model.SubmissionStatusRejected:
	default:
		return nil, ErrInvalidReviewState
	}

	submission, err := p.GetSubmission(id)
	if err != nil {
		return nil, err
	}
	if submission.Status == model.SubmissionStatusApproved || submission.Status == model.SubmissionStatusRejected {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       status,
		"reviewed_by":  adminWallet,
		"reviewed_at":  now,
		"review_notes": reviewNotes,
	}

	if err := p.db.Model(&model.ProjectSubmissionModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update submission %d: %w", id, err)
	}

	if status == model.SubmissionStatusApproved {
		project := model.ProjectModel{
			Title:         submission.Title,
			Slug:          p.uniqueSlug(submission.Title),
			Description:   submission.Description,
			Category:      submission.Category,
			FundingGoal:   submission.FundingGoal,
			Status:        model.ProjectStatusActive,
			CreatorWallet: submission.SubmitterWallet,
			SubmissionId:  &submission.Id,
		}
		if err := p.db.Create(&project).Error; err != nil {
			logger.Error("Project creation failed after submission %d was approved: %v", id, err)
			return nil, fmt.Errorf("failed to create project from submission %d: %w", id, err)
		}
		if err := p.db.Model(&model.ProjectSubmissionModel{}).Where("id = ?", id).
			Update("created_project_id", project.Id).Error; err != nil {
			logger.Warn("Failed to record project %d on submission %d: %v", project.Id, id, err)
		}
	}

	appendAuditLog(p.db, adminWallet, model.AdminActionReviewSubmission, "project_submission", id, reviewNotes,
		map[string]interface{}{"status": string(status)})

	if submission.SubmitterWallet != "" && status != model.SubmissionStatusUnderReview {
		notification := model.NotificationModel{
			WalletAddress: submission.SubmitterWallet,
			Type:          "submission_reviewed",
			Title:         fmt.Sprintf("Your project submission %q was %s", submission.Title, status),
			Body:          reviewNotes,
		}
		if err := p.db.Create(&notification).Error; err != nil {
			logger.Warn("Failed to notify submitter of submission %d: %v", id, err)
		}
	}

	return p.GetSubmission(id)
}

// GetProjectUpdates 获取项目进展更新
func (p *ProjectLogic) GetProjectUpdates(projectId int64) ([]model.ProjectUpdateModel, error) {
	var updates []model.ProjectUpdateModel
	err := p.db.Where("project_id = ?", projectId).
		Order("created_at DESC").
		Find(&updates).Error
	return updates, err
}

// AddProjectUpdate 追加项目进展更新
func (p *ProjectLogic) AddProjectUpdate(update *model.ProjectUpdateModel) error {
	if update.Title == "" {
		return errors.New("update title is required")
	}
	if _, err := p.GetProject(update.ProjectId); err != nil {
		return err
	}
	update.Body = sanitizeRichText(update.Body)
	return p.db.Create(update).Error
}

// uniqueSlug 由标题生成唯一slug，冲突时追加序号
func (p *ProjectLogic) uniqueSlug(title string) string {
	base := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if base == "" {
		base = "project"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		p.db.Model(&model.ProjectModel{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
