package logic

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail = errors.New("Invalid email format")

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ContactLogic 联系表单业务逻辑
type ContactLogic struct {
	db *gorm.DB
}

// NewContactLogic 创建联系表单业务逻辑
func NewContactLogic(db *gorm.DB) *ContactLogic {
	return &ContactLogic{db: db}
}

// SubmitContact 保存联系表单
func (c *ContactLogic) SubmitContact(submission *model.ContactSubmissionModel) error {
	if submission.Name == "" || submission.Subject == "" || submission.Message == "" {
		return errors.New("name, subject and message are required")
	}
	if !emailPattern.MatchString(submission.Email) {
		return ErrInvalidEmail
	}

	submission.Reference = uuid.NewString()
	submission.Name = sanitizePlainText(submission.Name)
	submission.Subject = sanitizePlainText(submission.Subject)
	submission.Message = sanitizePlainText(submission.Message)
	submission.Status = model.ContactStatusNew

	if err := c.db.Create(submission).Error; err != nil {
		return fmt.Errorf("failed to save contact submission: %w", err)
	}

	// 联系表单无钱包，行为记录只用于按类型聚合
	recordUserAction(c.db, "", model.UserActionContactSubmitted, "contact_submission", submission.Id)
	return nil
}

// GetSubmissions 获取联系表单列表（后台用）
func (c *ContactLogic) GetSubmissions(status string, limit int) ([]model.ContactSubmissionModel, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	query := c.db.Model(&model.ContactSubmissionModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var submissions []model.ContactSubmissionModel
	err := query.Order("created_at DESC").Limit(limit).Find(&submissions).Error
	return submissions, err
}
