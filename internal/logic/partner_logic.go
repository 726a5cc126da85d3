package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

var (
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrApplicationNotFound = errors.New("application not found")
)

// 合作伙伴简介截断长度
const shortDescriptionLimit = 500

// PartnerLogic 合作伙伴与合作申请业务逻辑
type PartnerLogic struct {
	db *gorm.DB
}

// NewPartnerLogic 创建合作伙伴业务逻辑
func NewPartnerLogic(db *gorm.DB) *PartnerLogic {
	return &PartnerLogic{db: db}
}

// GetPartners 获取合作伙伴列表（默认过滤软删除行）
func (p *PartnerLogic) GetPartners(partnershipType string, page, pageSize int) ([]model.PartnerModel, int64, error) {
	query := p.db.Model(&model.PartnerModel{}).Where("deleted_at IS NULL")
	if partnershipType != "" {
		query = query.Where("partnership_type = ?", partnershipType)
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

	var partners []model.PartnerModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&partners).Error
	if err != nil {
		return nil, 0, err
	}

	return partners, total, nil
}

// GetPartner 按ID获取合作伙伴（软删除行可取到，供审计）
func (p *PartnerLogic) GetPartner(id int64) (*model.PartnerModel, error) {
	var partner model.PartnerModel
	if err := p.db.First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to load partner: %w", err)
	}
	return &partner, nil
}

// CreateApplication 提交合作申请
func (p *PartnerLogic) CreateApplication(application *model.PartnerApplicationModel) error {
	if application.OrganizationName == "" {
		return errors.New("organization name is required")
	}
	if application.ContactEmail == "" {
		return errors.New("contact email is required")
	}

	application.Description = sanitizeRichText(application.Description)
	application.Status = model.ApplicationStatusPending
	application.ReviewedBy = ""
	application.ReviewedAt = nil
	application.CreatedPartnerId = nil

	if err := p.db.Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// 合作申请无钱包，行为记录只用于按类型聚合
	recordUserAction(p.db, "", model.UserActionPartnerApplied, "partner_application", application.Id)
	return nil
}

// GetApplications 获取合作申请列表
func (p *PartnerLogic) GetApplications(status string, page, pageSize int) ([]model.PartnerApplicationModel, int64, error) {
	query := p.db.Model(&model.PartnerApplicationModel{})
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

	var applications []model.PartnerApplicationModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

// GetApplication 按ID获取合作申请
func (p *PartnerLogic) GetApplication(id int64) (*model.PartnerApplicationModel, error) {
	var application model.PartnerApplicationModel
	if err := p.db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &application, nil
}

// ReviewApplication 审核合作申请（仅限管理员入口调用）
// 先原地更新申请的审核字段，通过时再从申请字段复制出一条新的
// partners 行：机构名→名称，描述截断到500字→简介。与项目提交审核
// 相同，两步写入无事务无补偿：第二步失败时申请已标记 approved 而
// 没有伙伴行，重复审核会被已审核检查拦住，不会产生第二条伙伴。
func (p *PartnerLogic) ReviewApplication(id int64, status model.ApplicationStatus, reviewNotes, adminWallet string) (*model.PartnerApplicationModel, error) {
	if status != model.ApplicationStatusApproved && status != model.ApplicationStatusRejected {
		return nil, ErrInvalidReviewState
	}

	application, err := p.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if application.Status != model.ApplicationStatusPending {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       status,
		"reviewed_by":  adminWallet,
		"reviewed_at":  now,
		"review_notes": reviewNotes,
	}
	if err := p.db.Model(&model.PartnerApplicationModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update application %d: %w", id, err)
	}

	if status == model.ApplicationStatusApproved {
		partner := model.PartnerModel{
			Name:             application.OrganizationName,
			ShortDescription: truncate(application.Description, shortDescriptionLimit),
			Description:      application.Description,
			WebsiteURL:       application.WebsiteURL,
			ContactEmail:     application.ContactEmail,
			PartnershipType:  application.PartnershipType,
			Status:           model.PartnerStatusActive,
			ApplicationId:    &application.Id,
		}
		if err := p.db.Create(&partner).Error; err != nil {
			logger.Error("Partner creation failed after application %d was approved: %v", id, err)
			return nil, fmt.Errorf("failed to create partner from application %d: %w", id, err)
		}
		if err := p.db.Model(&model.PartnerApplicationModel{}).Where("id = ?", id).
			Update("created_partner_id", partner.Id).Error; err != nil {
			logger.Warn("Failed to record partner %d on application %d: %v", partner.Id, id, err)
		}
	}

	appendAuditLog(p.db, adminWallet, model.AdminActionReviewApplication, "partner_application", id, reviewNotes,
		map[string]interface{}{"status": string(status)})

	return p.GetApplication(id)
}

// truncate 截断字符串到给定字符数
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
