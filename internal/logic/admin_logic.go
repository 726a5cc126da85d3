package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound  = errors.New("no active admin role for this wallet")
	ErrNotSuperAdmin = errors.New("only super_admin can grant roles")
	ErrRoleExists    = errors.New("wallet already has an admin role")
)

// AdminLogic 后台管理业务逻辑：特权编辑/软删除、角色管理、审计与看板
type AdminLogic struct {
	db *gorm.DB
}

// NewAdminLogic 创建后台管理业务逻辑
func NewAdminLogic(db *gorm.DB) *AdminLogic {
	return &AdminLogic{db: db}
}

// GetActiveRole 查找钱包对应的生效管理员角色
func (a *AdminLogic) GetActiveRole(walletAddress string) (*model.AdminRoleModel, error) {
	var role model.AdminRoleModel
	err := a.db.Where("wallet_address = ? AND active = ?", walletAddress, true).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to load admin role: %w", err)
	}
	return &role, nil
}

// GrantRole 授予管理员角色，仅 super_admin 可调用
func (a *AdminLogic) GrantRole(grantorWallet string, grantorRole model.AdminRole, walletAddress string, role model.AdminRole, permissions map[string]bool) (*model.AdminRoleModel, error) {
	if grantorRole != model.AdminRoleSuperAdmin {
		return nil, ErrNotSuperAdmin
	}
	switch role {
	case model.AdminRoleSuperAdmin, model.AdminRoleModerator, model.AdminRoleReviewer:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	var count int64
	a.db.Model(&model.AdminRoleModel{}).Where("wallet_address = ?", walletAddress).Count(&count)
	if count > 0 {
		return nil, ErrRoleExists
	}

	record := model.AdminRoleModel{
		WalletAddress: walletAddress,
		Role:          role,
		Permissions:   permissions,
		Active:        true,
		GrantedBy:     grantorWallet,
	}
	if err := a.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to grant role: %w", err)
	}

	appendAuditLog(a.db, grantorWallet, model.AdminActionGrantRole, "admin_role", record.Id, "",
		map[string]interface{}{"wallet": walletAddress, "role": string(role)})

	return &record, nil
}

// GetRoles 获取全部管理员角色
func (a *AdminLogic) GetRoles() ([]model.AdminRoleModel, error) {
	var roles []model.AdminRoleModel
	err := a.db.Order("created_at ASC").Find(&roles).Error
	return roles, err
}

// GetAuditLog 查询审计日志，可按管理员钱包过滤
func (a *AdminLogic) GetAuditLog(adminWallet string, limit int) ([]model.AdminActionModel, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	query := a.db.Model(&model.AdminActionModel{})
	if adminWallet != "" {
		query = query.Where("admin_wallet = ?", adminWallet)
	}

	var actions []model.AdminActionModel
	err := query.Order("created_at DESC").Limit(limit).Find(&actions).Error
	return actions, err
}

// UpdateProposal 管理员编辑提案字段
func (a *AdminLogic) UpdateProposal(id int64, updates map[string]interface{}, adminWallet string) error {
	return a.update(&model.ProposalModel{}, "proposal", model.AdminActionEditProposal, id, updates, adminWallet, ErrProposalNotFound)
}

// UpdateProject 管理员编辑项目字段
func (a *AdminLogic) UpdateProject(id int64, updates map[string]interface{}, adminWallet string) error {
	return a.update(&model.ProjectModel{}, "project", model.AdminActionEditProject, id, updates, adminWallet, ErrProjectNotFound)
}

// UpdatePartner 管理员编辑合作伙伴字段
func (a *AdminLogic) UpdatePartner(id int64, updates map[string]interface{}, adminWallet string) error {
	return a.update(&model.PartnerModel{}, "partner", model.AdminActionEditPartner, id, updates, adminWallet, ErrPartnerNotFound)
}

// DeleteProposal 软删除提案
func (a *AdminLogic) DeleteProposal(id int64, adminWallet, reason string) error {
	return a.softDelete(&model.ProposalModel{}, "proposal", model.AdminActionDeleteProposal, id, adminWallet, reason, ErrProposalNotFound)
}

// DeleteProject 软删除项目
func (a *AdminLogic) DeleteProject(id int64, adminWallet, reason string) error {
	return a.softDelete(&model.ProjectModel{}, "project", model.AdminActionDeleteProject, id, adminWallet, reason, ErrProjectNotFound)
}

// DeletePartner 软删除合作伙伴
func (a *AdminLogic) DeletePartner(id int64, adminWallet, reason string) error {
	return a.softDelete(&model.PartnerModel{}, "partner", model.AdminActionDeletePartner, id, adminWallet, reason, ErrPartnerNotFound)
}

// update 通用的特权编辑：提案/项目/合作伙伴共用一套形状
func (a *AdminLogic) update(entity interface{}, targetType, actionType string, id int64, updates map[string]interface{}, adminWallet string, notFound error) error {
	if len(updates) == 0 {
		return errors.New("no fields to update")
	}

	result := a.db.Model(entity).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s %d: %w", targetType, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	appendAuditLog(a.db, adminWallet, actionType, targetType, id, "",
		map[string]interface{}{"fields": fields})

	return nil
}

// softDelete 通用软删除：记录操作者与原因，行保留供按ID审计查询
func (a *AdminLogic) softDelete(entity interface{}, targetType, actionType string, id int64, adminWallet, reason string, notFound error) error {
	now := time.Now()
	result := a.db.Model(entity).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at":    now,
			"deleted_by":    adminWallet,
			"delete_reason": reason,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s %d: %w", targetType, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}

	appendAuditLog(a.db, adminWallet, actionType, targetType, id, reason, nil)
	return nil
}

// GetDashboardStats 后台看板统计
// 各计数为独立查询，无快照一致性保证（看板场景可接受）。
func (a *AdminLogic) GetDashboardStats() (map[string]interface{}, error) {
	var totalProposals, pendingProposals int64
	if err := a.db.Model(&model.ProposalModel{}).Where("deleted_at IS NULL").Count(&totalProposals).Error; err != nil {
		return nil, err
	}
	a.db.Model(&model.ProposalModel{}).
		Where("deleted_at IS NULL AND status IN ?", []model.ProposalStatus{
			model.ProposalStatusPending,
			model.ProposalStatusActive,
		}).
		Count(&pendingProposals)

	var totalProjects int64
	a.db.Model(&model.ProjectModel{}).Where("deleted_at IS NULL").Count(&totalProjects)

	var pendingSubmissions int64
	a.db.Model(&model.ProjectSubmissionModel{}).
		Where("status IN ?", []model.SubmissionStatus{
			model.SubmissionStatusSubmitted,
			model.SubmissionStatusUnderReview,
		}).
		Count(&pendingSubmissions)

	var pendingApplications int64
	a.db.Model(&model.PartnerApplicationModel{}).
		Where("status = ?", model.ApplicationStatusPending).
		Count(&pendingApplications)

	var recentActions int64
	a.db.Model(&model.AdminActionModel{}).
		Where("created_at >= ?", time.Now().Add(-24*time.Hour)).
		Count(&recentActions)

	return map[string]interface{}{
		"totalProposals":      totalProposals,
		"pendingProposals":    pendingProposals,
		"totalProjects":       totalProjects,
		"pendingSubmissions":  pendingSubmissions,
		"pendingApplications": pendingApplications,
		"recentActions":       recentActions,
	}, nil
}
