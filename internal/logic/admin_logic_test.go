package logic

import (
	"testing"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantRoleRequiresSuperAdmin(t *testing.T) {
	a := NewAdminLogic(newTestDB(t))

	_, err := a.GrantRole("0xmod", model.AdminRoleModerator, "0xnew", model.AdminRoleReviewer, nil)
	assert.ErrorIs(t, err, ErrNotSuperAdmin)
}

func TestGrantRoleCreatesActiveRole(t *testing.T) {
	db := newTestDB(t)
	a := NewAdminLogic(db)

	granted, err := a.GrantRole("0xroot", model.AdminRoleSuperAdmin, "0xnew", model.AdminRoleModerator,
		map[string]bool{"edit_proposals": true})
	require.NoError(t, err)
	assert.Equal(t, model.AdminRoleModerator, granted.Role)
	assert.True(t, granted.Active)
	assert.Equal(t, "0xroot", granted.GrantedBy)

	role, err := a.GetActiveRole("0xnew")
	require.NoError(t, err)
	assert.True(t, role.Permissions["edit_proposals"])

	// 授权动作进入审计日志
	actions, err := a.GetAuditLog("0xroot", 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, model.AdminActionGrantRole, actions[0].ActionType)
}

func TestGrantRoleRejectsDuplicateAndUnknown(t *testing.T) {
	a := NewAdminLogic(newTestDB(t))

	_, err := a.GrantRole("0xroot", model.AdminRoleSuperAdmin, "0xnew", model.AdminRoleReviewer, nil)
	require.NoError(t, err)

	_, err = a.GrantRole("0xroot", model.AdminRoleSuperAdmin, "0xnew", model.AdminRoleModerator, nil)
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = a.GrantRole("0xroot", model.AdminRoleSuperAdmin, "0xother", model.AdminRole("janitor"), nil)
	assert.Error(t, err)
}

func TestGetActiveRoleIgnoresDisabledRoles(t *testing.T) {
	db := newTestDB(t)
	a := NewAdminLogic(db)

	require.NoError(t, db.Create(&model.AdminRoleModel{
		WalletAddress: "0xretired",
		Role:          model.AdminRoleModerator,
		Active:        false,
	}).Error)

	_, err := a.GetActiveRole("0xretired")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestUpdateProposalEditsFieldsAndAudits(t *testing.T) {
	db := newTestDB(t)
	a := NewAdminLogic(db)
	g := NewGovernanceLogic(db)
	proposal := newActiveProposal(t, g, "Needs edit")

	err := a.UpdateProposal(proposal.Id, map[string]interface{}{"title": "Edited title"}, "0xadmin")
	require.NoError(t, err)

	reloaded, err := g.GetProposal(proposal.Id)
	require.NoError(t, err)
	assert.Equal(t, "Edited title", reloaded.Title)

	actions, err := a.GetAuditLog("0xadmin", 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, model.AdminActionEditProposal, actions[0].ActionType)
	assert.Equal(t, proposal.Id, actions[0].TargetId)
}

func TestUpdateProposalUnknownIdOrEmptyUpdates(t *testing.T) {
	a := NewAdminLogic(newTestDB(t))

	err := a.UpdateProposal(777, map[string]interface{}{"title": "x"}, "0xadmin")
	assert.ErrorIs(t, err, ErrProposalNotFound)

	err = a.UpdateProposal(777, map[string]interface{}{}, "0xadmin")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProposalNotFound)
}

func TestDeleteProposalIsSoftAndIdempotencyFails(t *testing.T) {
	db := newTestDB(t)
	a := NewAdminLogic(db)
	g := NewGovernanceLogic(db)
	proposal := newActiveProposal(t, g, "To be removed")

	require.NoError(t, a.DeleteProposal(proposal.Id, "0xadmin", "spam"))

	// 行保留，标记删除信息
	loaded, err := g.GetProposal(proposal.Id)
	require.NoError(t, err)
	require.NotNil(t, loaded.DeletedAt)
	assert.Equal(t, "0xadmin", loaded.DeletedBy)
	assert.Equal(t, "spam", loaded.DeleteReason)

	_, total, err := g.GetProposals("", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	// 已删除的行再删一次视作不存在
	err = a.DeleteProposal(proposal.Id, "0xadmin", "again")
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	a := NewAdminLogic(db)
	g := NewGovernanceLogic(db)
	p := NewProjectLogic(db)

	newActiveProposal(t, g, "Dashboard proposal")
	newSubmission(t, p, "Dashboard submission")
	require.NoError(t, NewPartnerLogic(db).CreateApplication(&model.PartnerApplicationModel{
		OrganizationName: "Dashboard Org",
		ContactEmail:     "org@example.org",
	}))
	require.NoError(t, a.UpdateProposal(1, map[string]interface{}{"category": "ops"}, "0xadmin"))

	stats, err := a.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats["totalProposals"])
	assert.Equal(t, int64(1), stats["pendingProposals"])
	assert.Equal(t, int64(0), stats["totalProjects"])
	assert.Equal(t, int64(1), stats["pendingSubmissions"])
	assert.Equal(t, int64(1), stats["pendingApplications"])
	assert.Equal(t, int64(1), stats["recentActions"])
}

func TestGetAuditLogFiltersAndLimits(t *testing.T) {
	db := newTestDB(t)
	a := NewAdminLogic(db)

	for i := 0; i < 3; i++ {
		appendAuditLog(db, "0xadmin1", model.AdminActionEditProject, "project", int64(i+1), "", nil)
	}
	appendAuditLog(db, "0xadmin2", model.AdminActionDeleteProject, "project", 9, "dup", nil)

	all, err := a.GetAuditLog("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	filtered, err := a.GetAuditLog("0xadmin2", 10)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "dup", filtered[0].Reason)

	limited, err := a.GetAuditLog("0xadmin1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	// 近24小时动作计入看板
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&model.AdminActionModel{}).
		Where("admin_wallet = ?", "0xadmin2").
		Update("created_at", old).Error)
	stats, err := a.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats["recentActions"])
}
