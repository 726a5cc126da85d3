package logic

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApplication(t *testing.T, p *PartnerLogic, org string) *model.PartnerApplicationModel {
	t.Helper()
	application := &model.PartnerApplicationModel{
		OrganizationName: org,
		ContactName:      "Jordan Mwangi",
		ContactEmail:     "partnerships@example.org",
		WebsiteURL:       "https://example.org",
		Description:      "We run vocational training centers across three regions.",
		PartnershipType:  "ngo",
	}
	require.NoError(t, p.CreateApplication(application))
	return application
}

func TestCreateApplicationStartsPending(t *testing.T) {
	p := NewPartnerLogic(newTestDB(t))

	application := newApplication(t, p, "Water For All")

	assert.Equal(t, model.ApplicationStatusPending, application.Status)
	assert.Nil(t, application.CreatedPartnerId)
}

func TestReviewApplicationApproveCreatesPartner(t *testing.T) {
	db := newTestDB(t)
	p := NewPartnerLogic(db)
	application := newApplication(t, p, "Water For All")

	reviewed, err := p.ReviewApplication(application.Id, model.ApplicationStatusApproved, "welcome aboard", "0xadmin")
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusApproved, reviewed.Status)
	assert.Equal(t, "0xadmin", reviewed.ReviewedBy)
	require.NotNil(t, reviewed.CreatedPartnerId)

	partner, err := p.GetPartner(*reviewed.CreatedPartnerId)
	require.NoError(t, err)
	assert.Equal(t, "Water For All", partner.Name)
	assert.Equal(t, application.Description, partner.ShortDescription)
	assert.Equal(t, application.ContactEmail, partner.ContactEmail)
	assert.Equal(t, model.PartnerStatusActive, partner.Status)
	require.NotNil(t, partner.ApplicationId)
	assert.Equal(t, application.Id, *partner.ApplicationId)

	var count int64
	db.Model(&model.PartnerModel{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReviewApplicationTruncatesShortDescription(t *testing.T) {
	p := NewPartnerLogic(newTestDB(t))

	application := &model.PartnerApplicationModel{
		OrganizationName: "Verbose Org",
		ContactEmail:     "contact@example.org",
		Description:      strings.Repeat("a", 800),
	}
	require.NoError(t, p.CreateApplication(application))

	reviewed, err := p.ReviewApplication(application.Id, model.ApplicationStatusApproved, "", "0xadmin")
	require.NoError(t, err)

	partner, err := p.GetPartner(*reviewed.CreatedPartnerId)
	require.NoError(t, err)
	assert.Len(t, []rune(partner.ShortDescription), 500)
	assert.Len(t, []rune(partner.Description), 800)
}

func TestReviewApplicationRejectCreatesNoPartner(t *testing.T) {
	db := newTestDB(t)
	p := NewPartnerLogic(db)
	application := newApplication(t, p, "Not A Fit")

	reviewed, err := p.ReviewApplication(application.Id, model.ApplicationStatusRejected, "scope mismatch", "0xadmin")
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusRejected, reviewed.Status)
	assert.Nil(t, reviewed.CreatedPartnerId)

	var count int64
	db.Model(&model.PartnerModel{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReviewApplicationPartnerWriteFailureLeavesApprovedOrphan(t *testing.T) {
	db := newTestDB(t)
	p := NewPartnerLogic(db)
	application := newApplication(t, p, "Flaky Org")

	// 在 partners 表插入前注入失败，模拟第二步写入故障
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("partners_write_failure", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "partners" {
			tx.AddError(errors.New("connection reset"))
		}
	}))

	_, err := p.ReviewApplication(application.Id, model.ApplicationStatusApproved, "", "0xadmin")
	require.Error(t, err)

	// 申请已标记 approved，但没有伙伴行
	orphaned, err := p.GetApplication(application.Id)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApproved, orphaned.Status)
	assert.Nil(t, orphaned.CreatedPartnerId)

	var count int64
	db.Model(&model.PartnerModel{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// 重试被已审核检查拦住，不会补出第二条伙伴
	_, err = p.ReviewApplication(application.Id, model.ApplicationStatusApproved, "", "0xadmin")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	db.Model(&model.PartnerModel{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReviewApplicationIsFinal(t *testing.T) {
	p := NewPartnerLogic(newTestDB(t))
	application := newApplication(t, p, "Decided Org")

	_, err := p.ReviewApplication(application.Id, model.ApplicationStatusApproved, "", "0xadmin")
	require.NoError(t, err)

	_, err = p.ReviewApplication(application.Id, model.ApplicationStatusRejected, "", "0xadmin")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewApplicationRejectsNonTerminalStatus(t *testing.T) {
	p := NewPartnerLogic(newTestDB(t))
	application := newApplication(t, p, "Pending Org")

	_, err := p.ReviewApplication(application.Id, model.ApplicationStatusPending, "", "0xadmin")
	assert.ErrorIs(t, err, ErrInvalidReviewState)
}

func TestGetPartnersExcludesSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	p := NewPartnerLogic(db)

	kept := newApplication(t, p, "Kept Org")
	removed := newApplication(t, p, "Removed Org")
	reviewedKept, err := p.ReviewApplication(kept.Id, model.ApplicationStatusApproved, "", "0xadmin")
	require.NoError(t, err)
	reviewedRemoved, err := p.ReviewApplication(removed.Id, model.ApplicationStatusApproved, "", "0xadmin")
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, db.Model(&model.PartnerModel{}).
		Where("id = ?", *reviewedRemoved.CreatedPartnerId).
		Updates(map[string]interface{}{"deleted_at": now, "deleted_by": "0xadmin"}).Error)

	partners, total, err := p.GetPartners("", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, partners, 1)
	assert.Equal(t, *reviewedKept.CreatedPartnerId, partners[0].Id)

	loaded, err := p.GetPartner(*reviewedRemoved.CreatedPartnerId)
	require.NoError(t, err)
	assert.NotNil(t, loaded.DeletedAt)
}
