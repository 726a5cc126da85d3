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
	ErrProposalNotFound = errors.New("proposal not found")
	ErrAlreadyVoted     = errors.New("User has already voted on this proposal")
	ErrVotingClosed     = errors.New("voting is closed for this proposal")
	ErrInvalidVoteType  = errors.New("invalid vote type")
)

// GovernanceLogic 治理业务逻辑
type GovernanceLogic struct {
	db *gorm.DB
}

// NewGovernanceLogic 创建治理业务逻辑
func NewGovernanceLogic(db *gorm.DB) *GovernanceLogic {
	return &GovernanceLogic{db: db}
}

// CreateProposal 创建提案，直接进入投票中状态
// 注意：前端宣称的 1000 代币最低持仓门槛不在服务端校验（与线上行为一致）。
func (g *GovernanceLogic) CreateProposal(proposal *model.ProposalModel) error {
	if proposal.Title == "" {
		return errors.New("proposal title is required")
	}
	if proposal.CreatorWallet == "" {
		return errors.New("creator wallet is required")
	}
	if proposal.VotingDeadline.IsZero() || proposal.VotingDeadline.Before(time.Now()) {
		return errors.New("voting deadline must be in the future")
	}

	proposal.Description = sanitizeRichText(proposal.Description)
	proposal.Status = model.ProposalStatusActive
	proposal.VotesFor = 0
	proposal.VotesAgainst = 0
	proposal.TotalStakeFor = 0
	proposal.TotalStakeAgainst = 0

	if err := g.db.Create(proposal).Error; err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}

	recordUserAction(g.db, proposal.CreatorWallet, model.UserActionProposalCreated, "proposal", proposal.Id)
	return nil
}

// GetProposals 获取提案列表（默认过滤软删除行）
func (g *GovernanceLogic) GetProposals(status, category string, page, pageSize int) ([]model.ProposalModel, int64, error) {
	query := g.db.Model(&model.ProposalModel{}).Where("deleted_at IS NULL")
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

	var proposals []model.ProposalModel
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}

	return proposals, total, nil
}

// GetProposal 按ID获取提案详情
// 软删除行也可取到，供审计场景使用；默认列表不会返回它们。
func (g *GovernanceLogic) GetProposal(id int64) (*model.ProposalModel, error) {
	var proposal model.ProposalModel
	if err := g.db.First(&proposal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to load proposal: %w", err)
	}
	return &proposal, nil
}

// HasUserVoted 检查该钱包是否已对提案投过票
func (g *GovernanceLogic) HasUserVoted(proposalId int64, voterWallet string) (bool, error) {
	var count int64
	err := g.db.Model(&model.VoteModel{}).
		Where("proposal_id = ? AND voter_wallet = ?", proposalId, voterWallet).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CastVote 投票
// 先经 HasUserVoted 预检查，再插入投票行并原子累加提案计票字段。
// 预检查与插入是两条独立语句，未包在同一事务里：同一钱包的并发请求
// 可能同时通过预检查（线上已知行为，保持不变）。
func (g *GovernanceLogic) CastVote(proposalId int64, voterWallet string, voteType model.VoteType, stakeAmount int64, reason string) (*model.VoteModel, error) {
	switch voteType {
	case model.VoteTypeFor, model.VoteTypeAgainst, model.VoteTypeAbstain:
	default:
		return nil, ErrInvalidVoteType
	}

	proposal, err := g.GetProposal(proposalId)
	if err != nil {
		return nil, err
	}
	if proposal.Status != model.ProposalStatusActive {
		return nil, ErrVotingClosed
	}
	if !proposal.VotingDeadline.IsZero() && time.Now().After(proposal.VotingDeadline) {
		return nil, ErrVotingClosed
	}

	voted, err := g.HasUserVoted(proposalId, voterWallet)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	vote := model.VoteModel{
		ProposalId:  proposalId,
		VoterWallet: voterWallet,
		VoteType:    voteType,
		StakeAmount: stakeAmount,
		Reason:      sanitizePlainText(reason),
	}
	if err := g.db.Create(&vote).Error; err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	// 弃权票不计入任何计票字段
	updates := map[string]interface{}{}
	switch voteType {
	case model.VoteTypeFor:
		updates["votes_for"] = gorm.Expr("votes_for + ?", 1)
		updates["total_stake_for"] = gorm.Expr("total_stake_for + ?", stakeAmount)
	case model.VoteTypeAgainst:
		updates["votes_against"] = gorm.Expr("votes_against + ?", 1)
		updates["total_stake_against"] = gorm.Expr("total_stake_against + ?", stakeAmount)
	}
	if len(updates) > 0 {
		if err := g.db.Model(&model.ProposalModel{}).Where("id = ?", proposalId).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update vote tally: %w", err)
		}
	}

	g.ensureDaoMember(voterWallet)
	recordUserAction(g.db, voterWallet, model.UserActionVoteCast, "proposal", proposalId)
	return &vote, nil
}

// ensureDaoMember 首次投票的钱包自动登记为DAO成员，失败不影响主流程
func (g *GovernanceLogic) ensureDaoMember(walletAddress string) {
	member := model.DaoMemberModel{
		WalletAddress: walletAddress,
		JoinedAt:      time.Now(),
		Active:        true,
	}
	err := g.db.Where("wallet_address = ?", walletAddress).FirstOrCreate(&member).Error
	if err != nil {
		logger.Warn("Failed to register DAO member %s: %v", walletAddress, err)
	}
}

// GetDaoMembers 获取生效的DAO成员列表
func (g *GovernanceLogic) GetDaoMembers() ([]model.DaoMemberModel, error) {
	var members []model.DaoMemberModel
	err := g.db.Where("active = ?", true).Order("joined_at ASC").Find(&members).Error
	return members, err
}

// GetProposalVotes 获取提案的投票记录
func (g *GovernanceLogic) GetProposalVotes(proposalId int64) ([]model.VoteModel, error) {
	var votes []model.VoteModel
	err := g.db.Where("proposal_id = ?", proposalId).
		Order("created_at DESC").
		Find(&votes).Error
	return votes, err
}

// GetProposalStats 按状态统计提案数量
func (g *GovernanceLogic) GetProposalStats() (map[string]interface{}, error) {
	var active, completed, rejected int64

	if err := g.db.Model(&model.ProposalModel{}).
		Where("deleted_at IS NULL AND status = ?", model.ProposalStatusActive).
		Count(&active).Error; err != nil {
		return nil, err
	}
	g.db.Model(&model.ProposalModel{}).
		Where("deleted_at IS NULL AND status IN ?", []model.ProposalStatus{
			model.ProposalStatusPassed,
			model.ProposalStatusExecuted,
		}).
		Count(&completed)
	g.db.Model(&model.ProposalModel{}).
		Where("deleted_at IS NULL AND status = ?", model.ProposalStatusRejected).
		Count(&rejected)

	return map[string]interface{}{
		"active":    active,
		"completed": completed,
		"rejected":  rejected,
	}, nil
}

// FinalizeExpired 关闭已过投票截止时间的提案
// 赞成票多于反对票记为通过，否则记为否决；同时通知提案创建者。
func (g *GovernanceLogic) FinalizeExpired(now time.Time) (int, error) {
	var expired []model.ProposalModel
	err := g.db.Where("deleted_at IS NULL AND status = ? AND voting_deadline <= ?",
		model.ProposalStatusActive, now).
		Find(&expired).Error
	if err != nil {
		return 0, err
	}

	finalized := 0
	for _, proposal := range expired {
		newStatus := model.ProposalStatusRejected
		if proposal.VotesFor > proposal.VotesAgainst {
			newStatus = model.ProposalStatusPassed
		}

		err := g.db.Model(&model.ProposalModel{}).
			Where("id = ? AND status = ?", proposal.Id, model.ProposalStatusActive).
			Update("status", newStatus).Error
		if err != nil {
			logger.Error("Failed to finalize proposal %d: %v", proposal.Id, err)
			continue
		}

		notification := model.NotificationModel{
			WalletAddress: proposal.CreatorWallet,
			Type:          "proposal_finalized",
			Title:         fmt.Sprintf("Proposal %q voting ended", proposal.Title),
			Body:          fmt.Sprintf("Your proposal was %s with %d votes for and %d against.", newStatus, proposal.VotesFor, proposal.VotesAgainst),
		}
		if err := g.db.Create(&notification).Error; err != nil {
			logger.Warn("Failed to notify creator of proposal %d: %v", proposal.Id, err)
		}

		finalized++
	}

	return finalized, nil
}
