package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/manu-acho/wamngo-sub000/internal/wallet"
	"gorm.io/gorm"
)

type GovernanceHandler struct {
	governanceLogic *logic.GovernanceLogic
}

func NewGovernanceHandler(db *gorm.DB) *GovernanceHandler {
	return &GovernanceHandler{
		governanceLogic: logic.NewGovernanceLogic(db),
	}
}

// CreateProposal 创建提案
func (h *GovernanceHandler) CreateProposal(c *gin.Context) {
	var req struct {
		Title           string    `json:"title" binding:"required"`
		Description     string    `json:"description"`
		Category        string    `json:"category"`
		FundingAmount   int64     `json:"fundingAmount"`
		TokenAllocation int64     `json:"tokenAllocation"`
		VotingDeadline  time.Time `json:"votingDeadline" binding:"required"`
		CreatorWallet   string    `json:"creatorWallet" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal := model.ProposalModel{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		FundingAmount:   req.FundingAmount,
		TokenAllocation: req.TokenAllocation,
		VotingDeadline:  req.VotingDeadline,
		CreatorWallet:   wallet.Canonical(req.CreatorWallet),
	}
	if err := h.governanceLogic.CreateProposal(&proposal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"proposal": proposal})
}

// GetProposals 获取提案列表
// 数据库异常时降级为空列表加软错误消息，避免前端整页报错。
func (h *GovernanceHandler) GetProposals(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")
	page, pageSize := pageParams(c)

	proposals, total, err := h.governanceLogic.GetProposals(status, category, page, pageSize)
	if err != nil {
		logger.Error("Failed to list proposals: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"proposals": []model.ProposalModel{},
			"total":     0,
			"error":     "proposals are temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": proposals,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProposal 获取提案详情
func (h *GovernanceHandler) GetProposal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	proposal, err := h.governanceLogic.GetProposal(id)
	if err != nil {
		respondError(c, err)
		return
	}

	votes, err := h.governanceLogic.GetProposalVotes(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposal": proposal,
		"votes":    votes,
	})
}

// CastVote 对提案投票
func (h *GovernanceHandler) CastVote(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	// stakeAmount 由前端以字符串传入
	var req struct {
		VoterWallet string `json:"voterWallet" binding:"required"`
		VoteType    string `json:"voteType" binding:"required"`
		StakeAmount string `json:"stakeAmount"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voter := wallet.Canonical(req.VoterWallet)

	var stakeAmount int64
	if req.StakeAmount != "" {
		stakeAmount, err = strconv.ParseInt(req.StakeAmount, 10, 64)
		if err != nil || stakeAmount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stake amount"})
			return
		}
	}

	vote, err := h.governanceLogic.CastVote(id, voter, model.VoteType(req.VoteType), stakeAmount, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vote": vote})
}

// GetMembers DAO成员列表
func (h *GovernanceHandler) GetMembers(c *gin.Context) {
	members, err := h.governanceLogic.GetDaoMembers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GetStats 提案状态统计
func (h *GovernanceHandler) GetStats(c *gin.Context) {
	stats, err := h.governanceLogic.GetProposalStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
