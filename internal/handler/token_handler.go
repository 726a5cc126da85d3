package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/manu-acho/wamngo-sub000/internal/wallet"
	"gorm.io/gorm"
)

type TokenHandler struct {
	tokenLogic *logic.TokenLogic
}

func NewTokenHandler(db *gorm.DB) *TokenHandler {
	return &TokenHandler{
		tokenLogic: logic.NewTokenLogic(db),
	}
}

// CreatePurchase 记录代币认购意向
func (h *TokenHandler) CreatePurchase(c *gin.Context) {
	var req struct {
		WalletAddress string  `json:"walletAddress" binding:"required"`
		AmountUsd     float64 `json:"amountUsd"`
		AmountTokens  int64   `json:"amountTokens" binding:"required"`
		TokenPrice    float64 `json:"tokenPrice"`
		TxHash        string  `json:"txHash"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase := model.TokenPurchaseModel{
		WalletAddress: wallet.Canonical(req.WalletAddress),
		AmountUsd:     req.AmountUsd,
		AmountTokens:  req.AmountTokens,
		TokenPrice:    req.TokenPrice,
		TxHash:        req.TxHash,
	}
	if err := h.tokenLogic.CreatePurchase(&purchase); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"purchase": purchase})
}

// ConfirmPurchase 按调用方提交的交易哈希确认认购
func (h *TokenHandler) ConfirmPurchase(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase id"})
		return
	}

	var req struct {
		TxHash string `json:"txHash" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.tokenLogic.ConfirmPurchase(id, req.TxHash)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

// GetPurchases 获取某钱包的认购记录
func (h *TokenHandler) GetPurchases(c *gin.Context) {
	addr := wallet.Canonical(c.Query("wallet"))
	if addr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet query parameter is required"})
		return
	}

	purchases, err := h.tokenLogic.GetPurchasesByWallet(addr)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

// CreateStake 记录质押仓位
func (h *TokenHandler) CreateStake(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"walletAddress" binding:"required"`
		PoolName      string `json:"poolName"`
		Amount        int64  `json:"amount" binding:"required"`
		LockMonths    int    `json:"lockMonths"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position := model.StakingPositionModel{
		WalletAddress: wallet.Canonical(req.WalletAddress),
		PoolName:      req.PoolName,
		Amount:        req.Amount,
		LockMonths:    req.LockMonths,
	}
	if err := h.tokenLogic.CreateStake(&position); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"position": position})
}

// GetStakes 获取某钱包的质押仓位
func (h *TokenHandler) GetStakes(c *gin.Context) {
	addr := wallet.Canonical(c.Query("wallet"))
	if addr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet query parameter is required"})
		return
	}

	positions, err := h.tokenLogic.GetStakesByWallet(addr)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

// Unstake 解押仓位
func (h *TokenHandler) Unstake(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position id"})
		return
	}

	var req struct {
		WalletAddress string `json:"walletAddress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tokenLogic.Unstake(id, wallet.Canonical(req.WalletAddress)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "position unstaked"})
}

// GetTokenStats 代币销售汇总
func (h *TokenHandler) GetTokenStats(c *gin.Context) {
	stats, err := h.tokenLogic.GetTokenStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
