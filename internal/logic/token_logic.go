package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

var (
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrPurchaseConfirmed = errors.New("purchase is already confirmed")
	ErrStakeNotFound     = errors.New("staking position not found")
)

// TokenLogic 代币认购与质押业务逻辑
// 只做意向记账：确认依据调用方自报的交易哈希，不做任何链上校验。
type TokenLogic struct {
	db *gorm.DB
}

// NewTokenLogic 创建代币业务逻辑
func NewTokenLogic(db *gorm.DB) *TokenLogic {
	return &TokenLogic{db: db}
}

// CreatePurchase 记录认购意向并分配对外引用编号
func (t *TokenLogic) CreatePurchase(purchase *model.TokenPurchaseModel) error {
	if purchase.WalletAddress == "" {
		return errors.New("wallet address is required")
	}
	if purchase.AmountTokens <= 0 {
		return errors.New("token amount must be positive")
	}

	purchase.Reference = uuid.NewString()
	purchase.Status = model.PurchaseStatusPending
	purchase.ConfirmedAt = nil

	if err := t.db.Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	recordUserAction(t.db, purchase.WalletAddress, model.UserActionPurchaseCreated, "token_purchase", purchase.Id)
	return nil
}

// ConfirmPurchase 用调用方提交的交易哈希确认认购
func (t *TokenLogic) ConfirmPurchase(id int64, txHash string) (*model.TokenPurchaseModel, error) {
	if txHash == "" {
		return nil, errors.New("transaction hash is required")
	}

	purchase, err := t.GetPurchase(id)
	if err != nil {
		return nil, err
	}
	if purchase.Status == model.PurchaseStatusConfirmed {
		return nil, ErrPurchaseConfirmed
	}

	now := time.Now()
	err = t.db.Model(&model.TokenPurchaseModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"tx_hash":      txHash,
			"status":       model.PurchaseStatusConfirmed,
			"confirmed_at": now,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to confirm purchase %d: %w", id, err)
	}

	recordUserAction(t.db, purchase.WalletAddress, model.UserActionPurchaseConfirmed, "token_purchase", id)
	return t.GetPurchase(id)
}

// GetPurchase 按ID获取认购记录
func (t *TokenLogic) GetPurchase(id int64) (*model.TokenPurchaseModel, error) {
	var purchase model.TokenPurchaseModel
	if err := t.db.First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to load purchase: %w", err)
	}
	return &purchase, nil
}

// GetPurchasesByWallet 获取某钱包的认购记录
func (t *TokenLogic) GetPurchasesByWallet(walletAddress string) ([]model.TokenPurchaseModel, error) {
	var purchases []model.TokenPurchaseModel
	err := t.db.Where("wallet_address = ?", walletAddress).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

// GetTotalTokensPurchased 已确认认购的代币总量
func (t *TokenLogic) GetTotalTokensPurchased() (int64, error) {
	var total int64
	err := t.db.Model(&model.TokenPurchaseModel{}).
		Where("status = ?", model.PurchaseStatusConfirmed).
		Select("COALESCE(SUM(amount_tokens), 0)").
		Scan(&total).Error
	return total, err
}

// CreateStake 记录质押仓位（链上不发生任何质押）
func (t *TokenLogic) CreateStake(position *model.StakingPositionModel) error {
	if position.WalletAddress == "" {
		return errors.New("wallet address is required")
	}
	if position.Amount <= 0 {
		return errors.New("stake amount must be positive")
	}

	position.Status = model.StakingStatusActive
	position.StakedAt = time.Now()
	position.UnstakedAt = nil

	if err := t.db.Create(position).Error; err != nil {
		return fmt.Errorf("failed to create staking position: %w", err)
	}

	recordUserAction(t.db, position.WalletAddress, model.UserActionStakeCreated, "staking_position", position.Id)
	return nil
}

// GetStakesByWallet 获取某钱包的质押仓位
func (t *TokenLogic) GetStakesByWallet(walletAddress string) ([]model.StakingPositionModel, error) {
	var positions []model.StakingPositionModel
	err := t.db.Where("wallet_address = ?", walletAddress).
		Order("created_at DESC").
		Find(&positions).Error
	return positions, err
}

// Unstake 标记仓位已解押
func (t *TokenLogic) Unstake(id int64, walletAddress string) error {
	now := time.Now()
	result := t.db.Model(&model.StakingPositionModel{}).
		Where("id = ? AND wallet_address = ? AND status = ?", id, walletAddress, model.StakingStatusActive).
		Updates(map[string]interface{}{
			"status":      model.StakingStatusUnstaked,
			"unstaked_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to unstake position %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStakeNotFound
	}
	return nil
}

// GetTokenStats 代币销售汇总
func (t *TokenLogic) GetTokenStats() (map[string]interface{}, error) {
	totalTokens, err := t.GetTotalTokensPurchased()
	if err != nil {
		return nil, err
	}

	var totalUsd float64
	t.db.Model(&model.TokenPurchaseModel{}).
		Where("status = ?", model.PurchaseStatusConfirmed).
		Select("COALESCE(SUM(amount_usd), 0)").
		Scan(&totalUsd)

	var pendingPurchases int64
	t.db.Model(&model.TokenPurchaseModel{}).
		Where("status = ?", model.PurchaseStatusPending).
		Count(&pendingPurchases)

	var totalStaked int64
	t.db.Model(&model.StakingPositionModel{}).
		Where("status = ?", model.StakingStatusActive).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalStaked)

	return map[string]interface{}{
		"totalTokensSold":  totalTokens,
		"totalUsdRaised":   totalUsd,
		"pendingPurchases": pendingPurchases,
		"totalStaked":      totalStaked,
	}, nil
}
