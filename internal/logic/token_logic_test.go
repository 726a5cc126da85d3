package logic

import (
	"testing"

	"github.com/manu-acho/wamngo-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePurchaseAssignsReference(t *testing.T) {
	tl := NewTokenLogic(newTestDB(t))

	purchase := &model.TokenPurchaseModel{
		WalletAddress: "0xbuyer",
		AmountUsd:     250,
		AmountTokens:  1000,
		TokenPrice:    0.25,
	}
	require.NoError(t, tl.CreatePurchase(purchase))

	assert.NotEmpty(t, purchase.Reference)
	assert.Equal(t, model.PurchaseStatusPending, purchase.Status)
	assert.Nil(t, purchase.ConfirmedAt)
}

func TestCreatePurchaseValidation(t *testing.T) {
	tl := NewTokenLogic(newTestDB(t))

	err := tl.CreatePurchase(&model.TokenPurchaseModel{AmountTokens: 10})
	assert.Error(t, err)

	err = tl.CreatePurchase(&model.TokenPurchaseModel{WalletAddress: "0xbuyer"})
	assert.Error(t, err)
}

func TestConfirmPurchase(t *testing.T) {
	tl := NewTokenLogic(newTestDB(t))

	purchase := &model.TokenPurchaseModel{WalletAddress: "0xbuyer", AmountTokens: 1000}
	require.NoError(t, tl.CreatePurchase(purchase))

	confirmed, err := tl.ConfirmPurchase(purchase.Id, "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusConfirmed, confirmed.Status)
	assert.Equal(t, "0xdeadbeef", confirmed.TxHash)
	assert.NotNil(t, confirmed.ConfirmedAt)

	// 重复确认被拒绝
	_, err = tl.ConfirmPurchase(purchase.Id, "0xother")
	assert.ErrorIs(t, err, ErrPurchaseConfirmed)

	_, err = tl.ConfirmPurchase(404, "0xdeadbeef")
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestTotalTokensPurchasedCountsConfirmedOnly(t *testing.T) {
	tl := NewTokenLogic(newTestDB(t))

	first := &model.TokenPurchaseModel{WalletAddress: "0xbuyer1", AmountTokens: 1000}
	second := &model.TokenPurchaseModel{WalletAddress: "0xbuyer2", AmountTokens: 500}
	require.NoError(t, tl.CreatePurchase(first))
	require.NoError(t, tl.CreatePurchase(second))

	_, err := tl.ConfirmPurchase(first.Id, "0xhash1")
	require.NoError(t, err)

	total, err := tl.GetTotalTokensPurchased()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), total)

	stats, err := tl.GetTokenStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stats["totalTokensSold"])
	assert.Equal(t, int64(1), stats["pendingPurchases"])
}

func TestStakeLifecycle(t *testing.T) {
	tl := NewTokenLogic(newTestDB(t))

	position := &model.StakingPositionModel{
		WalletAddress: "0xstaker",
		PoolName:      "governance",
		Amount:        2000,
		LockMonths:    6,
	}
	require.NoError(t, tl.CreateStake(position))
	assert.Equal(t, model.StakingStatusActive, position.Status)
	assert.False(t, position.StakedAt.IsZero())

	// 只有仓位持有者能解押
	err := tl.Unstake(position.Id, "0xsomeoneelse")
	assert.ErrorIs(t, err, ErrStakeNotFound)

	require.NoError(t, tl.Unstake(position.Id, "0xstaker"))

	positions, err := tl.GetStakesByWallet("0xstaker")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, model.StakingStatusUnstaked, positions[0].Status)
	assert.NotNil(t, positions[0].UnstakedAt)

	// 已解押仓位不能再次解押
	err = tl.Unstake(position.Id, "0xstaker")
	assert.ErrorIs(t, err, ErrStakeNotFound)
}
