package logic

import (
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

// recordUserAction 记录用户行为供分析聚合，失败不影响主流程
func recordUserAction(db *gorm.DB, wallet, actionType, targetType string, targetId int64) {
	action := model.UserActionModel{
		WalletAddress: wallet,
		ActionType:    actionType,
		TargetType:    targetType,
		TargetId:      targetId,
	}
	if err := db.Create(&action).Error; err != nil {
		logger.Warn("Failed to record user action %s: %v", actionType, err)
	}
}

// appendAuditLog 追加一条管理操作审计记录
// 审计失败只记日志，不回滚已完成的主操作（与各多步流程一致，无补偿）。
func appendAuditLog(db *gorm.DB, adminWallet, actionType, targetType string, targetId int64, reason string, metadata map[string]interface{}) {
	entry := model.AdminActionModel{
		AdminWallet: adminWallet,
		ActionType:  actionType,
		TargetType:  targetType,
		TargetId:    targetId,
		Reason:      reason,
		Metadata:    metadata,
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Error("Failed to append audit log (%s on %s/%d): %v", actionType, targetType, targetId, err)
	}
}
