package database

import (
	"fmt"

	"github.com/manu-acho/wamngo-sub000/internal/config"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// DATABASE_URL 优先，否则由离散字段拼接
	dsn := cfg.URL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate 自动迁移全部表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserModel{},
		&model.ProposalModel{},
		&model.VoteModel{},
		&model.DaoMemberModel{},
		&model.ProjectModel{},
		&model.ProjectSubmissionModel{},
		&model.ProjectUpdateModel{},
		&model.ProjectMetricModel{},
		&model.PartnerModel{},
		&model.PartnerApplicationModel{},
		&model.AdminRoleModel{},
		&model.AdminActionModel{},
		&model.TokenPurchaseModel{},
		&model.StakingPositionModel{},
		&model.ContactSubmissionModel{},
		&model.NotificationModel{},
		&model.PlatformStatModel{},
		&model.UserActionModel{},
	)
}
