package migrations

import (
	"revuea.app/configs/configslog"
	"revuea.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateVerificationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating pending_verifications table...")
	err := db.AutoMigrate(&models.PendingVerification{})
	if err != nil {
		configslog.Log.Error("Failed to migrate pending_verifications table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Pending_verifications table migrated successfully")
	return nil
}
