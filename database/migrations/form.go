package migrations

import (
	"revuea.app/configs/configslog"
	"revuea.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFormsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating forms & questions tables...")
	err := db.AutoMigrate(&models.Form{}, &models.Question{})
	if err != nil {
		configslog.Log.Error("Failed to migrate forms & questions tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Forms & questions tables migrated successfully")
	return nil
}
