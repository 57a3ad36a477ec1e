package migrations

import (
	"revuea.app/configs/configslog"
	"revuea.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateResponsesTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating responses & answers tables...")
	err := db.AutoMigrate(&models.Response{}, &models.Answer{})
	if err != nil {
		configslog.Log.Error("Failed to migrate responses & answers tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Responses & answers tables migrated successfully")
	return nil
}
