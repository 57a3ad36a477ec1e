package seeders

import (
	"errors"
	"os"

	"revuea.app/configs/configslog"
	"revuea.app/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser ortam değişkenlerinden sistem hesabını oluşturur.
// ADMIN_EMAIL ve ADMIN_PASSWORD tanımlı değilse adım atlanır; hesap zaten
// varsa yeniden oluşturulmaz.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		configslog.SLog.Info("ADMIN_EMAIL/ADMIN_PASSWORD tanımlı değil, sistem kullanıcısı seed adımı atlanıyor.")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Info("Sistem kullanıcısı zaten mevcut, oluşturma atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Revuea Admin"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	user := models.User{Name: name, Email: email, PasswordHash: string(hashed)}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı başarıyla oluşturuldu (ID: %d).", user.ID)
	return nil
}
