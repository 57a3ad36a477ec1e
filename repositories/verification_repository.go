package repositories

import (
	"context"
	"errors"

	"revuea.app/configs"
	"revuea.app/configs/configslog"
	"revuea.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IVerificationRepository bekleyen doğrulama kayıtları için arayüz.
type IVerificationRepository interface {
	Upsert(ctx context.Context, pending *models.PendingVerification) error
	FindByEmail(ctx context.Context, email string) (*models.PendingVerification, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// VerificationRepository IVerificationRepository arayüzünü uygular.
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository yeni bir VerificationRepository örneği oluşturur.
func NewVerificationRepository() IVerificationRepository {
	return &VerificationRepository{db: configs.GetDB()}
}

// NewVerificationRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewVerificationRepositoryTx(tx *gorm.DB) IVerificationRepository {
	return &VerificationRepository{db: tx}
}

// Upsert e-posta anahtarına göre bekleyen doğrulama kaydını oluşturur veya
// üzerine yazar. Tekrarlanan kayıt denemeleri OTP ve süreyi tazeler.
func (r *VerificationRepository) Upsert(ctx context.Context, pending *models.PendingVerification) error {
	if pending == nil || pending.Email == "" {
		return errors.New("geçersiz doğrulama kaydı")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "otp", "expires_at", "updated_at"}),
	}).Create(pending).Error
}

func (r *VerificationRepository) FindByEmail(ctx context.Context, email string) (*models.PendingVerification, error) {
	if email == "" {
		return nil, errors.New("geçersiz e-posta")
	}
	var pending models.PendingVerification
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("VerificationRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &pending, nil
}

// DeleteByEmail doğrulama kaydını kalıcı olarak siler. Kayıt geçicidir,
// soft delete tutulmaz.
func (r *VerificationRepository) DeleteByEmail(ctx context.Context, email string) error {
	if email == "" {
		return errors.New("geçersiz e-posta")
	}
	return r.db.WithContext(ctx).Unscoped().
		Where("email = ?", email).
		Delete(&models.PendingVerification{}).Error
}
