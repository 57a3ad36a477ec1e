package repositories

import (
	"context"
	"errors"

	"revuea.app/configs"
	"revuea.app/configs/configslog"
	"revuea.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IResponseRepository anonim yanıt kayıtları için arayüz.
type IResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	BulkCreateAnswers(ctx context.Context, answers []models.Answer) error
	FindAllByFormID(ctx context.Context, formID uint) ([]models.Response, error)
}

// ResponseRepository IResponseRepository arayüzünü uygular.
type ResponseRepository struct {
	db *gorm.DB
}

// NewResponseRepository yeni bir ResponseRepository örneği oluşturur.
func NewResponseRepository() IResponseRepository {
	return &ResponseRepository{db: configs.GetDB()}
}

// NewResponseRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewResponseRepositoryTx(tx *gorm.DB) IResponseRepository {
	return &ResponseRepository{db: tx}
}

func (r *ResponseRepository) Create(ctx context.Context, response *models.Response) error {
	if response == nil || response.FormID == 0 {
		return errors.New("geçersiz yanıt kaydı")
	}
	return r.db.WithContext(ctx).Create(response).Error
}

// BulkCreateAnswers bir gönderimin tüm cevaplarını tek seferde ekler.
func (r *ResponseRepository) BulkCreateAnswers(ctx context.Context, answers []models.Answer) error {
	if len(answers) == 0 {
		return errors.New("eklenecek cevap yok")
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

// FindAllByFormID formun tüm yanıtlarını cevaplarıyla birlikte, gönderim
// sırasına göre döndürür.
func (r *ResponseRepository) FindAllByFormID(ctx context.Context, formID uint) ([]models.Response, error) {
	if formID == 0 {
		return nil, errors.New("geçersiz Form ID")
	}
	var responses []models.Response
	err := r.db.WithContext(ctx).Preload("Answers").
		Where("form_id = ?", formID).
		Order("submitted_at ASC, id ASC").
		Find(&responses).Error
	if err != nil {
		configslog.Log.Error("ResponseRepository.FindAllByFormID: DB error", zap.Uint("form_id", formID), zap.Error(err))
		return nil, err
	}
	return responses, nil
}
