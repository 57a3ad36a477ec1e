package repositories

import (
	"context"
	"errors"

	"revuea.app/configs"
	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IFormRepository form veritabanı işlemleri için arayüz.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id uint) (*models.Form, error)
	FindByShareKey(ctx context.Context, shareKey string) (*models.Form, error)
	FindAllByCreatorPaginated(ctx context.Context, creatorID uint, params queryparams.ListParams) ([]models.Form, int64, error)
	Update(ctx context.Context, form *models.Form) error
	ReplaceQuestions(ctx context.Context, formID uint, questions []models.Question) error
	Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error
	HasAnswers(ctx context.Context, formID uint) (bool, error)
}

// FormRepository IFormRepository arayüzünü uygular.
type FormRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Form]
}

// NewFormRepository yeni bir FormRepository örneği oluşturur.
func NewFormRepository() IFormRepository {
	return newFormRepository(configs.GetDB())
}

// NewFormRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewFormRepositoryTx(tx *gorm.DB) IFormRepository {
	return newFormRepository(tx)
}

func newFormRepository(db *gorm.DB) *FormRepository {
	base := NewBaseRepository[models.Form](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "start_time", "end_time", "title"})
	return &FormRepository{db: db, base: base}
}

func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form == nil || form.CreatorID == 0 {
		return errors.New("oluşturan kullanıcı bilgisi olmadan form oluşturulamaz")
	}
	return r.db.WithContext(ctx).Create(form).Error
}

// orderedQuestions soruları form içi konumlarına göre sıralayarak preload eder.
func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("questions.position ASC, questions.id ASC")
}

// FindByID formu sorularıyla birlikte bulur.
func (r *FormRepository) FindByID(ctx context.Context, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Form ID")
	}
	var form models.Form
	err := r.db.WithContext(ctx).Preload("Questions", orderedQuestions).First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// FindByShareKey formu public paylaşım anahtarına göre bulur.
func (r *FormRepository) FindByShareKey(ctx context.Context, shareKey string) (*models.Form, error) {
	if shareKey == "" {
		return nil, errors.New("geçersiz paylaşım anahtarı")
	}
	var form models.Form
	err := r.db.WithContext(ctx).Preload("Questions", orderedQuestions).
		Where("share_key = ?", shareKey).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByShareKey: DB error", zap.String("share_key", shareKey), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// FindAllByCreatorPaginated kullanıcının formlarını sayfalayarak döndürür.
// Varsayılan sıralama start_time desc'tir.
func (r *FormRepository) FindAllByCreatorPaginated(ctx context.Context, creatorID uint, params queryparams.ListParams) ([]models.Form, int64, error) {
	if creatorID == 0 {
		return nil, 0, errors.New("geçersiz User ID")
	}

	query := r.db.WithContext(ctx).Model(&models.Form{}).Where("creator_id = ?", creatorID)
	if params.Title != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+params.Title+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		configslog.Log.Error("FormRepository.FindAllByCreatorPaginated: count error", zap.Uint("creator_id", creatorID), zap.Error(err))
		return nil, 0, err
	}

	orderColumn := r.base.SortColumn(params.SortBy, "start_time")
	var forms []models.Form
	err := query.Order(orderColumn + " " + params.OrderBy).
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllByCreatorPaginated: DB error", zap.Uint("creator_id", creatorID), zap.Error(err))
		return nil, 0, err
	}
	return forms, total, nil
}

func (r *FormRepository) Update(ctx context.Context, form *models.Form) error {
	if form == nil || form.ID == 0 {
		return errors.New("geçersiz form kaydı")
	}
	return r.db.WithContext(ctx).Omit("Questions", "Responses", "Creator").Save(form).Error
}

// ReplaceQuestions formun mevcut soru setini siler ve verilen listeyle yeniden
// oluşturur. Transaction içinde çağrılmalıdır; soru ID'leri korunmaz.
func (r *FormRepository) ReplaceQuestions(ctx context.Context, formID uint, questions []models.Question) error {
	if formID == 0 {
		return errors.New("geçersiz Form ID")
	}
	if err := r.db.WithContext(ctx).Where("form_id = ?", formID).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	for i := range questions {
		questions[i].FormID = formID
		questions[i].Position = i
	}
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

// Delete formu ve bağlı soru/yanıt/cevap kayıtlarını soft-delete eder.
// Soft delete veritabanı cascade'lerini tetiklemediği için bağlı kayıtlar
// burada açıkça silinir.
func (r *FormRepository) Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error {
	if form == nil || form.ID == 0 {
		return errors.New("geçersiz form kaydı")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var responseIDs []uint
		if err := tx.Model(&models.Response{}).Where("form_id = ?", form.ID).Pluck("id", &responseIDs).Error; err != nil {
			return err
		}
		if len(responseIDs) > 0 {
			if err := tx.Where("response_id IN ?", responseIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("form_id = ?", form.ID).Delete(&models.Response{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("form_id = ?", form.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Model(form).UpdateColumn("deleted_by", deletedByUserID).Error; err != nil {
			return err
		}
		return tx.Delete(form).Error
	})
}

// HasAnswers formun herhangi bir sorusuna en az bir cevap verilmiş mi?
// Soru seti değişikliği bu kontrole göre engellenir.
func (r *FormRepository) HasAnswers(ctx context.Context, formID uint) (bool, error) {
	if formID == 0 {
		return false, errors.New("geçersiz Form ID")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Answer{}).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.form_id = ? AND questions.deleted_at IS NULL", formID).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("FormRepository.HasAnswers: DB error", zap.Uint("form_id", formID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}
