package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"revuea.app/configs"
	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/pkg/queryparams"
	"revuea.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormServiceError özel servis hataları
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound       FormServiceError = "form bulunamadı"
	ErrFormForbidden      FormServiceError = "bu işlem için yetkiniz yok"
	ErrFormInvalidInput   FormServiceError = "geçersiz girdi verisi"
	ErrFormHasResponses   FormServiceError = "yanıt almış bir formun soruları değiştirilemez"
	ErrFormCreationFailed FormServiceError = "form oluşturulamadı"
	ErrFormUpdateFailed   FormServiceError = "form güncellenemedi"
	ErrFormDeletionFailed FormServiceError = "form silinemedi"
)

const minTitleLength = 3

// QuestionInput create/update isteklerinde tek bir sorunun girdisi.
type QuestionInput struct {
	QuestionText string              `json:"questionText"`
	Type         models.QuestionType `json:"type"`
	Options      []string            `json:"options"`
}

// FormInput create/update isteklerinin gövdesi.
type FormInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	Theme       string          `json:"theme"`
	Questions   []QuestionInput `json:"questions"`
}

// IFormService form yaşam döngüsü işlemleri için arayüz.
type IFormService interface {
	CreateForm(ctx context.Context, creatorID uint, input FormInput) (*models.Form, error)
	GetFormByID(ctx context.Context, id uint) (*models.Form, error)
	GetFormByShareKey(ctx context.Context, shareKey string) (*models.Form, error)
	GetFormsForUser(ctx context.Context, creatorID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateForm(ctx context.Context, formID, userID uint, input FormInput) (*models.Form, error)
	EndForm(ctx context.Context, formID, userID uint) (*models.Form, error)
	DeleteForm(ctx context.Context, formID, userID uint) error
}

// FormService IFormService arayüzünü uygular.
type FormService struct {
	repo repositories.IFormRepository
	db   *gorm.DB
	now  func() time.Time
}

// NewFormService yeni bir FormService örneği oluşturur.
func NewFormService() IFormService {
	return &FormService{
		repo: repositories.NewFormRepository(),
		db:   configs.GetDB(),
		now:  time.Now,
	}
}

// --- Yardımcı Fonksiyonlar ---

// ValidateFormInput tüm girdi kurallarını tek geçişte uygular.
// MCQ soruları en az iki seçenek taşımak zorundadır; PARAGRAPH sorularının
// seçenekleri yok sayılır.
func ValidateFormInput(input *FormInput) error {
	if utf8.RuneCountInString(input.Title) < minTitleLength || utf8.RuneCountInString(input.Description) < minTitleLength {
		return ErrFormInvalidInput
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() || !input.EndTime.After(input.StartTime) {
		return ErrFormInvalidInput
	}
	if len(input.Questions) == 0 {
		return ErrFormInvalidInput
	}
	for i := range input.Questions {
		q := &input.Questions[i]
		if q.QuestionText == "" {
			return ErrFormInvalidInput
		}
		switch q.Type {
		case models.QuestionTypeParagraph:
			q.Options = []string{}
		case models.QuestionTypeMCQ:
			if len(q.Options) < 2 {
				return ErrFormInvalidInput
			}
			for _, opt := range q.Options {
				if opt == "" {
					return ErrFormInvalidInput
				}
			}
		default:
			return ErrFormInvalidInput
		}
	}
	return nil
}

func buildQuestions(inputs []QuestionInput) []models.Question {
	questions := make([]models.Question, 0, len(inputs))
	for i, q := range inputs {
		questions = append(questions, models.Question{
			QuestionText: q.QuestionText,
			Type:         q.Type,
			Options:      q.Options,
			Position:     i,
		})
	}
	return questions
}

// --- Servis Metodları ---

// CreateForm formu ve sorularını tek transaction içinde oluşturur.
func (s *FormService) CreateForm(ctx context.Context, creatorID uint, input FormInput) (*models.Form, error) {
	if creatorID == 0 {
		return nil, ErrFormInvalidInput
	}
	if err := ValidateFormInput(&input); err != nil {
		return nil, err
	}

	form := &models.Form{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Theme:       input.Theme,
		ShareKey:    uuid.NewString(),
		CreatorID:   creatorID,
		Questions:   buildQuestions(input.Questions),
	}

	txCtx := models.ContextWithUserID(ctx, creatorID)
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		return repositories.NewFormRepositoryTx(tx).Create(txCtx, form)
	})
	if txErr != nil {
		configslog.Log.Error("Form oluşturulamadı", zap.Uint("creator_id", creatorID), zap.Error(txErr))
		return nil, ErrFormCreationFailed
	}
	return form, nil
}

// GetFormByID formu sorularıyla birlikte döndürür. Public uçtur, yetki aramaz.
func (s *FormService) GetFormByID(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

// GetFormByShareKey formu tahmin edilemez paylaşım anahtarıyla döndürür.
func (s *FormService) GetFormByShareKey(ctx context.Context, shareKey string) (*models.Form, error) {
	form, err := s.repo.FindByShareKey(ctx, shareKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

// GetFormsForUser kullanıcının formlarını start_time desc sıralı ve sayfalı döndürür.
func (s *FormService) GetFormsForUser(ctx context.Context, creatorID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if creatorID == 0 {
		return nil, ErrFormInvalidInput
	}
	params.Validate()
	forms, total, err := s.repo.FindAllByCreatorPaginated(ctx, creatorID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: forms,
		Meta: queryparams.CalculateMeta(params.Page, params.PerPage, total),
	}, nil
}

// UpdateForm formun skaler alanlarını günceller ve soru setini komple
// değiştirir. Herhangi bir soruya cevap verilmişse işlem reddedilir; yarıda
// kalan bir hata önceki soru setini olduğu gibi bırakır.
func (s *FormService) UpdateForm(ctx context.Context, formID, userID uint, input FormInput) (*models.Form, error) {
	form, err := s.GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != userID {
		return nil, ErrFormForbidden
	}

	hasAnswers, err := s.repo.HasAnswers(ctx, formID)
	if err != nil {
		return nil, err
	}
	if hasAnswers {
		return nil, ErrFormHasResponses
	}

	if err := ValidateFormInput(&input); err != nil {
		return nil, err
	}

	txCtx := models.ContextWithUserID(ctx, userID)
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewFormRepositoryTx(tx)
		if err := repoTx.ReplaceQuestions(txCtx, formID, buildQuestions(input.Questions)); err != nil {
			return err
		}
		form.Title = input.Title
		form.Description = input.Description
		form.StartTime = input.StartTime
		form.EndTime = input.EndTime
		form.Theme = input.Theme
		form.Questions = nil
		return repoTx.Update(txCtx, form)
	})
	if txErr != nil {
		configslog.Log.Error("Form güncellenemedi", zap.Uint("form_id", formID), zap.Error(txErr))
		return nil, ErrFormUpdateFailed
	}
	return s.GetFormByID(ctx, formID)
}

// EndForm bitiş zamanını sunucu saatine çekerek formu derhal kapatır.
func (s *FormService) EndForm(ctx context.Context, formID, userID uint) (*models.Form, error) {
	form, err := s.GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.CreatorID != userID {
		return nil, ErrFormForbidden
	}

	form.EndTime = s.now()
	form.Questions = nil
	if err := s.repo.Update(models.ContextWithUserID(ctx, userID), form); err != nil {
		configslog.Log.Error("Form sonlandırılamadı", zap.Uint("form_id", formID), zap.Error(err))
		return nil, ErrFormUpdateFailed
	}
	return form, nil
}

// DeleteForm formu ve bağlı tüm kayıtları siler.
func (s *FormService) DeleteForm(ctx context.Context, formID, userID uint) error {
	form, err := s.GetFormByID(ctx, formID)
	if err != nil {
		return err
	}
	if form.CreatorID != userID {
		return ErrFormForbidden
	}
	if err := s.repo.Delete(models.ContextWithUserID(ctx, userID), form, userID); err != nil {
		configslog.Log.Error("Form silinemedi", zap.Uint("form_id", formID), zap.Error(err))
		return ErrFormDeletionFailed
	}
	return nil
}
