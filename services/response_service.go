package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"revuea.app/configs"
	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResponseServiceError özel servis hataları
type ResponseServiceError string

func (e ResponseServiceError) Error() string { return string(e) }

const (
	ErrSubmissionInvalid ResponseServiceError = "geçersiz gönderim verisi"
	ErrSubmissionFailed  ResponseServiceError = "yanıt kaydedilemedi"
)

// AnswerInput tek bir soruya verilen cevabın girdisi.
type AnswerInput struct {
	QuesID         uint    `json:"quesId"`
	AnswerText     *string `json:"answerText"`
	SelectedOption *int    `json:"selectedOption"`
}

// SubmitInput anonim gönderim gövdesi.
type SubmitInput struct {
	Answers []AnswerInput `json:"answers"`
}

// IResponseService anonim yanıt toplama için arayüz.
type IResponseService interface {
	SubmitResponse(ctx context.Context, formID uint, input SubmitInput) error
}

// ResponseService IResponseService arayüzünü uygular.
type ResponseService struct {
	formRepo repositories.IFormRepository
	db       *gorm.DB
	now      func() time.Time
}

// NewResponseService yeni bir ResponseService örneği oluşturur.
func NewResponseService() IResponseService {
	return &ResponseService{
		formRepo: repositories.NewFormRepository(),
		db:       configs.GetDB(),
		now:      time.Now,
	}
}

// SubmitResponse bir gönderimi tek Response + N Answer olarak kaydeder.
// Gönderim anonimdir; kullanıcı bağlantısı tutulmaz. Her cevap formun kendi
// sorularından birine işaret etmeli ve sorunun türüne uygun olmalıdır:
// PARAGRAPH için boş olmayan metin, MCQ için seçenek sınırları içinde bir
// indeks. Aykırı girdi hiçbir kayıt oluşturmadan reddedilir.
func (s *ResponseService) SubmitResponse(ctx context.Context, formID uint, input SubmitInput) error {
	if len(input.Answers) == 0 {
		return ErrSubmissionInvalid
	}

	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFormNotFound
		}
		return err
	}

	questionsByID := make(map[uint]*models.Question, len(form.Questions))
	for i := range form.Questions {
		questionsByID[form.Questions[i].ID] = &form.Questions[i]
	}

	answers := make([]models.Answer, 0, len(input.Answers))
	for _, in := range input.Answers {
		question, ok := questionsByID[in.QuesID]
		if !ok {
			return fmt.Errorf("%w: soru %d bu forma ait değil", ErrSubmissionInvalid, in.QuesID)
		}
		switch question.Type {
		case models.QuestionTypeParagraph:
			if in.AnswerText == nil || strings.TrimSpace(*in.AnswerText) == "" {
				return fmt.Errorf("%w: soru %d için metin cevabı gerekli", ErrSubmissionInvalid, in.QuesID)
			}
			in.SelectedOption = nil
		case models.QuestionTypeMCQ:
			if in.SelectedOption == nil || *in.SelectedOption < 0 || *in.SelectedOption >= len(question.Options) {
				return fmt.Errorf("%w: soru %d için geçersiz seçenek", ErrSubmissionInvalid, in.QuesID)
			}
			in.AnswerText = nil
		}
		answers = append(answers, models.Answer{
			QuestionID:     in.QuesID,
			AnswerText:     in.AnswerText,
			SelectedOption: in.SelectedOption,
		})
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewResponseRepositoryTx(tx)
		response := &models.Response{FormID: form.ID, SubmittedAt: s.now()}
		if err := repoTx.Create(ctx, response); err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResponseID = response.ID
		}
		return repoTx.BulkCreateAnswers(ctx, answers)
	})
	if txErr != nil {
		configslog.Log.Error("Yanıt kaydedilemedi", zap.Uint("form_id", formID), zap.Error(txErr))
		return ErrSubmissionFailed
	}
	return nil
}
