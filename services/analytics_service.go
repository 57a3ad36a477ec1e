package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/repositories"

	"go.uber.org/zap"
)

// AnalyticsServiceError özel servis hataları
type AnalyticsServiceError string

func (e AnalyticsServiceError) Error() string { return string(e) }

const (
	ErrNoResponsesToExport AnalyticsServiceError = "dışa aktarılacak yanıt yok"
	ErrExportFailed        AnalyticsServiceError = "dışa aktarma başarısız oldu"
)

// QuestionAnalytics tek bir sorunun okunma anında hesaplanan özetidir.
// Responses alanı PARAGRAPH sorularda []string, MCQ sorularda seçenek
// indeksinden sayıya giden map'tir (API sözleşmesi gereği iki biçimli).
type QuestionAnalytics struct {
	QuestionID   uint                `json:"questionId"`
	QuestionText string              `json:"questionText"`
	Type         models.QuestionType `json:"type"`
	Responses    any                 `json:"responses"`
}

// IAnalyticsService analiz ve CSV dışa aktarma için arayüz.
type IAnalyticsService interface {
	FormAnalytics(ctx context.Context, formID, userID uint) ([]QuestionAnalytics, error)
	ExportCSV(ctx context.Context, formID, userID uint) (filename string, data []byte, err error)
}

// AnalyticsService IAnalyticsService arayüzünü uygular. Hiçbir sayaç kalıcı
// tutulmaz; tüm özetler okuma anında Answer kayıtlarından hesaplanır.
type AnalyticsService struct {
	formRepo     repositories.IFormRepository
	responseRepo repositories.IResponseRepository
}

// NewAnalyticsService yeni bir AnalyticsService örneği oluşturur.
func NewAnalyticsService() IAnalyticsService {
	return &AnalyticsService{
		formRepo:     repositories.NewFormRepository(),
		responseRepo: repositories.NewResponseRepository(),
	}
}

// ownedFormWithResponses formu ve yanıtlarını getirir, sahiplik doğrular.
func (s *AnalyticsService) ownedFormWithResponses(ctx context.Context, formID, userID uint) (*models.Form, []models.Response, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrFormNotFound
		}
		return nil, nil, err
	}
	if form.CreatorID != userID {
		return nil, nil, ErrFormForbidden
	}
	responses, err := s.responseRepo.FindAllByFormID(ctx, formID)
	if err != nil {
		return nil, nil, err
	}
	return form, responses, nil
}

// FormAnalytics her soru için özet üretir: PARAGRAPH sorularda cevap metinleri
// yanıt sırasıyla listelenir; MCQ sorularda her tanımlı seçenek 0'dan başlatılıp
// eşleşen her cevapta bir artırılır. Sınır dışı veya boş seçimler sessizce atlanır.
func (s *AnalyticsService) FormAnalytics(ctx context.Context, formID, userID uint) ([]QuestionAnalytics, error) {
	form, responses, err := s.ownedFormWithResponses(ctx, formID, userID)
	if err != nil {
		return nil, err
	}

	// Cevaplar yanıt sırası korunarak soru bazında gruplanır.
	answersByQuestion := make(map[uint][]models.Answer, len(form.Questions))
	for _, resp := range responses {
		for _, ans := range resp.Answers {
			answersByQuestion[ans.QuestionID] = append(answersByQuestion[ans.QuestionID], ans)
		}
	}

	analytics := make([]QuestionAnalytics, 0, len(form.Questions))
	for _, q := range form.Questions {
		entry := QuestionAnalytics{
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Type:         q.Type,
		}
		switch q.Type {
		case models.QuestionTypeParagraph:
			texts := []string{}
			for _, ans := range answersByQuestion[q.ID] {
				if ans.AnswerText != nil {
					texts = append(texts, *ans.AnswerText)
				}
			}
			entry.Responses = texts
		case models.QuestionTypeMCQ:
			counts := make(map[string]int, len(q.Options))
			for i := range q.Options {
				counts[strconv.Itoa(i)] = 0
			}
			for _, ans := range answersByQuestion[q.ID] {
				if ans.SelectedOption == nil {
					continue
				}
				key := strconv.Itoa(*ans.SelectedOption)
				if _, ok := counts[key]; ok {
					counts[key]++
				}
			}
			entry.Responses = counts
		}
		analytics = append(analytics, entry)
	}
	return analytics, nil
}

// ExportCSV yanıt başına bir satır üretir: sıra numarası, soru başına bir
// sütun (MCQ cevapları seçenek etiketine çözülür, çözülemeyen hücre boş kalır)
// ve gönderim zamanı. Hiç yanıt yoksa tipli hata döner.
func (s *AnalyticsService) ExportCSV(ctx context.Context, formID, userID uint) (string, []byte, error) {
	form, responses, err := s.ownedFormWithResponses(ctx, formID, userID)
	if err != nil {
		return "", nil, err
	}
	if len(responses) == 0 {
		return "", nil, ErrNoResponsesToExport
	}

	header := make([]string, 0, len(form.Questions)+2)
	header = append(header, "Response No.")
	for _, q := range form.Questions {
		header = append(header, q.QuestionText)
	}
	header = append(header, "Timestamp")

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return "", nil, ErrExportFailed
	}

	for i, resp := range responses {
		answersByQuestion := make(map[uint]*models.Answer, len(resp.Answers))
		for j := range resp.Answers {
			answersByQuestion[resp.Answers[j].QuestionID] = &resp.Answers[j]
		}

		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(i+1))
		for _, q := range form.Questions {
			row = append(row, resolveAnswerCell(&q, answersByQuestion[q.ID]))
		}
		row = append(row, resp.SubmittedAt.Format(time.RFC3339))

		if err := w.Write(row); err != nil {
			return "", nil, ErrExportFailed
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		configslog.Log.Error("CSV yazımı başarısız", zap.Uint("form_id", formID), zap.Error(err))
		return "", nil, ErrExportFailed
	}
	return fmt.Sprintf("form-%d-responses.csv", formID), buf.Bytes(), nil
}

// resolveAnswerCell tek bir hücrenin metnini üretir. Cevap yoksa veya
// çözülemiyorsa hücre boş kalır.
func resolveAnswerCell(q *models.Question, ans *models.Answer) string {
	if ans == nil {
		return ""
	}
	if q.Type == models.QuestionTypeMCQ {
		if ans.SelectedOption != nil && *ans.SelectedOption >= 0 && *ans.SelectedOption < len(q.Options) {
			return q.Options[*ans.SelectedOption]
		}
		return ""
	}
	if ans.AnswerText != nil {
		return *ans.AnswerText
	}
	return ""
}
