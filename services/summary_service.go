package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/pkg/summarizer"
	"revuea.app/repositories"

	"go.uber.org/zap"
)

// SummaryServiceError özel servis hataları
type SummaryServiceError string

func (e SummaryServiceError) Error() string { return string(e) }

const ErrSummaryFailed SummaryServiceError = "özet oluşturulamadı"

// Sağlayıcı çağrısı için üst sınır; Fiber'ın kendisi zaman aşımı uygulamaz.
const summaryTimeout = 30 * time.Second

// ISummaryService serbest metin cevaplardan AI özeti üretme arayüzü.
type ISummaryService interface {
	SummarizeForm(ctx context.Context, formID, userID uint) (string, error)
}

// SummaryService ISummaryService arayüzünü uygular. Sağlayıcı dar bir arayüzün
// arkasındadır; önbellekleme veya tekrar deneme yapılmaz, sağlayıcı hatası
// olduğu gibi üst katmana tipli hata olarak yansır.
type SummaryService struct {
	formRepo     repositories.IFormRepository
	responseRepo repositories.IResponseRepository
	provider     summarizer.ISummaryProvider
}

// NewSummaryService yeni bir SummaryService örneği oluşturur.
func NewSummaryService(provider summarizer.ISummaryProvider) ISummaryService {
	return &SummaryService{
		formRepo:     repositories.NewFormRepository(),
		responseRepo: repositories.NewResponseRepository(),
		provider:     provider,
	}
}

// SummarizeForm formun PARAGRAPH sorularına verilen tüm cevapları tek bir
// isteme dönüştürür ve sağlayıcının yanıtını aynen döndürür.
func (s *SummaryService) SummarizeForm(ctx context.Context, formID, userID uint) (string, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrFormNotFound
		}
		return "", err
	}
	if form.CreatorID != userID {
		return "", ErrFormForbidden
	}

	responses, err := s.responseRepo.FindAllByFormID(ctx, formID)
	if err != nil {
		return "", err
	}

	prompt := BuildSummaryPrompt(form, responses)

	callCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	summary, err := s.provider.SummarizeFreeText(callCtx, prompt)
	if err != nil {
		configslog.Log.Error("Özet sağlayıcısı hata döndürdü", zap.Uint("form_id", formID), zap.Error(err))
		return "", ErrSummaryFailed
	}
	return summary, nil
}

// BuildSummaryPrompt PARAGRAPH sorularını ve cevaplarını soru başlıklı bloklar
// halinde dizip özetleme talimatını ekler.
func BuildSummaryPrompt(form *models.Form, responses []models.Response) string {
	answersByQuestion := make(map[uint][]string)
	for _, resp := range responses {
		for _, ans := range resp.Answers {
			if ans.AnswerText != nil {
				answersByQuestion[ans.QuestionID] = append(answersByQuestion[ans.QuestionID], *ans.AnswerText)
			}
		}
	}

	var blocks strings.Builder
	for _, q := range form.Questions {
		if q.Type != models.QuestionTypeParagraph {
			continue
		}
		blocks.WriteString(fmt.Sprintf("Question: %s\n", q.QuestionText))
		for _, text := range answersByQuestion[q.ID] {
			blocks.WriteString(fmt.Sprintf("- %s\n", text))
		}
		blocks.WriteString("\n\n")
	}

	return fmt.Sprintf(`
You are an AI language model helping to analyze feedback responses from a structured form.

Below are multiple paragraph-style responses submitted anonymously:

%s

Your task is to:
1. Identify and summarize **key insights and recurring themes** across all responses.
2. Highlight any **positive, negative, or neutral sentiments** where applicable.
3. Use clear and concise **bullet points**. Avoid repetition or overly generic statements.
4. If no meaningful or valid responses were provided, simply respond with:
   "No relevant responses were submitted for the given question(s)."
   (use "question" if there's only one)

Avoid adding filler content. Keep the summary objective and helpful for decision-making.
`, blocks.String())
}
