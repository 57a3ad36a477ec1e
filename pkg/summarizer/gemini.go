package summarizer

import (
	"context"
	"errors"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ISummaryProvider serbest metin özetleme sağlayıcısı için dar arayüz.
type ISummaryProvider interface {
	SummarizeFreeText(ctx context.Context, prompt string) (string, error)
}

const defaultModel = "gemini-2.0-flash"

// GeminiProvider ISummaryProvider'ın langchaingo/Gemini implementasyonu.
type GeminiProvider struct {
	llm   llms.Model
	model string
}

// NewGeminiProvider GEMINI_API_KEY ile Gemini istemcisini kurar.
func NewGeminiProvider(ctx context.Context) (*GeminiProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY tanımlı değil")
	}
	llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &GeminiProvider{llm: llm, model: model}, nil
}

// SummarizeFreeText verilen istemi modele iletir ve yanıt metnini aynen döndürür.
func (p *GeminiProvider) SummarizeFreeText(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, p.llm, prompt, llms.WithModel(p.model))
}
