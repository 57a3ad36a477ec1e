package summarizer

import (
	"context"
	"errors"
)

// ErrProviderNotConfigured sağlayıcı anahtarı tanımlı olmadığında döner.
var ErrProviderNotConfigured = errors.New("özet sağlayıcısı yapılandırılmamış")

// DisabledProvider API anahtarı olmadan ayağa kalkan ortamlar için
// ISummaryProvider'ın her çağrıda hata döndüren implementasyonu.
type DisabledProvider struct{}

func (DisabledProvider) SummarizeFreeText(ctx context.Context, prompt string) (string, error) {
	return "", ErrProviderNotConfigured
}
