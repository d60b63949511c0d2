package llm

import (
	"context"
	"fmt"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// NewLLMService picks the content generator backend named by llm.provider.
func NewLLMService(ctx context.Context, cfg config.Config, log logger.Logger) (service.LLMService, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return NewGeminiLLMAdapter(ctx, cfg, log)
	case config.ProviderOpenAI:
		return NewOpenAILLMAdapter(cfg, log)
	case config.ProviderOllama:
		return NewOllamaLLMAdapter(cfg, log)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
