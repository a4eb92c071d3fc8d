package llm

import (
	"fmt"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/config"
	"github.com/khoahotran/career-os/pkg/logger"
)

// NewLLMService picks the adapter named by cfg.LLM.Provider.
func NewLLMService(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	switch cfg.LLM.Provider {
	case config.ProviderAnthropic, "":
		return NewAnthropicAdapter(cfg, log), nil
	case config.ProviderOllama:
		return NewOllamaLLMAdapter(cfg, log)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
