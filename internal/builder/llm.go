package builder

import (
	"context"
	"fmt"

	"github.com/futig/architech-backend/internal/config"
	"github.com/futig/architech-backend/internal/integration/llm"
	"github.com/futig/architech-backend/internal/usecase/editor"
	"go.uber.org/zap"
)

// setupLLM picks the completion provider. The returned close func releases
// provider clients and is never nil.
func setupLLM(ctx context.Context, cfg *config.Config, logger *zap.Logger) (editor.LLMConnector, func() error, error) {
	noop := func() error { return nil }

	if cfg.EnableMocks {
		logger.Info("Using mock LLM connector")
		return llm.NewMockConnector(logger), noop, nil
	}

	llmCfg := cfg.LLMConnectorCfg
	switch llmCfg.Provider {
	case config.ProviderGemini:
		logger.Info("Using Gemini LLM connector", zap.String("model", llmCfg.Model))
		gemini, err := llm.NewGeminiConnector(ctx, llmCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini.Close, nil
	case config.ProviderGroq:
		logger.Info("Using Groq LLM connector",
			zap.String("model", llmCfg.Model),
			zap.String("url", llmCfg.Url),
		)
		return llm.NewConnector(llmCfg, logger), noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider %q", llmCfg.Provider)
	}
}
