package builder

import (
	"context"
	"testing"

	"github.com/futig/architech-backend/internal/config"
	"github.com/futig/architech-backend/internal/integration/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupLLM(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	conn, closeFn, err := setupLLM(ctx, &config.Config{EnableMocks: true}, logger)
	require.NoError(t, err)
	assert.IsType(t, &llm.MockConnector{}, conn)
	assert.NoError(t, closeFn())

	cfg := &config.Config{LLMConnectorCfg: config.LLMConnectorConfig{
		Provider:         config.ProviderGroq,
		Model:            "llama-3.3-70b-versatile",
		HTTPClientConfig: config.HTTPClientConfig{Url: "https://api.groq.com/openai/v1", Token: "t"},
	}}
	conn, _, err = setupLLM(ctx, cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &llm.Connector{}, conn)

	cfg.LLMConnectorCfg.Provider = "openai"
	_, _, err = setupLLM(ctx, cfg, logger)
	assert.Error(t, err)

	cfg.LLMConnectorCfg.Provider = config.ProviderGemini
	cfg.LLMConnectorCfg.Token = ""
	_, _, err = setupLLM(ctx, cfg, logger)
	assert.Error(t, err)
}
