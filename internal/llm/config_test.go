package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
	assert.Equal(t, Provider("genai"), ProviderGenAI)
	assert.Equal(t, Provider("anthropic"), ProviderAnthropic)
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input    string
		expected Provider
		wantErr  bool
	}{
		{"gemini", ProviderGemini, false},
		{" GenAI ", ProviderGenAI, false},
		{"anthropic", ProviderAnthropic, false},
		{"", ProviderGemini, false},
		{"openai", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("Standard")
	assert.NoError(t, err)
	assert.Equal(t, TierStandard, tier)

	tier, err = ParseTier("")
	assert.NoError(t, err)
	assert.Equal(t, TierLite, tier)

	_, err = ParseTier("huge")
	assert.Error(t, err)
}

func TestDefaultConfigFor(t *testing.T) {
	assert.Equal(t, ProviderAnthropic, DefaultConfigFor(ProviderAnthropic).Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", DefaultConfigFor(ProviderAnthropic).GetModel(TierLite))

	genai := DefaultConfigFor(ProviderGenAI)
	assert.Equal(t, ProviderGenAI, genai.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", genai.GetModel(TierLite))

	assert.Equal(t, ProviderGemini, DefaultConfigFor("").Provider)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	for _, provider := range []Provider{ProviderGemini, ProviderGenAI, ProviderAnthropic} {
		t.Run(string(provider), func(t *testing.T) {
			_, err := NewClient(context.Background(), DefaultConfigFor(provider), "")
			assert.Error(t, err)
		})
	}

	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	assert.Error(t, err)
}

func TestNewAnthropicClient(t *testing.T) {
	client, err := NewAnthropicClient(DefaultAnthropicConfig(), "test-key")
	assert.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", client.GetModel(TierStandard))
	assert.NoError(t, client.Close())
}
