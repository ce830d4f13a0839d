package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmind/internal/store"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), UserPrompt("", "first"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)

	second, err := mock.Generate(context.Background(), UserPrompt("", "second"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(second.Content))
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, _ = mock.Generate(context.Background(), UserPrompt("sys", "hello"))

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sys", calls[0].System)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hello"}}, calls[0].Messages)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, PurposeQuizGen, PurposeFrom(WithPurpose(ctx, PurposeQuizGen)))
}

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("boom")

	var rl *ErrRateLimit
	require.ErrorAs(t, classifyStatus(429, cause), &rl)
	assert.ErrorIs(t, rl, cause)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(503, cause), &unavail)
	assert.ErrorAs(t, classifyStatus(400, cause), &unavail)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"gemini without key", Config{Provider: ProviderGemini}, "QUIZMIND_GEMINI_API_KEY"},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, ""},
		{"openai without key", Config{Provider: ProviderOpenAI}, "QUIZMIND_OPENAI_API_KEY"},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "k"}}, ""},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "QUIZMIND_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, ""},
		{"mock needs no key", Config{Provider: ProviderMock}, ""},
		{"unknown provider", Config{Provider: "palm"}, "unknown LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZMIND_LLM_PROVIDER", "QUIZMIND_LLM_TIMEOUT", "QUIZMIND_LLM_MAX_ATTEMPTS",
		"QUIZMIND_GEMINI_API_KEY", "QUIZMIND_GEMINI_MODEL", "QUIZMIND_GEMINI_BASE_URL",
		"QUIZMIND_OPENAI_API_KEY", "QUIZMIND_OPENAI_MODEL", "QUIZMIND_OPENAI_BASE_URL",
		"QUIZMIND_ANTHROPIC_API_KEY", "QUIZMIND_ANTHROPIC_MODEL", "QUIZMIND_ANTHROPIC_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("QUIZMIND_LLM_PROVIDER", "openai")
	t.Setenv("QUIZMIND_OPENAI_API_KEY", "sk-test")
	t.Setenv("QUIZMIND_OPENAI_BASE_URL", "https://openrouter.ai/api/v1")
	t.Setenv("QUIZMIND_LLM_TIMEOUT", "5s")
	t.Setenv("QUIZMIND_LLM_MAX_ATTEMPTS", "nope")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "5s", cfg.Timeout.String())
	assert.Equal(t, DefaultConfig().Retry.MaxAttempts, cfg.Retry.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider, "openai outranks anthropic")

	t.Setenv("GEMINI_API_KEY", "g")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g", cfg.Gemini.APIKey)
}

func TestResolveConfig(t *testing.T) {
	clearLLMEnv(t)
	_, err := ResolveConfig()
	require.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "o")
	cfg, err := ResolveConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)

	// An explicit provider choice is never overridden by discovery.
	t.Setenv("QUIZMIND_LLM_PROVIDER", "anthropic")
	_, err = ResolveConfig()
	assert.Error(t, err)
}

type recordedEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordedEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccessAndFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	rec := &recordedEvents{}
	p := WithLogging(mock, ProviderGemini, rec)
	ctx := WithPurpose(context.Background(), PurposeQuizGen)

	req := UserPrompt("be brief", "make a quiz")
	req.Schema = &Schema{Name: "log-test", Definition: map[string]any{"type": "object"}}

	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	ok, failed := rec.events[0], rec.events[1]

	assert.Equal(t, ProviderGemini, ok.Provider)
	assert.Equal(t, "mock", ok.Model)
	assert.Equal(t, PurposeQuizGen, ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 7, ok.InputTokens)
	assert.Equal(t, `{"ok":true}`, ok.ResponseBody)
	assert.Contains(t, ok.RequestBody, "[system]\nbe brief")
	assert.Contains(t, ok.RequestBody, "[user]\nmake a quiz")
	assert.Contains(t, ok.RequestBody, "[schema: log-test]")

	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "down")
}

func TestLoggingProvider_RecorderErrorDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, &recordedEvents{err: errors.New("disk full")})

	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg.Provider = "palm"
	_, err = NewProvider(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg.Provider = ProviderOpenAI
	_, err = NewProvider(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "init openai provider")
}
