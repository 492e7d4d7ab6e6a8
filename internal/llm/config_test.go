package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_GenerateTimeoutMatchesGlobalDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120000, cfg.Tasks[TaskGenerate].TimeoutMs)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("DECKBUILD_LLM_TIMEOUT_MS", "90000")
	t.Setenv("DECKBUILD_LLM_GENERATE_TIMEOUT_MS", "150000")

	cfg := LoadConfig()

	assert.Equal(t, 90000, cfg.TimeoutMs)
	assert.Equal(t, 150000, cfg.TaskTimeout(TaskGenerate))
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskRefine))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("DECKBUILD_LLM_GENERATE_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 120000, cfg.TaskTimeout(TaskGenerate))
}

func TestLoadConfig_ModelAndEndpoint(t *testing.T) {
	t.Setenv("DECKBUILD_LLM_ENDPOINT", "http://remote:11434")
	t.Setenv("DECKBUILD_LLM_MODEL", "mistral")

	cfg := LoadConfig()

	assert.Equal(t, "http://remote:11434", cfg.Endpoint)
	assert.Equal(t, "mistral", cfg.Model)
}
