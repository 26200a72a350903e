package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfigs creates a temporary directory structure for testing.
// It returns the "configs" directory path and a cleanup function.
func setupTestConfigs(t *testing.T) (string, func()) {
	configDir, err := os.MkdirTemp("", "config_test_")
	assert.NoError(t, err)

	// Viper requires a "configs" subdirectory to be present.
	actualConfigPath := filepath.Join(configDir, "configs")
	err = os.Mkdir(actualConfigPath, 0755)
	assert.NoError(t, err)

	oldWd, err := os.Getwd()
	assert.NoError(t, err)
	err = os.Chdir(configDir)
	assert.NoError(t, err)

	cleanup := func() {
		os.Chdir(oldWd)
		os.RemoveAll(configDir)
	}

	return actualConfigPath, cleanup
}

func TestLoad_Success(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	configContent := `
config:
  target:
    name: "x86_64"
    triple: "x86_64-unknown-linux-gnu"
  features:
    basic_blocks: true
  log_level: "debug"
`
	configFile := filepath.Join(actualConfigPath, "config.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0644)
	assert.NoError(t, err)

	var loadedCfg Config
	err = Load("config", &loadedCfg)
	assert.NoError(t, err)
	assert.Equal(t, "x86_64", loadedCfg.Target.Name)
	assert.Equal(t, "x86_64-unknown-linux-gnu", loadedCfg.Target.Triple)
	assert.True(t, loadedCfg.Features.BasicBlocks)
	assert.Equal(t, "debug", loadedCfg.LogLevel)
}

func TestLoad_FileNotExists(t *testing.T) {
	_, cleanup := setupTestConfigs(t)
	defer cleanup()

	var cfg Config
	err := Load("non_existent_config", &cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EmptyFile(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	emptyConfigFile := filepath.Join(actualConfigPath, "empty.yaml")
	err := os.WriteFile(emptyConfigFile, []byte(""), 0644)
	assert.NoError(t, err)

	var cfg Config
	err = Load("empty", &cfg)
	assert.NoError(t, err) // Viper doesn't error on empty files, just unmarshals nothing
	assert.Equal(t, "host", cfg.Target.Name)
	assert.Equal(t, "info", cfg.LogLevel) // applyDefaults fills this and Target.Name in
}

func TestLoad_MalformedYAML(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	malformedContent := "config: test\n  target: oops" // Bad indentation
	malformedFile := filepath.Join(actualConfigPath, "malformed.yaml")
	err := os.WriteFile(malformedFile, []byte(malformedContent), 0644)
	assert.NoError(t, err)

	var cfg Config
	err = Load("malformed", &cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_ReduceConfig(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	configContent := `
config:
  target:
    name: "aarch64"
  reduce:
    max_passes: 5
    max_candidates: 200
`
	configFile := filepath.Join(actualConfigPath, "config.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0644)
	assert.NoError(t, err)

	var cfg Config
	err = Load("config", &cfg)
	assert.NoError(t, err)
	assert.Equal(t, 5, cfg.Reduce.MaxPasses)
	assert.Equal(t, 200, cfg.Reduce.MaxCandidates)
}

func TestLoad_ReduceConfig_Defaults(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	configContent := `
config:
  target:
    name: "aarch64"
`
	configFile := filepath.Join(actualConfigPath, "config.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0644)
	assert.NoError(t, err)

	var cfg Config
	err = Load("config", &cfg)
	assert.NoError(t, err)
	assert.Equal(t, 100, cfg.Reduce.MaxPasses)
	assert.Equal(t, 10000, cfg.Reduce.MaxCandidates)
}

func TestResolveEnvVars(t *testing.T) {
	os.Setenv("TEST_API_KEY", "secret123")
	os.Setenv("TEST_ENDPOINT", "https://api.test.com")
	defer os.Unsetenv("TEST_API_KEY")
	defer os.Unsetenv("TEST_ENDPOINT")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Braced format with existing env var",
			input:    "${TEST_API_KEY}",
			expected: "secret123",
		},
		{
			name:     "Simple format with existing env var",
			input:    "$TEST_API_KEY",
			expected: "secret123",
		},
		{
			name:     "Mixed text with env var",
			input:    "Bearer ${TEST_API_KEY}",
			expected: "Bearer secret123",
		},
		{
			name:     "Multiple env vars",
			input:    "${TEST_API_KEY} at ${TEST_ENDPOINT}",
			expected: "secret123 at https://api.test.com",
		},
		{
			name:     "Non-existent env var stays as-is",
			input:    "${NONEXISTENT_VAR}",
			expected: "${NONEXISTENT_VAR}",
		},
		{
			name:     "Simple format non-existent",
			input:    "$NONEXISTENT_VAR",
			expected: "$NONEXISTENT_VAR",
		},
		{
			name:     "No env vars",
			input:    "plain text",
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveEnvVars(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoadEnvFromDotEnv(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "env_test_")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	envContent := `# This is a comment
TEST_API_KEY=secret_key_123
TEST_ENDPOINT=https://api.test.com/v1
EMPTY_VAR=
QUOTED_VAR="value with spaces"
SINGLE_QUOTED_VAR='single quoted'
`
	envFile := filepath.Join(tempDir, ".env")
	err = os.WriteFile(envFile, []byte(envContent), 0644)
	assert.NoError(t, err)

	err = LoadEnvFromDotEnv(tempDir)
	assert.NoError(t, err)

	assert.Equal(t, "secret_key_123", os.Getenv("TEST_API_KEY"))
	assert.Equal(t, "https://api.test.com/v1", os.Getenv("TEST_ENDPOINT"))
	assert.Equal(t, "", os.Getenv("EMPTY_VAR"))
	assert.Equal(t, "value with spaces", os.Getenv("QUOTED_VAR"))
	assert.Equal(t, "single quoted", os.Getenv("SINGLE_QUOTED_VAR"))

	os.Unsetenv("TEST_API_KEY")
	os.Unsetenv("TEST_ENDPOINT")
	os.Unsetenv("EMPTY_VAR")
	os.Unsetenv("QUOTED_VAR")
	os.Unsetenv("SINGLE_QUOTED_VAR")
}

func TestLoadEnvFromDotEnv_NotExists(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "env_test_")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	err = LoadEnvFromDotEnv(tempDir)
	assert.NoError(t, err)
}

func TestLoadEnvFromDotEnv_OverrideProtection(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "env_test_")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	os.Setenv("PREEXISTING_VAR", "original_value")
	defer os.Unsetenv("PREEXISTING_VAR")

	envContent := "PREEXISTING_VAR=new_value\n"
	envFile := filepath.Join(tempDir, ".env")
	err = os.WriteFile(envFile, []byte(envContent), 0644)
	assert.NoError(t, err)

	err = LoadEnvFromDotEnv(tempDir)
	assert.NoError(t, err)

	assert.Equal(t, "original_value", os.Getenv("PREEXISTING_VAR"))
}

func TestResolveEnvVarsInMap(t *testing.T) {
	os.Setenv("TEST_KEY", "resolved_value")
	defer os.Unsetenv("TEST_KEY")

	testMap := map[string]interface{}{
		"api_key":  "${TEST_KEY}",
		"endpoint": "https://api.example.com",
		"nested": map[string]interface{}{
			"inner_key": "$TEST_KEY",
		},
		"array": []interface{}{
			"$TEST_KEY",
			"static_value",
		},
	}

	resolveInMap(testMap)

	assert.Equal(t, "resolved_value", testMap["api_key"])
	assert.Equal(t, "https://api.example.com", testMap["endpoint"])
	nested := testMap["nested"].(map[string]interface{})
	assert.Equal(t, "resolved_value", nested["inner_key"])
	array := testMap["array"].([]interface{})
	assert.Equal(t, "resolved_value", array[0])
	assert.Equal(t, "static_value", array[1])
}

func TestLoad_EnvVarSubstitution(t *testing.T) {
	actualConfigPath, cleanup := setupTestConfigs(t)
	defer cleanup()

	os.Setenv("TEST_TARGET_TRIPLE", "riscv64-unknown-elf")
	defer os.Unsetenv("TEST_TARGET_TRIPLE")

	configContent := `
config:
  target:
    name: "riscv64"
    triple: "${TEST_TARGET_TRIPLE}"
`
	configFile := filepath.Join(actualConfigPath, "config.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0644)
	assert.NoError(t, err)

	var cfg Config
	err = Load("config", &cfg)
	assert.NoError(t, err)
	assert.Equal(t, "riscv64-unknown-elf", cfg.Target.Triple)
}
