package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the top-level configuration for a reduction run.
type Config struct {
	Target   TargetConfig   `mapstructure:"target"`
	Features FeaturesConfig `mapstructure:"features"`
	LogLevel string         `mapstructure:"log_level"`
	LogDir   string         `mapstructure:"log_dir"`
	Reduce   ReduceConfig   `mapstructure:"reduce"`
}

// TargetConfig identifies the backend code generator to drive the oracle
// through.
type TargetConfig struct {
	// Name selects the backend/ISA, e.g. "x86_64", "aarch64".
	Name string `mapstructure:"name"`

	// Triple is an optional target-triple string, passed through
	// verbatim to the backend.
	Triple string `mapstructure:"triple"`
}

// FeaturesConfig holds build-time feature flags that change mutator
// behavior.
type FeaturesConfig struct {
	// BasicBlocks enables the stricter MergeBlocks mode that preserves
	// cond-branch/uncond-branch pairs.
	BasicBlocks bool `mapstructure:"basic_blocks"`
}

// ReduceConfig tunes the pass driver's safety caps. Zero values fall back
// to the engine's own defaults (100 passes, 10000 candidates per phase).
type ReduceConfig struct {
	MaxPasses     int `mapstructure:"max_passes"`
	MaxCandidates int `mapstructure:"max_candidates"`
}

// envVarPattern matches environment variable placeholders: ${VAR_NAME} or $VAR_NAME
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// resolveEnvVars replaces environment variable placeholders in a string with their values.
// Supports two formats:
//   - ${VAR_NAME}: Braced format
//   - $VAR_NAME: Simple format (must start with letter or underscore)
//
// If an environment variable is not set, it is left as-is in the string.
func resolveEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match
		if strings.HasPrefix(match, "${") && strings.HasSuffix(match, "}") {
			varName = match[2 : len(match)-1]
		} else if strings.HasPrefix(match, "$") {
			varName = match[1:]
		}

		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match
	})
}

// LoadEnvFromDotEnv loads environment variables from a .env file in the specified directory.
// The .env file should contain KEY=value pairs, one per line.
// Lines starting with # are treated as comments and ignored.
func LoadEnvFromDotEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")

	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(envPath)
	if err != nil {
		return fmt.Errorf("failed to read .env file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	for lineNum, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			return fmt.Errorf("invalid line in .env file at line %d: missing '='", lineNum+1)
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		} else if strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") {
			value = value[1 : len(value)-1]
		}

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	return nil
}

// LoadEnvFromDotEnvRecursive searches for a .env file in startDir and its
// parents, then in the working directory and its parents. It returns
// without error if no .env file is found (the file is optional).
func LoadEnvFromDotEnvRecursive(startDir string) error {
	dir := startDir
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return LoadEnvFromDotEnv(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	wd, _ := os.Getwd()
	for i := 0; i < 10; i++ {
		envPath := filepath.Join(wd, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return LoadEnvFromDotEnv(wd)
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}

	return nil
}

// applyEnvResolution resolves environment variable placeholders across
// every string value viper has loaded, in place.
func applyEnvResolution(v *viper.Viper) {
	settings := v.AllSettings()
	resolveInMap(settings)
}

func resolveInMap(m map[string]interface{}) {
	for k, v := range m {
		switch val := v.(type) {
		case string:
			resolved := resolveEnvVars(val)
			if resolved != val {
				m[k] = resolved
			}
		case map[string]interface{}:
			resolveInMap(val)
		case []interface{}:
			resolveInSlice(val)
		}
	}
}

func resolveInSlice(s []interface{}) {
	for i, v := range s {
		switch val := v.(type) {
		case string:
			s[i] = resolveEnvVars(val)
		case map[string]interface{}:
			resolveInMap(val)
		}
	}
}

// configSearchPaths are the directories viper scans for a config file,
// in order, so tests running from a nested package directory still find
// the repository's configs/ folder.
var configSearchPaths = []string{"configs", "../configs", "../../configs"}

// Load reads configFileName (without extension) from the configs
// search path into result. For a *Config destination it expects a
// top-level 'config' object; any other destination type is unmarshaled
// from the whole file.
func Load(configFileName string, result interface{}) error {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	for _, p := range configSearchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if cfg, ok := result.(*Config); ok {
		applyEnvResolution(v)
		if v.IsSet("config") {
			if err := v.UnmarshalKey("config", cfg); err != nil {
				return fmt.Errorf("failed to unmarshal config data: %w", err)
			}
		} else if err := v.Unmarshal(cfg); err != nil {
			return fmt.Errorf("failed to unmarshal config data: %w", err)
		}
		applyDefaults(cfg)
		return nil
	}

	if err := v.Unmarshal(result); err != nil {
		return fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	return nil
}

// LoadConfig loads config.yaml plus any .env file found in or above the
// current directory, applying defaults for anything left unset. Missing
// config.yaml is not an error: a zero-value Config with defaults
// applied is still usable, since every field can also be supplied via
// CLI flags.
func LoadConfig() (*Config, error) {
	var cfg Config

	if err := LoadEnvFromDotEnvRecursive("."); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := Load("config", &cfg); err != nil {
		applyDefaults(&cfg)
		return &cfg, nil
	}

	return &cfg, nil
}

// applyDefaults fills in zero-valued fields with the engine's built-in
// defaults.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Target.Name == "" {
		cfg.Target.Name = "host"
	}
	if cfg.Reduce.MaxPasses == 0 {
		cfg.Reduce.MaxPasses = 100
	}
	if cfg.Reduce.MaxCandidates == 0 {
		cfg.Reduce.MaxCandidates = 10000
	}
}
