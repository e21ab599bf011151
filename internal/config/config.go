// Package config provides configuration loading for the reviewer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Config holds the process-wide configuration. It is constructed once at
// startup and passed explicitly to the components that need it; nothing reads
// the environment after Load returns.
type Config struct {
	// Provider selects the feedback provider ("groq" or "gemini").
	Provider string

	// APIKey is the credential for the selected provider. Empty means the
	// reviewer runs in mock mode.
	APIKey string

	// MockMode forces the static feedback path regardless of credentials.
	MockMode bool

	// Port is the HTTP listen port for the serve command.
	Port int
}

// Load reads configuration from the environment. A missing API key is not an
// error: the reviewer degrades to mock mode and tells the user so.
func Load() (*Config, error) {
	cfg := &Config{
		Provider: strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))),
		MockMode: parseBool(os.Getenv("MOCK_MODE")),
		Port:     8080,
	}

	if cfg.Provider == "" {
		cfg.Provider = ProviderGroq
	}

	switch cfg.Provider {
	case ProviderGroq:
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (want %q or %q)", cfg.Provider, ProviderGroq, ProviderGemini)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", port)
		}
		cfg.Port = p
	}

	return cfg, nil
}

// LiveEnabled reports whether the live provider path can be used at all.
func (c *Config) LiveEnabled() bool {
	return !c.MockMode && c.APIKey != ""
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return v
}
