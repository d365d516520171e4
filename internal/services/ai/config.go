// File: internal/services/ai/config.go
package ai

import (
    "fmt"
    "time"
)

type Config struct {
    // LLM Configuration (OpenAI-compatible endpoint)
    APIKey  string
    BaseURL string
    Model   string

    // Performance Configuration
    Timeout time.Duration

    // Model Parameters
    Temperature float32 // Low for medical accuracy
    TopP        float32
    MaxTokens   int
}

func (c *Config) Validate() error {
    if c.Model == "" {
        return fmt.Errorf("LLM_MODEL is required")
    }
    if c.APIKey == "" && c.BaseURL == "" {
        return fmt.Errorf("either LLM_API_KEY or LLM_BASE_URL is required")
    }
    if c.Timeout <= 0 {
        return fmt.Errorf("timeout must be positive")
    }
    return nil
}

func DefaultConfig() *Config {
    return &Config{
        Timeout:     2 * time.Minute,
        Temperature: 0.1,
        TopP:        0.9,
        MaxTokens:   2000,
    }
}
