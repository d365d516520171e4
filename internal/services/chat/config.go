// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
    // Conversation context passed to the model
    HistoryTurns int // number of prior turns included in the prompt

    // Input limits
    MaxMessageLen int // longest accepted user message, in bytes
}

func (c *Config) Validate() error {
    if c.HistoryTurns < 0 {
        return fmt.Errorf("history_turns cannot be negative")
    }
    if c.HistoryTurns > 50 {
        return fmt.Errorf("history_turns cannot exceed 50")
    }
    if c.MaxMessageLen <= 0 {
        return fmt.Errorf("max_message_len must be positive")
    }
    return nil
}

func DefaultConfig() *Config {
    return &Config{
        HistoryTurns:  10,
        MaxMessageLen: 10000,
    }
}
