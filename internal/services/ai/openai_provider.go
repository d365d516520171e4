// File: internal/services/ai/openai_provider.go
package ai

import (
    "context"
    "errors"
    "strings"

    openai "github.com/sashabaranov/go-openai"

    "github.com/medichat/go-medichat/internal/domain"
)

type OpenAIProvider struct {
    config *Config
    client *openai.Client
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
    if err := config.Validate(); err != nil {
        return nil, NewConfigError(err.Error())
    }

    clientConfig := openai.DefaultConfig(config.APIKey)
    if config.BaseURL != "" {
        clientConfig.BaseURL = config.BaseURL
    }

    return &OpenAIProvider{
        config: config,
        client: openai.NewClientWithConfig(clientConfig),
    }, nil
}

// GenerateReply runs one chat completion over the prior turns plus the new
// user message. Failures are classified so the caller can tell "service
// offline" from "service errored" from "no answer"; nothing is retried here.
func (p *OpenAIProvider) GenerateReply(ctx context.Context, userText string, history []domain.ChatMessage) (string, error) {
    messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
    messages = append(messages, openai.ChatCompletionMessage{
        Role:    openai.ChatMessageRoleSystem,
        Content: systemPrompt,
    })
    for _, m := range history {
        role := openai.ChatMessageRoleUser
        if m.Role == domain.RoleAssistant {
            role = openai.ChatMessageRoleAssistant
        }
        messages = append(messages, openai.ChatCompletionMessage{
            Role:    role,
            Content: m.Content,
        })
    }
    messages = append(messages, openai.ChatCompletionMessage{
        Role:    openai.ChatMessageRoleUser,
        Content: userText,
    })

    ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
    defer cancel()

    resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
        Model:       p.config.Model,
        Messages:    messages,
        Temperature: p.config.Temperature,
        TopP:        p.config.TopP,
        MaxTokens:   p.config.MaxTokens,
    })
    if err != nil {
        return "", classifyCompletionError(err)
    }

    if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
        return "", NewEmptyError("completion")
    }

    return resp.Choices[0].Message.Content, nil
}

// classifyCompletionError maps client errors onto the AIError taxonomy. An
// APIError or RequestError means the service answered with a failure status;
// anything else means it never answered at all.
func classifyCompletionError(err error) *AIError {
    var apiErr *openai.APIError
    if errors.As(err, &apiErr) {
        return NewUpstreamError("completion", apiErr.HTTPStatusCode, apiErr.Message, err)
    }
    var reqErr *openai.RequestError
    if errors.As(err, &reqErr) {
        return NewUpstreamError("completion", reqErr.HTTPStatusCode, reqErr.Error(), err)
    }
    return NewUnreachableError("completion", err)
}

func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
    return nil
}

func (p *OpenAIProvider) GetStatus(ctx context.Context) ProviderStatus {
    return ProviderStatus{IsHealthy: true, Message: "OpenAI-compatible provider configured"}
}
