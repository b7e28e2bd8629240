package openai

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/sashabaranov/go-openai"

    "github.com/bryanwahyu/scriptguard/internal/domain/ai"
)

const (
    defaultModel       = "gpt-4o-mini"
    defaultTemperature = 0.3
    defaultMaxTokens   = 2048
)

// Config holds the model settings for completion calls.
type Config struct {
    APIKey      string
    BaseURL     string
    Model       string
    Temperature float32
    MaxTokens   int
    // Timeout bounds each HTTP call; zero leaves the default client.
    Timeout time.Duration
}

type Client struct {
    *openai.Client
    Model       string
    Temperature float32
    MaxTokens   int
}

func NewClient(cfg Config) *Client {
    oc := openai.DefaultConfig(cfg.APIKey)
    if cfg.BaseURL != "" {
        oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
    }
    if cfg.Timeout > 0 {
        oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
    }
    c := &Client{
        Client:      openai.NewClientWithConfig(oc),
        Model:       cfg.Model,
        Temperature: cfg.Temperature,
        MaxTokens:   cfg.MaxTokens,
    }
    if c.Model == "" {
        c.Model = defaultModel
    }
    if c.Temperature == 0 {
        c.Temperature = defaultTemperature
    }
    if c.MaxTokens <= 0 {
        c.MaxTokens = defaultMaxTokens
    }
    return c
}

// Complete implements ai.Completer with a single user message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
    req := openai.ChatCompletionRequest{
        Model: c.Model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleUser, Content: prompt},
        },
    }
    // Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens and reject a custom temperature
    if isReasoningModel(c.Model) {
        req.MaxCompletionTokens = c.MaxTokens
    } else {
        req.MaxTokens = c.MaxTokens
        req.Temperature = c.Temperature
    }

    resp, err := c.CreateChatCompletion(ctx, req)
    if err != nil {
        var apiErr *openai.APIError
        if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
            return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
        }
        return "", fmt.Errorf("failed to create chat completion: %w", err)
    }
    if len(resp.Choices) == 0 {
        return "", ai.ErrEmptyCompletion
    }

    return resp.Choices[0].Message.Content, nil
}

// Check verifies the provider is reachable with the configured key.
func (c *Client) Check(ctx context.Context) error {
    if _, err := c.ListModels(ctx); err != nil {
        return fmt.Errorf("list models: %w", err)
    }
    return nil
}

func isReasoningModel(model string) bool {
    for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
        if strings.HasPrefix(model, prefix) {
            return true
        }
    }
    return false
}
