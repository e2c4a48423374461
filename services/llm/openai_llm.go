package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client against the OpenAI chat completions API.
type OpenAIClient struct {
	client         *openai.Client
	defaultModel   string
}

// NewOpenAIClient reads OPENAI_API_KEY from the environment, falling back
// to a Podman secrets file for containerized deployments. defaultModel is
// used whenever a caller's Params.Model is empty.
func NewOpenAIClient(defaultModel string) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		secretPath := "/run/secrets/openai_api_key"
		apiKeyBytes, err := os.ReadFile(secretPath)
		if err == nil {
			apiKey = strings.TrimSpace(string(apiKeyBytes))
			slog.Info("read OpenAI API key from Podman secrets")
		} else {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
		slog.Warn("no default model configured, defaulting", "model", defaultModel)
	}
	slog.Info("initializing OpenAI client", "default_model", defaultModel)
	return &OpenAIClient{
		client:       openai.NewClient(apiKey),
		defaultModel: defaultModel,
	}, nil
}

func (o *OpenAIClient) Chat(ctx context.Context, messages []Message, params Params) (string, error) {
	model := params.Model
	if model == "" {
		model = o.defaultModel
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: chatMessages,
	}
	if params.MaxCompletionTokens > 0 {
		req.MaxCompletionTokens = params.MaxCompletionTokens
	}
	// The provider rejects an explicit temperature for reasoning-family
	// models, so omit it entirely rather than send a value it will reject.
	if params.Temperature != nil && !IsReasoningFamily(model) {
		req.Temperature = *params.Temperature
	}
	if params.ResponseFormatJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	slog.Debug("calling OpenAI chat completion", "model", model)
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Client = (*OpenAIClient)(nil)
