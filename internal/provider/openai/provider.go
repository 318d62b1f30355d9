package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"horoscopo/internal/config"
	"horoscopo/internal/models"
)

const userAgent = "horoscopo/0.1"

// Provider talks to an OpenAI-compatible chat-completion API. It holds no
// per-request state and is safe for concurrent use.
type Provider struct {
	name    string
	baseURL string
	api     *goopenai.Client
}

// New creates a provider for the configured endpoint using client for transport.
func New(name string, cfg config.ProviderConfig, client *http.Client) (*Provider, error) {
	if client == nil {
		return nil, errors.New("http client must not be nil")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("base url must not be empty")
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = baseURL
	apiCfg.HTTPClient = withHeaders(client, cfg.Headers)

	return &Provider{
		name:    name,
		baseURL: baseURL,
		api:     goopenai.NewClientWithConfig(apiCfg),
	}, nil
}

func (p *Provider) Name() string {
	return p.name
}

// Chat performs exactly one chat completion call.
func (p *Provider) Chat(ctx context.Context, req models.ChatRequest) (models.ChatReply, error) {
	payload, err := buildChatPayload(req)
	if err != nil {
		return models.ChatReply{}, err
	}

	resp, err := p.api.CreateChatCompletion(ctx, payload)
	if err != nil {
		return models.ChatReply{}, fmt.Errorf("%s chat request failed: %w", p.name, describeError(err))
	}

	return toReply(resp), nil
}

func buildChatPayload(req models.ChatRequest) (goopenai.ChatCompletionRequest, error) {
	if strings.TrimSpace(req.Model) == "" {
		return goopenai.ChatCompletionRequest{}, errors.New("model must not be empty")
	}

	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		if strings.TrimSpace(msg.Content) == "" {
			return goopenai.ChatCompletionRequest{}, errors.New("message content must not be empty")
		}
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return goopenai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: wireTemperature(req.Temperature),
	}, nil
}

// wireTemperature keeps a zero temperature on the wire; go-openai drops 0 via omitempty.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func toReply(resp goopenai.ChatCompletionResponse) models.ChatReply {
	choices := make([]models.Choice, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, models.Choice{
			Message: models.Message{
				Role:    choice.Message.Role,
				Content: choice.Message.Content,
			},
			FinishReason: string(choice.FinishReason),
		})
	}

	return models.ChatReply{
		ID:      resp.ID,
		Choices: choices,
		Usage: models.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
}

func describeError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("upstream status %d (%s): %w", apiErr.HTTPStatusCode, apiErr.Type, err)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("upstream status %d: %w", reqErr.HTTPStatusCode, err)
	}

	return err
}

// headerTransport adds static headers to every outbound request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", userAgent)
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}
	return t.base.RoundTrip(clone)
}

func withHeaders(client *http.Client, headers map[string]string) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	wrapped := *client
	wrapped.Transport = headerTransport{base: base, headers: headers}
	return &wrapped
}
