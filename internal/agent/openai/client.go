package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dial-cli/internal/agent"
	"dial-cli/internal/gateway"
	"dial-cli/internal/logger"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// azureAPIVersion is sent with every request when the gateway is addressed
// in Azure-style resource routing.
const azureAPIVersion = "2024-02-01"

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client talks to the gateway through whichever routing mode the configured
// base URL resolves to. In Azure mode requests go through
// {base}/openai/deployments/{model} with Api-Key auth; in direct mode the
// base URL already is the OpenAI-v1 root and auth is a bearer token.
type Client struct {
	api      *openai.Client
	model    string
	endpoint gateway.Endpoint
}

var _ agent.ModelClient = (*Client)(nil)

func New(opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, errors.New("missing API key: run `dial-cli login` or set DIAL_API_KEY")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, errors.New("missing model: set model in config or pass -model")
	}

	ep := gateway.Resolve(opts.BaseURL)
	var cfg []option.RequestOption
	if ep.UseAzure {
		cfg = []option.RequestOption{
			option.WithBaseURL(ep.APIBaseURL + "/openai/deployments/" + model),
			option.WithHeader("Api-Key", key),
			option.WithQueryAdd("api-version", azureAPIVersion),
		}
	} else {
		cfg = []option.RequestOption{
			option.WithBaseURL(ep.APIBaseURL),
			option.WithAPIKey(key),
		}
	}
	client := openai.NewClient(cfg...)

	return &Client{
		api:      &client,
		model:    model,
		endpoint: ep,
	}, nil
}

// Endpoint exposes the resolved routing decision for callers that report it.
func (c *Client) Endpoint() gateway.Endpoint {
	return c.endpoint
}

func (c *Client) resolveModel(model string) string {
	if strings.TrimSpace(model) != "" {
		return model
	}
	return c.model
}

func (c *Client) Complete(ctx context.Context, messages []agent.Message, model string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.resolveModel(model)),
		Messages: toChatMessages(messages),
	}

	logger.LLMLog.Request(c.resolveModel(model), agent.ToLLMMessages(messages))
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.LLMLog.Error(c.resolveModel(model), err)
		return "", wrapHTTPError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	text := resp.Choices[0].Message.Content
	logger.LLMLog.Response(c.resolveModel(model), text)
	return text, nil
}

func (c *Client) Stream(ctx context.Context, messages []agent.Message, model string, onChunk func(string)) error {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.resolveModel(model)),
		Messages: toChatMessages(messages),
	}
	// Azure-style deployments reject stream_options; only the direct v1 root
	// gets usage totals in the final chunk.
	if !c.endpoint.UseAzure {
		params.StreamOptions = openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		}
	}

	logger.LLMLog.Request(c.resolveModel(model), agent.ToLLMMessages(messages))
	stream := c.api.Chat.Completions.NewStreaming(ctx, params)
	seq := 0
	for stream.Next() {
		chunk := stream.Current()
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				logger.LLMLog.StreamChunk(c.resolveModel(model), choice.Delta.Content, seq)
				seq++
				onChunk(choice.Delta.Content)
			}
		}
	}
	if err := stream.Err(); err != nil {
		logger.LLMLog.Error(c.resolveModel(model), err)
		return wrapHTTPError(err)
	}
	return nil
}

func toChatMessages(msgs []agent.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case agent.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case agent.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

func wrapHTTPError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		respDump := strings.TrimSpace(string(apiErr.DumpResponse(true)))
		if respDump != "" {
			return fmt.Errorf("http_%d: %s", apiErr.StatusCode, respDump)
		}
		raw := strings.TrimSpace(apiErr.RawJSON())
		if raw != "" {
			return fmt.Errorf("http_%d: %s", apiErr.StatusCode, raw)
		}
		return fmt.Errorf("http_%d: %v", apiErr.StatusCode, err)
	}
	return err
}
