package translation

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	apperrors "github.com/zlang-app/zlang/internal/errors"
	"github.com/zlang-app/zlang/internal/model"
	"github.com/zlang-app/zlang/internal/service/prompt"
)

// Sampling parameters sent with every request
const (
	Temperature      = 0.8
	TopP             = 0.9
	MaxTokens        = 500
	FrequencyPenalty = 0.1
	PresencePenalty  = 0.1
)

const (
	DefaultEndpoint = "https://openrouter.ai/api/v1"
	DefaultModel    = "gpt-4o-mini"
	DefaultAppURL   = "https://zlang.app"
	DefaultAppTitle = "ZLang - Gen Z Translator"
)

// modelAliases maps the short names offered to users to OpenRouter model IDs
var modelAliases = map[string]string{
	"gpt-4o-mini": "openai/gpt-4o-mini",
	"deepseek-v3": "deepseek/deepseek-chat-v3-0324:free",
}

// ResolveModel returns the OpenRouter model ID for a configured model name
func ResolveModel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultModel
	}
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// Translator performs one text conversion against the remote model
type Translator interface {
	Translate(ctx context.Context, text string, direction model.Direction, language model.Language) (string, error)
}

// ClientConfig holds the static settings of a Client
type ClientConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	// AppURL and AppTitle identify the calling application to OpenRouter
	AppURL   string
	AppTitle string
	// HTTPClient is optional; its timeout is the only one applied
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to an OpenAI-compatible chat completion endpoint.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	api    openai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a Client. The API key is required.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "api key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	appURL := cfg.AppURL
	if appURL == "" {
		appURL = DefaultAppURL
	}
	appTitle := cfg.AppTitle
	if appTitle == "" {
		appTitle = DefaultAppTitle
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(endpoint),
		option.WithHeader("HTTP-Referer", appURL),
		option.WithHeader("X-Title", appTitle),
		option.WithMaxRetries(0),
		// Drop headers the SDK fills from OPENAI_ORG_ID and OPENAI_PROJECT_ID
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		model:  ResolveModel(cfg.Model),
		logger: logger,
	}, nil
}

// Model returns the resolved model identifier
func (c *Client) Model() string {
	return c.model
}

// Translate issues exactly one completion request and returns the trimmed answer
func (c *Client) Translate(ctx context.Context, text string, direction model.Direction, language model.Language) (string, error) {
	if _, err := model.NewTranslationRequest(text, direction, language); err != nil {
		return "", err
	}

	params := c.buildParams(text, direction, language)

	c.logger.Debug("sending translation request",
		zap.String("model", c.model),
		zap.String("direction", direction.String()),
		zap.String("language", language.String()),
	)

	// status records the HTTP status even when the SDK cannot decode the body
	var status int
	capture := option.WithMiddleware(func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		res, err := next(req)
		if res != nil {
			status = res.StatusCode
		}
		return res, err
	})

	completion, err := c.api.Chat.Completions.New(ctx, params, capture)
	if err != nil {
		return "", c.classify(ctx, err, status)
	}

	if len(completion.Choices) == 0 {
		c.logger.Error("malformed translation response", zap.String("reason", "no choices"))
		return "", apperrors.New(apperrors.CodeMalformedResponse, "invalid response format from API")
	}
	choice := completion.Choices[0]
	if !choice.JSON.Message.Valid() || !choice.Message.JSON.Content.Valid() {
		c.logger.Error("malformed translation response", zap.String("reason", "missing message content"))
		return "", apperrors.New(apperrors.CodeMalformedResponse, "invalid response format from API")
	}
	// The decoder coerces numbers and booleans into Content
	if !strings.HasPrefix(strings.TrimSpace(choice.Message.JSON.Content.Raw()), `"`) {
		c.logger.Error("malformed translation response", zap.String("reason", "message content is not a string"))
		return "", apperrors.New(apperrors.CodeMalformedResponse, "invalid response format from API")
	}

	translated := strings.TrimSpace(choice.Message.Content)
	if translated == "" {
		c.logger.Warn("empty translation received", zap.String("model", c.model))
		return "", apperrors.New(apperrors.CodeEmptyResult, "empty translation received")
	}

	return translated, nil
}

// buildParams assembles the request body for one call
func (c *Client) buildParams(text string, direction model.Direction, language model.Language) openai.ChatCompletionNewParams {
	msgs := prompt.BuildMessages(text, direction, language)
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case prompt.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	return openai.ChatCompletionNewParams{
		Model:            shared.ChatModel(c.model),
		Messages:         messages,
		Temperature:      openai.Float(Temperature),
		TopP:             openai.Float(TopP),
		MaxTokens:        openai.Int(MaxTokens),
		FrequencyPenalty: openai.Float(FrequencyPenalty),
		PresencePenalty:  openai.Float(PresencePenalty),
	}
}

// classify maps a failed SDK call onto the failure taxonomy
func (c *Client) classify(ctx context.Context, err error, status int) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		detail := apiErr.Message
		if detail == "" {
			detail = apiErr.RawJSON()
		}
		c.logger.Warn("translation service error",
			zap.Int("status", apiErr.StatusCode),
			zap.String("detail", detail),
		)
		return apperrors.Service(apiErr.StatusCode, detail, err)
	}

	switch {
	case status >= 200 && status < 300:
		// 2xx that failed to decode is a payload problem, not a network one
		c.logger.Error("malformed translation response", zap.Error(err))
		return apperrors.Wrap(err, apperrors.CodeMalformedResponse, "invalid response format from API")
	case status != 0:
		c.logger.Warn("translation service error", zap.Int("status", status), zap.Error(err))
		return apperrors.Service(status, "", err)
	}

	c.logger.Warn("translation service unreachable", zap.Error(err))
	return apperrors.Service(0, "", err)
}

var _ Translator = (*Client)(nil)
