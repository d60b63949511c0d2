package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// openAILLMAdapter talks to any OpenAI-compatible chat endpoint. Ollama only gets JSON mode,
// so its schema travels inside the prompt instead.
type openAILLMAdapter struct {
	client     *openai.Client
	model      string
	schemaMode bool
	log        logger.Logger
}

func NewOpenAILLMAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}

	log.Info("OpenAI LLM adapter initialized", zap.String("model", cfg.OpenAI.Model))
	return &openAILLMAdapter{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.OpenAI.Model,
		schemaMode: true,
		log:        log,
	}, nil
}

func NewOllamaLLMAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.Ollama.Host == "" {
		return nil, fmt.Errorf("ollama host is not configured")
	}

	clientCfg := openai.DefaultConfig("ollama")
	clientCfg.BaseURL = strings.TrimRight(cfg.Ollama.Host, "/") + "/v1"

	log.Info("Ollama LLM adapter initialized", zap.String("model", cfg.Ollama.Model))
	return &openAILLMAdapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Ollama.Model,
		log:    log,
	}, nil
}

func (a *openAILLMAdapter) GenerateStructured(ctx context.Context, req service.StructuredRequest) (string, error) {
	chatReq, err := a.buildRequest(req)
	if err != nil {
		return "", err
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	a.log.Debug("Chat completion finished",
		zap.String("model", a.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

func (a *openAILLMAdapter) buildRequest(req service.StructuredRequest) (openai.ChatCompletionRequest, error) {
	prompt := req.Prompt
	format := &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}

	if a.schemaMode && req.Schema != nil {
		format = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "portfolio",
				Schema: toJSONSchema(req.Schema),
			},
		}
	} else if req.Schema != nil {
		raw, err := json.Marshal(req.Schema)
		if err != nil {
			return openai.ChatCompletionRequest{}, fmt.Errorf("encode response schema: %w", err)
		}
		prompt = prompt + "\nThe response must be a JSON document matching this JSON schema:\n" + string(raw)
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.Instruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.Instruction})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	return openai.ChatCompletionRequest{
		Model:          a.model,
		Messages:       messages,
		ResponseFormat: format,
		Temperature:    0.1,
	}, nil
}

// openAISchema is the JSON Schema dialect the OpenAI structured output API accepts. Nullable
// fields are emitted as a type union with "null".
type openAISchema struct {
	Type        any                      `json:"type"`
	Description string                   `json:"description,omitempty"`
	Enum        []any                    `json:"enum,omitempty"`
	Properties  map[string]*openAISchema `json:"properties,omitempty"`
	Items       *openAISchema            `json:"items,omitempty"`
	Required    []string                 `json:"required,omitempty"`
}

func (s *openAISchema) MarshalJSON() ([]byte, error) {
	type plain openAISchema
	return json.Marshal((*plain)(s))
}

func toJSONSchema(s *service.Schema) *openAISchema {
	if s == nil {
		return nil
	}
	out := &openAISchema{
		Type:        string(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if s.Nullable {
		out.Type = []string{string(s.Type), "null"}
	}
	if len(s.Enum) > 0 {
		out.Enum = make([]any, 0, len(s.Enum)+1)
		for _, v := range s.Enum {
			out.Enum = append(out.Enum, v)
		}
		if s.Nullable {
			out.Enum = append(out.Enum, nil)
		}
	}
	if s.Items != nil {
		out.Items = toJSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*openAISchema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toJSONSchema(prop)
		}
	}
	return out
}
