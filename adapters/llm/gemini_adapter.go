package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type geminiLLMAdapter struct {
	client *genai.Client
	model  string
	log    logger.Logger
}

func NewGeminiLLMAdapter(ctx context.Context, cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	log.Info("Gemini LLM adapter initialized", zap.String("model", cfg.Gemini.Model))
	return &geminiLLMAdapter{client: client, model: cfg.Gemini.Model, log: log}, nil
}

func (a *geminiLLMAdapter) GenerateStructured(ctx context.Context, req service.StructuredRequest) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(req.Schema),
	}
	if req.Instruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.Instruction, genai.RoleUser)
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func toGenaiSchema(s *service.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if len(s.Enum) > 0 {
		out.Enum = s.Enum
		out.Format = "enum"
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func genaiType(t service.SchemaType) genai.Type {
	switch t {
	case service.TypeObject:
		return genai.TypeObject
	case service.TypeArray:
		return genai.TypeArray
	case service.TypeInteger:
		return genai.TypeInteger
	case service.TypeNumber:
		return genai.TypeNumber
	case service.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
