package ingest

import (
	"context"
	"encoding/json"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var tracer = otel.Tracer("ingest_usecase")

const msgContentFailed = "Failed to generate content"

type GenerateContentUseCase struct {
	llm    service.LLMService
	logger logger.Logger
}

func NewGenerateContentUseCase(llm service.LLMService, log logger.Logger) *GenerateContentUseCase {
	return &GenerateContentUseCase{
		llm:    llm,
		logger: log,
	}
}

type GenerateContentInput struct {
	ResumeText string
}

func (uc *GenerateContentUseCase) Execute(ctx context.Context, input GenerateContentInput) (*GeneratedContent, error) {
	ctx, span := tracer.Start(ctx, "GenerateContent")
	defer span.End()

	ownerID, ok := auth.OwnerIDFromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthorized("no authenticated session", nil)
	}

	l := uc.logger.With(zap.String("owner_id", ownerID.String()))
	span.SetAttributes(attribute.Int("resume_length", len(input.ResumeText)))

	raw, err := uc.llm.GenerateStructured(ctx, service.StructuredRequest{
		Instruction: resumeInstruction,
		Prompt:      buildResumePrompt(input.ResumeText),
		Schema:      ResumeSchema(),
	})
	if err != nil {
		l.Error("Content generation request failed", err)
		span.RecordError(err)
		return nil, apperror.NewFailed(msgContentFailed, err)
	}

	var content GeneratedContent
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &content); err != nil {
		l.Error("Model returned invalid JSON", err, zap.Int("response_length", len(raw)))
		span.RecordError(err)
		return nil, apperror.NewFailed(msgContentFailed, err)
	}

	l.Info("Content generated",
		zap.Int("skills", len(content.User.Skills)),
		zap.Int("projects", len(content.User.Projects)),
		zap.Int("experiences", len(content.User.Experiences)),
	)
	return &content, nil
}

// stripCodeFence unwraps ```json ... ``` blocks some models emit even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
