package ingest

import (
	"context"
	"strings"

	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
)

// ImportResumeUseCase runs generation and materialization back to back.
type ImportResumeUseCase struct {
	generate    *GenerateContentUseCase
	materialize *GeneratePortfolioUseCase
}

func NewImportResumeUseCase(generate *GenerateContentUseCase, materialize *GeneratePortfolioUseCase) *ImportResumeUseCase {
	return &ImportResumeUseCase{generate: generate, materialize: materialize}
}

func (uc *ImportResumeUseCase) Execute(ctx context.Context, resumeText string) (*GeneratePortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "ImportResume")
	defer span.End()

	if _, ok := auth.OwnerIDFromContext(ctx); !ok {
		return nil, apperror.NewUnauthorized("no authenticated session", nil)
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, apperror.NewInvalidInput("resume text is empty", nil)
	}

	content, err := uc.generate.Execute(ctx, GenerateContentInput{ResumeText: resumeText})
	if err != nil {
		return nil, err
	}
	return uc.materialize.Execute(ctx, ToPortfolioInput(content))
}
