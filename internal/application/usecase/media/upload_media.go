package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type UploadMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadMediaUseCase(u service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: u, logger: log}
}

type UploadMediaInput struct {
	File io.Reader
}

type UploadMediaOutput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Execute stores an image for the current owner and returns its public URL, ready to be used as a
// profile picture or project image.
func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadMediaInput) (*UploadMediaOutput, error) {
	ownerID, ok := auth.OwnerIDFromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthorized("no authenticated session", nil)
	}
	if input.File == nil {
		return nil, apperror.NewInvalidInput("file is required", nil)
	}

	folder := fmt.Sprintf("users/%s/portfolio", ownerID.String())
	publicID := uuid.New().String()

	res, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		uc.logger.Error("Media upload failed", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to upload media file", err)
	}

	uc.logger.Info("Media uploaded", zap.String("owner_id", ownerID.String()), zap.String("public_id", res.PublicID))
	return &UploadMediaOutput{URL: res.URL, PublicID: res.PublicID}, nil
}
