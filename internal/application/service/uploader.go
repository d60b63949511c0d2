package service

import (
	"context"
	"io"
)

type UploadResult struct {
	URL      string
	PublicID string
}

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
