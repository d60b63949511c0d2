package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

var ErrCacheMiss = errors.New("cache miss")

type PortfolioCache interface {
	// Get returns ErrCacheMiss when nothing is cached for the owner.
	Get(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error)
	Set(ctx context.Context, ownerID uuid.UUID, p *portfolio.Portfolio) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
