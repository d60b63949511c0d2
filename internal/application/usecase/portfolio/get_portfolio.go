package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

type GetPortfolioUseCase struct {
	repo   portfolio.Repository
	cache  service.PortfolioCache
	logger logger.Logger
}

// NewGetPortfolioUseCase builds the public read path. cache may be nil.
func NewGetPortfolioUseCase(repo portfolio.Repository, cache service.PortfolioCache, log logger.Logger) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *GetPortfolioUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	ctx, span := tracer.Start(ctx, "GetPortfolio")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", ownerID.String()))

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, ownerID)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return cached, nil
		}
		if !errors.Is(err, service.ErrCacheMiss) {
			uc.logger.Warn("Portfolio cache read failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
		}
	}

	p, err := uc.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, ownerID, p); err != nil {
			uc.logger.Warn("Portfolio cache write failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
		}
	}
	return p, nil
}

type InvalidatePortfolioUseCase struct {
	cache  service.PortfolioCache
	logger logger.Logger
}

func NewInvalidatePortfolioUseCase(cache service.PortfolioCache, log logger.Logger) *InvalidatePortfolioUseCase {
	return &InvalidatePortfolioUseCase{cache: cache, logger: log}
}

// Execute drops the cached portfolio for the event's owner. Unknown event types are ignored.
func (uc *InvalidatePortfolioUseCase) Execute(ctx context.Context, event service.PortfolioEvent) error {
	if event.EventType != service.PortfolioEventGenerated {
		uc.logger.Debug("Ignoring portfolio event", zap.String("event_type", string(event.EventType)))
		return nil
	}
	if event.OwnerID == uuid.Nil {
		return nil
	}
	if err := uc.cache.Invalidate(ctx, event.OwnerID); err != nil {
		uc.logger.Error("Failed to invalidate portfolio cache", err, zap.String("owner_id", event.OwnerID.String()))
		return err
	}
	uc.logger.Info("Portfolio cache invalidated", zap.String("owner_id", event.OwnerID.String()))
	return nil
}
