package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// LocalPublisher delivers portfolio events to a handler in the same process. The server uses
// it in place of Kafka when no brokers are configured.
type LocalPublisher struct {
	handle PortfolioEventHandler
	logger logger.Logger
}

func NewLocalPublisher(handle PortfolioEventHandler, log logger.Logger) *LocalPublisher {
	return &LocalPublisher{handle: handle, logger: log}
}

func (p *LocalPublisher) PublishPortfolioEvent(ctx context.Context, e service.PortfolioEvent) error {
	if err := p.handle(ctx, e); err != nil {
		return err
	}
	p.logger.Debug("Portfolio event handled locally",
		zap.String("owner_id", e.OwnerID.String()),
		zap.String("event_type", string(e.EventType)),
	)
	return nil
}
