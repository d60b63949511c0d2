package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PortfolioEventType string

const (
	PortfolioEventGenerated PortfolioEventType = "portfolio.generated"
)

type PortfolioEvent struct {
	EventType  PortfolioEventType `json:"event_type"`
	OwnerID    uuid.UUID          `json:"owner_id"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, event PortfolioEvent) error
}
