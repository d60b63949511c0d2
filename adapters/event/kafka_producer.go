package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	TopicPortfolioEvents = "portfolio.events"
)

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
	logger                logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicPortfolioEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}

	log.Info("Kafka producer initialized", zap.Strings("brokers", brokers), zap.String("topic", TopicPortfolioEvents))
	return &KafkaProducerClient{PortfolioEventsWriter: writer, logger: log}, nil
}

// PublishPortfolioEvent keys messages by owner so events for one portfolio stay ordered.
func (c *KafkaProducerClient) PublishPortfolioEvent(ctx context.Context, e service.PortfolioEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal portfolio event: %w", err)
	}
	err = c.PortfolioEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OwnerID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("write portfolio event: %w", err)
	}
	c.logger.Debug("Portfolio event published", zap.String("owner_id", e.OwnerID.String()), zap.String("event_type", string(e.EventType)))
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		if err := c.PortfolioEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka producers")
}
