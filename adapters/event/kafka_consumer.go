package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// PortfolioEventHandler processes one decoded event. A failing handler is retried with backoff;
// if it keeps failing the message stays uncommitted and Run returns.
type PortfolioEventHandler func(ctx context.Context, e service.PortfolioEvent) error

const (
	handlerMaxTries = 5
	fetchMaxTries   = 10
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConsumerClient struct {
	reader     messageReader
	newBackOff func() backoff.BackOff
	logger     logger.Logger
}

func NewKafkaConsumerClient(cfg config.Config, log logger.Logger) (*KafkaConsumerClient, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicPortfolioEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	log.Info("Kafka consumer initialized",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", TopicPortfolioEvents),
		zap.String("group_id", cfg.Kafka.GroupID),
	)
	return newConsumer(reader, log), nil
}

func newConsumer(r messageReader, log logger.Logger) *KafkaConsumerClient {
	return &KafkaConsumerClient{
		reader: r,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 500 * time.Millisecond
			bo.MaxInterval = 30 * time.Second
			return bo
		},
		logger: log,
	}
}

// Run blocks until ctx is cancelled or the reader is closed, returning nil in both cases.
// Undecodable messages are committed and skipped. A message whose handler still fails after
// retries is left uncommitted and Run returns the error, so the group redelivers it.
func (c *KafkaConsumerClient) Run(ctx context.Context, handle PortfolioEventHandler) error {
	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("fetch portfolio event: %w", err)
		}

		log := c.logger.With(
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.String("key", string(msg.Key)),
		)

		e, err := DecodePortfolioEvent(msg.Value)
		if err != nil {
			log.Warn("Skipping undecodable event", zap.Error(err))
			if err := c.commit(ctx, msg); err != nil {
				return err
			}
			continue
		}

		attempt := 0
		_, err = backoff.Retry(ctx, func() (struct{}, error) {
			attempt++
			if err := handle(ctx, e); err != nil {
				log.Warn("Event handler failed", zap.Int("attempt", attempt), zap.Error(err))
				return struct{}{}, err
			}
			return struct{}{}, nil
		}, backoff.WithBackOff(c.newBackOff()), backoff.WithMaxTries(handlerMaxTries))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error("Giving up on event, leaving it uncommitted", err, zap.String("event_type", string(e.EventType)))
			return fmt.Errorf("handle portfolio event at offset %d: %w", msg.Offset, err)
		}

		if err := c.commit(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *KafkaConsumerClient) fetch(ctx context.Context) (kafka.Message, error) {
	return backoff.Retry(ctx, func() (kafka.Message, error) {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return msg, backoff.Permanent(err)
			}
			c.logger.Error("Failed to fetch message from Kafka", err)
		}
		return msg, err
	}, backoff.WithBackOff(c.newBackOff()), backoff.WithMaxTries(fetchMaxTries))
}

func (c *KafkaConsumerClient) commit(ctx context.Context, msg kafka.Message) error {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
	}
	return nil
}

func (c *KafkaConsumerClient) Close() error {
	return c.reader.Close()
}

func DecodePortfolioEvent(value []byte) (service.PortfolioEvent, error) {
	var e service.PortfolioEvent
	if err := json.Unmarshal(value, &e); err != nil {
		return e, fmt.Errorf("decode portfolio event: %w", err)
	}
	if e.EventType == "" {
		return e, errors.New("decode portfolio event: missing event_type")
	}
	return e, nil
}
