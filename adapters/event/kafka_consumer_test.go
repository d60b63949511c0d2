package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func TestDecodePortfolioEvent(t *testing.T) {
	want := service.PortfolioEvent{
		EventType:  service.PortfolioEventGenerated,
		OwnerID:    uuid.New(),
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := DecodePortfolioEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, want.EventType, got.EventType)
	assert.Equal(t, want.OwnerID, got.OwnerID)
	assert.True(t, want.OccurredAt.Equal(got.OccurredAt))
}

func TestDecodePortfolioEvent_Rejects(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":           "{",
		"missing event type": `{"owner_id":"` + uuid.NewString() + `"}`,
		"bad owner id":       `{"event_type":"portfolio.generated","owner_id":"nope"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePortfolioEvent([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestNewKafkaClients_RequireBrokers(t *testing.T) {
	var cfg config.Config

	_, err := NewKafkaProducerClient(cfg, logger.NewNopLogger())
	assert.Error(t, err)

	_, err = NewKafkaConsumerClient(cfg, logger.NewNopLogger())
	assert.Error(t, err)
}

// scriptedReader serves queued messages, then blocks until the context ends or returns io.EOF.
type scriptedReader struct {
	mu         sync.Mutex
	messages   []kafka.Message
	fetchErrs  []error
	committed  []int64
	eofWhenDry bool
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	eof := r.eofWhenDry
	r.mu.Unlock()
	if eof {
		return kafka.Message{}, io.EOF
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *scriptedReader) Close() error { return nil }

func eventMessage(t *testing.T, offset int64) kafka.Message {
	raw, err := json.Marshal(service.PortfolioEvent{EventType: service.PortfolioEventGenerated, OwnerID: uuid.New()})
	require.NoError(t, err)
	return kafka.Message{Topic: TopicPortfolioEvents, Offset: offset, Value: raw}
}

func testConsumer(r messageReader) *KafkaConsumerClient {
	c := newConsumer(r, logger.NewNopLogger())
	c.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return c
}

func TestConsumer_RetriesFailingHandlerBeforeCommit(t *testing.T) {
	r := &scriptedReader{messages: []kafka.Message{eventMessage(t, 7)}, eofWhenDry: true}
	calls := 0
	handle := func(context.Context, service.PortfolioEvent) error {
		calls++
		if calls < 3 {
			return errors.New("redis down")
		}
		return nil
	}

	require.NoError(t, testConsumer(r).Run(context.Background(), handle))
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int64{7}, r.committed)
}

func TestConsumer_PersistentFailureStopsWithoutCommit(t *testing.T) {
	r := &scriptedReader{messages: []kafka.Message{eventMessage(t, 7), eventMessage(t, 8)}, eofWhenDry: true}
	calls := 0
	handle := func(context.Context, service.PortfolioEvent) error {
		calls++
		return errors.New("redis down")
	}

	err := testConsumer(r).Run(context.Background(), handle)
	require.Error(t, err)
	assert.Equal(t, handlerMaxTries, calls)
	assert.Empty(t, r.committed, "a later offset must not be committed past the failed one")
}

func TestConsumer_SkipsUndecodableAndCommits(t *testing.T) {
	r := &scriptedReader{
		messages:   []kafka.Message{{Offset: 1, Value: []byte("{")}, eventMessage(t, 2)},
		eofWhenDry: true,
	}
	handled := 0

	err := testConsumer(r).Run(context.Background(), func(context.Context, service.PortfolioEvent) error {
		handled++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, handled)
	assert.Equal(t, []int64{1, 2}, r.committed)
}

func TestConsumer_StopsOnClosedReader(t *testing.T) {
	r := &scriptedReader{eofWhenDry: true}
	assert.NoError(t, testConsumer(r).Run(context.Background(), func(context.Context, service.PortfolioEvent) error { return nil }))
}

func TestConsumer_TransientFetchErrorsAreRetried(t *testing.T) {
	r := &scriptedReader{
		fetchErrs:  []error{errors.New("broker unavailable"), errors.New("broker unavailable")},
		messages:   []kafka.Message{eventMessage(t, 3)},
		eofWhenDry: true,
	}

	require.NoError(t, testConsumer(r).Run(context.Background(), func(context.Context, service.PortfolioEvent) error { return nil }))
	assert.Equal(t, []int64{3}, r.committed)
}

func TestConsumer_StopsWhenContextCancelled(t *testing.T) {
	r := &scriptedReader{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- testConsumer(r).Run(ctx, func(context.Context, service.PortfolioEvent) error { return nil }) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
