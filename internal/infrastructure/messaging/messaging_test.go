package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/pkg/logger"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReconciled(ctx context.Context, event entity.ReconciledEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func sampleEvent() entity.ReconciledEvent {
	return entity.ReconciledEvent{
		RunID:     "run-1",
		Sources:   []string{"trip.txt"},
		TotalLegs: 2,
		Timestamp: time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_PublishReconciled(t *testing.T) {
	w := &MockWriter{}
	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != "run-1" {
			return false
		}
		var got entity.ReconciledEvent
		return json.Unmarshal(msgs[0].Value, &got) == nil && got.TotalLegs == 2
	})).Return(nil)
	w.On("Close").Return(nil)

	p := &KafkaPublisher{writer: w, topic: "boardingpass.reconciled", logger: logger.NewNopLogger()}
	require.NoError(t, p.PublishReconciled(context.Background(), sampleEvent()))
	require.NoError(t, p.Close())
	w.AssertExpectations(t)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &MockWriter{}
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available"))

	p := &KafkaPublisher{writer: w, topic: "t", logger: logger.NewNopLogger()}
	err := p.PublishReconciled(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "leader not available")
}

func TestBreakerPublisher_OpensAfterFailures(t *testing.T) {
	next := &MockPublisher{}
	next.On("PublishReconciled", mock.Anything, mock.Anything).Return(errors.New("broker down")).Times(3)

	cfg := DefaultBreakerConfig("test")
	cfg.Timeout = time.Hour
	p := NewBreakerPublisher(next, cfg, logger.NewNopLogger())

	for i := 0; i < 3; i++ {
		assert.EqualError(t, p.PublishReconciled(context.Background(), sampleEvent()), "broker down")
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	err := p.PublishReconciled(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	next.AssertNumberOfCalls(t, "PublishReconciled", 3)
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	next := &MockPublisher{}
	next.On("PublishReconciled", mock.Anything, sampleEvent()).Return(nil)
	next.On("Close").Return(nil)

	p := NewBreakerPublisher(next, DefaultBreakerConfig("test"), logger.NewNopLogger())
	require.NoError(t, p.PublishReconciled(context.Background(), sampleEvent()))
	assert.Equal(t, gobreaker.StateClosed, p.State())
	require.NoError(t, p.Close())
	next.AssertExpectations(t)
}
