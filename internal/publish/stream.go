package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StreamSink publishes prompt events to a Redis stream
type StreamSink struct {
	client redis.Cmdable
	stream string
	logger *zap.Logger
}

// NewStreamSink creates a new Redis stream sink
func NewStreamSink(client redis.Cmdable, stream string, logger *zap.Logger) *StreamSink {
	return &StreamSink{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Publish appends the event to the stream
func (s *StreamSink) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	s.logger.Debug("published prompt event",
		zap.String("stream", s.stream),
		zap.String("message_id", id),
		zap.String("request_id", event.RequestID),
	)

	return nil
}
