package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aescanero/dago-prompt-dashboard/internal/config"
	"github.com/aescanero/dago-prompt-dashboard/internal/dashboard"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Worker consumes prompt jobs from a Redis stream
type Worker struct {
	id            string
	config        *config.Config
	redisClient   redis.Cmdable
	pipeline      *dashboard.Pipeline
	logger        *zap.Logger
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient redis.Cmdable,
	pipeline *dashboard.Pipeline,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		pipeline:      pipeline,
		logger:        logger,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Run processes jobs until ctx is cancelled
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("starting prompt worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	if err := w.ensureConsumerGroup(ctx); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("prompt worker stopped", zap.String("worker_id", w.id))
			return nil
		default:
		}

		streams, err := w.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    w.consumerGroup,
			Consumer: w.id,
			Streams:  []string{w.streamKey, ">"},
			Count:    1,
			Block:    w.config.BlockTime,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.logger.Error("failed to read from stream", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				w.handleMessage(ctx, message)
			}
		}
	}
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup(ctx context.Context) error {
	err := w.redisClient.XGroupCreateMkStream(ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// handleMessage handles a single job message
func (w *Worker) handleMessage(ctx context.Context, message redis.XMessage) {
	messageID := message.ID
	defer w.acknowledgeMessage(ctx, messageID)

	job, err := parseJob(message.Values)
	if err != nil {
		w.logger.Error("failed to parse job",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.publish(ctx, w.errorStream(), newErrorEvent(messageID, err))
		return
	}

	result, err := w.process(ctx, job)
	if err != nil {
		w.logger.Error("failed to process job",
			zap.String("message_id", messageID),
			zap.String("job_id", job.JobID),
			zap.Error(err),
		)
		w.publish(ctx, w.errorStream(), newErrorEvent(job.JobID, err))
		return
	}

	w.publish(ctx, w.resultStream, result)
	w.logger.Info("published prompt",
		zap.String("job_id", job.JobID),
		zap.String("template", result.Template),
	)
}

// Job is a prompt rendering request read from the work stream
type Job struct {
	JobID       string `json:"job_id"`
	CSV         string `json:"csv"`
	Template    string `json:"template"`
	Custom      string `json:"custom,omitempty"`
	FilterValue string `json:"filter_value,omitempty"`
}

// Result is published for every job that renders
type Result struct {
	JobID      string      `json:"job_id"`
	Template   string      `json:"template"`
	Mode       prompt.Mode `json:"mode"`
	Prompt     string      `json:"prompt"`
	Rows       int         `json:"rows"`
	Advisories []string    `json:"advisories,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// ErrorEvent is published for every job that fails
type ErrorEvent struct {
	JobID     string    `json:"job_id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// newErrorEvent reports a failed job. id is the job ID, or the stream
// message ID when the job could not be parsed.
func newErrorEvent(id string, err error) ErrorEvent {
	return ErrorEvent{
		JobID:     id,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// errorStream is the stream failed jobs are reported on
func (w *Worker) errorStream() string {
	return w.resultStream + ".errors"
}

// parseJob parses a job from a Redis message
func parseJob(values map[string]interface{}) (*Job, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var job Job
	if err := json.Unmarshal([]byte(dataStr), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}

	return &job, nil
}

// process renders the prompt for a job
func (w *Worker) process(ctx context.Context, job *Job) (*Result, error) {
	tbl, err := table.ParseCSV(strings.NewReader(job.CSV))
	if err != nil {
		return nil, err
	}

	v, err := w.pipeline.Build(ctx, tbl, dashboard.Request{
		Request:     prompt.Request{Template: job.Template, Custom: job.Custom},
		FilterValue: job.FilterValue,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	return &Result{
		JobID:      job.JobID,
		Template:   v.Prompt.Template,
		Mode:       v.Prompt.Mode,
		Prompt:     v.Prompt.Text,
		Rows:       v.Rows,
		Advisories: v.Advisories,
		Timestamp:  time.Now().UTC(),
	}, nil
}

// publish appends a JSON event to a stream
func (w *Worker) publish(ctx context.Context, stream string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		w.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	_, err = w.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		w.logger.Error("failed to publish event",
			zap.String("stream", stream),
			zap.Error(err),
		)
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
