package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueueService carries post-commit jobs (receipt emails) on a Redis
// Stream so a confirmation never waits on SMTP.
type RedisQueueService struct {
	client *redis.Client
}

// NewRedisQueueService creates a new Redis queue service
func NewRedisQueueService(client *redis.Client) *RedisQueueService {
	return &RedisQueueService{client: client}
}

// ReceiptJob is the payload enqueued after a booking is confirmed or
// cancelled. The consumer re-reads booking state by PNR, so the job only
// needs routing information.
type ReceiptJob struct {
	PNR              string `json:"pnr"`
	BookingReference string `json:"booking_reference"`
	Email            string `json:"email"`
	Cancellation     bool   `json:"cancellation"`
	EnqueuedAt       string `json:"enqueued_at"`
}

// EnqueueReceipt adds a receipt job to the stream.
// XADD stream * data <json>
func (s *RedisQueueService) EnqueueReceipt(ctx context.Context, streamName string, job *ReceiptJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt job: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// DequeueReceipt reads the next receipt job via a consumer group.
// Returns (nil, "", nil) on timeout.
func (s *RedisQueueService) DequeueReceipt(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*ReceiptJob, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]
	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, "", fmt.Errorf("invalid message format: data field missing")
	}

	var job ReceiptJob
	if err := json.Unmarshal([]byte(dataStr), &job); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal receipt job: %w", err)
	}

	return &job, msg.ID, nil
}

// AckReceipt acknowledges successful processing of a message
func (s *RedisQueueService) AckReceipt(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
func (s *RedisQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && strings.Contains(err.Error(), "BUSYGROUP") {
		return nil
	}
	return err
}
