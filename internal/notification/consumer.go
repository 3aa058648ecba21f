package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sharath018/potluck-rsvp-backend/utils"
)

// Consumer reads rsvp.submitted events and hands them to the Service.
type Consumer struct {
	reader  *kafka.Reader
	service Service
}

func NewConsumer(brokers []string, topic, groupID string, svc Service) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			Topic:          topic,
			GroupID:        groupID,
			MinBytes:       1,
			MaxBytes:       1 << 20,
			MaxWait:        time.Second,
			CommitInterval: 0,
		}),
		service: svc,
	}
}

// Run blocks until ctx is cancelled. A message is committed after it was
// handled; a malformed payload is logged and committed so it does not block
// the partition.
func (c *Consumer) Run(ctx context.Context) {
	utils.Log.Info("notification consumer started", zap.String("topic", c.reader.Config().Topic))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				utils.Log.Info("notification consumer stopped")
				return
			}
			utils.Log.Warn("kafka fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			utils.Log.Warn("kafka commit failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	var ev SubmissionEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		utils.Log.Error("invalid rsvp event", zap.ByteString("key", msg.Key), zap.Error(err))
		return
	}
	if err := c.service.NotifySubmission(ctx, ev); err != nil {
		utils.Log.Warn("organizer notification failed", zap.String("guest_id", ev.GuestID.String()), zap.Error(err))
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
