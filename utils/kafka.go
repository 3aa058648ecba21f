package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var KafkaWriter *kafka.Writer

// InitializeKafka prepares the shared writer. With no brokers the writer stays
// nil and PublishEvent drops messages.
func InitializeKafka(brokers []string, topic string) {
	if len(brokers) == 0 {
		Log.Info("KAFKA_BROKERS not set, events will not be published")
		return
	}

	KafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	Log.Info("kafka writer ready", zap.Strings("brokers", brokers), zap.String("topic", topic))
}

// PublishEvent writes payload as JSON keyed by key.
func PublishEvent(ctx context.Context, key string, payload interface{}) error {
	if KafkaWriter == nil {
		return nil
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return KafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

func CloseKafka() {
	if KafkaWriter == nil {
		return
	}
	if err := KafkaWriter.Close(); err != nil {
		Log.Warn("closing kafka writer", zap.Error(err))
	}
}
