package pkg

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// ChannelEvent is the payload for channel lifecycle messages. Keyed by
// channel id so one channel's events stay ordered within a partition.
type ChannelEvent struct {
	Event     string    `json:"event"`
	ChannelID uuid.UUID `json:"channel_id"`
	UserID    uuid.UUID `json:"user_id"`
	EventTime string    `json:"event_time"`
}

func EncodeChannelEvent(event string, channelID, userID uuid.UUID) []byte {
	payload, _ := json.Marshal(ChannelEvent{
		Event:     event,
		ChannelID: channelID,
		UserID:    userID,
		EventTime: time.Now().UTC().Format(time.RFC3339Nano),
	})
	return payload
}
