package service

import (
	"context"
	"encoding/json"
	"fmt"

	"tagcat/repository"

	"github.com/segmentio/kafka-go"
)

type ChangeType string

const (
	ChangeCreated ChangeType = "CREATED"
	ChangeUpdated ChangeType = "UPDATED"
	ChangeDeleted ChangeType = "DELETED"
)

type TagCategoryChange struct {
	Type      ChangeType              `json:"type"`
	Id        string                  `json:"id"`
	Timestamp int64                   `json:"timestamp"`
	Category  *repository.TagCategory `json:"category"`
}

type ChangePublisher interface {
	Publish(ctx context.Context, change TagCategoryChange) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaChangePublisher struct {
	writer messageWriter
}

func NewKafkaChangePublisher(writer *kafka.Writer) *KafkaChangePublisher {
	return &KafkaChangePublisher{writer: writer}
}

func (p *KafkaChangePublisher) Publish(ctx context.Context, change TagCategoryChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.Id),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(change.Type)},
		},
	})
}

func (p *KafkaChangePublisher) Close() error {
	return p.writer.Close()
}

// NoopChangePublisher drops events. It is used when no broker is configured.
type NoopChangePublisher struct{}

func (NoopChangePublisher) Publish(context.Context, TagCategoryChange) error {
	return nil
}

func (NoopChangePublisher) Close() error {
	return nil
}
