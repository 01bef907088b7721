package config

import (
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

func GetWriter(cfg *Config) (*kafka.Writer, error) {
	if cfg.KafkaBroker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		Compression:            kafka.Zstd,
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, nil
}
