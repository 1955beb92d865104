package config

import (
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns a writer for the account topic, or nil when no brokers are configured.
func NewKafkaWriter(k Kafka) *kafka.Writer {
	if len(k.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(k.Brokers...),
		Topic:                  k.Topic,
		Balancer:               &kafka.Hash{}, // same key, same partition
		AllowAutoTopicCreation: true,
	}
}
