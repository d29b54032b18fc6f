// Package announce publishes a short event after every successful ingest
// so downstream consumers can react to new ticks without polling the store.
package announce

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

// Event announces a successfully ingested tick.
type Event struct {
	Round     int       `json:"round"`
	Tick      int       `json:"tick"`
	Players   int       `json:"players"`
	Alliances int       `json:"alliances"`
	TimeAdded time.Time `json:"timeAdded"`
}

// Key is the Kafka message key: round and tick, so all events for one
// round land on the same partition in order.
func (e Event) Key() []byte {
	return []byte(fmt.Sprintf("%d-%d", e.Round, e.Tick))
}

// Announcer defines the interface for publishing tick events.
type Announcer interface {
	// Announce publishes the event. Failures here never fail the run.
	Announce(ctx context.Context, ev Event) error

	// Close gracefully shuts down the announcer.
	Close() error
}

// KafkaAnnouncer implements Announcer using kafka-go.
type KafkaAnnouncer struct {
	writer *kafka.Writer
}

// Config holds Kafka announcer configuration.
type Config struct {
	Brokers []string
	Topic   string
}

// NewKafkaAnnouncer creates a new KafkaAnnouncer instance.
func NewKafkaAnnouncer(cfg Config) *KafkaAnnouncer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaAnnouncer{
		writer: writer,
	}
}

// Announce publishes the event synchronously.
func (a *KafkaAnnouncer) Announce(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializing tick event: %w", err)
	}

	return a.writer.WriteMessages(ctx, kafka.Message{
		Key:   ev.Key(),
		Value: value,
	})
}

// Close gracefully shuts down the announcer.
func (a *KafkaAnnouncer) Close() error {
	return a.writer.Close()
}

// Nop is an Announcer that does nothing, used when announcing is not
// configured.
type Nop struct{}

func (Nop) Announce(ctx context.Context, ev Event) error { return nil }
func (Nop) Close() error                                 { return nil }
