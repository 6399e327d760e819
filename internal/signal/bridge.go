package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// changeNotice is the wire form of one sync signal on the broker.
type changeNotice struct {
	Origin     string    `json:"origin"`
	Collection string    `json:"collection"`
	At         time.Time `json:"at"`
}

// Bridge mirrors sync signals between processes over Kafka so that a mutation
// in one dashboard instance is observed by all others. Each bridge consumes
// with its own group ID so every instance sees every notice; notices carrying
// the bridge's own origin ID are dropped to avoid loops.
type Bridge struct {
	hub    *Hub
	origin string
	writer *kafka.Writer
	reader *kafka.Reader
}

func NewBridge(hub *Hub, brokers []string, topic string) *Bridge {
	origin := uuid.NewString()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "sync-" + origin,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Bridge{hub: hub, origin: origin, writer: writer, reader: reader}
}

// Start installs the bridge as the hub's forwarder and begins consuming
// remote notices until ctx is canceled.
func (b *Bridge) Start(ctx context.Context) {
	b.hub.SetForwarder(func(collection string) {
		b.send(ctx, collection)
	})
	go b.consume(ctx)
}

func (b *Bridge) send(ctx context.Context, collection string) {
	notice := changeNotice{Origin: b.origin, Collection: collection, At: time.Now()}
	value, err := json.Marshal(notice)
	if err != nil {
		zap.S().Errorf("signal: encode notice: %v", err)
		return
	}
	err = b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(collection),
		Value: value,
		Time:  notice.At,
	})
	if err != nil {
		// A lost notice only delays the next reload; the persisted write
		// already happened and must not be affected.
		zap.S().Warnf("signal: publish notice for %s: %v", collection, err)
	}
}

func (b *Bridge) consume(ctx context.Context) {
	for {
		msg, err := b.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.S().Warnf("signal: read notice: %v", err)
			continue
		}
		b.handleNotice(msg.Value)
	}
}

// handleNotice dispatches one notice from the broker into the local hub.
// Notices carrying this bridge's own origin ID already ran locally and are
// dropped.
func (b *Bridge) handleNotice(value []byte) {
	var notice changeNotice
	if err := json.Unmarshal(value, &notice); err != nil {
		zap.S().Warnf("signal: decode notice: %v", err)
		return
	}
	if notice.Origin == b.origin {
		return
	}
	b.hub.Dispatch(notice.Collection)
}

func (b *Bridge) Close() error {
	if err := b.writer.Close(); err != nil {
		return err
	}
	return b.reader.Close()
}
