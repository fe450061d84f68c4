package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/kafkax"
)

// Event is the wire form of a notice.
type Event struct {
	EventID    string    `json:"event_id"`
	Level      Level     `json:"level"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
	Producer   string    `json:"producer"`
}

// Kafka publishes notices to a topic. Delivery is fire-and-forget.
type Kafka struct {
	Producer    *kafkax.Producer
	ServiceName string
	Log         *zap.Logger
}

func (k *Kafka) publish(level Level, msg string) {
	ev := Event{
		EventID:    uuid.NewString(),
		Level:      level,
		Message:    msg,
		OccurredAt: time.Now().UTC(),
		Producer:   k.ServiceName,
	}
	k.Producer.Publish([]byte(ev.EventID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-level", Value: []byte(level)},
	)
	if k.Log != nil {
		k.Log.Info("notice", zap.String("level", string(level)), zap.String("message", msg))
	}
}

func (k *Kafka) Success(_ context.Context, msg string) { k.publish(LevelSuccess, msg) }
func (k *Kafka) Warn(_ context.Context, msg string)    { k.publish(LevelWarning, msg) }
func (k *Kafka) Error(_ context.Context, msg string)   { k.publish(LevelError, msg) }
