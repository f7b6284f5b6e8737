package notifications

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/broker/kafka"
	"github.com/BearBump/OrderTrack/internal/broker/messages"
	"github.com/BearBump/OrderTrack/internal/models"
)

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers ...kafka.Header) error
}

// Publisher hands shipping progress notifications to the notify worker
// through kafka instead of writing them in the caller's request.
type Publisher struct {
	producer Producer
	topic    string
	now      func() time.Time
	newID    func() string
}

func NewPublisher(producer Producer, topic string) *Publisher {
	if topic == "" {
		topic = messages.TopicShippingProgress
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
}

func (p *Publisher) SendShippingProgressNotification(ctx context.Context, buyerID, trackedOrderID int64, status string, deliveryDate time.Time) error {
	if buyerID <= 0 {
		return errors.Wrapf(models.ErrInvalidArgument, "buyer id %d", buyerID)
	}

	msg := messages.ShippingProgressRequested{
		EventID:        p.newID(),
		BuyerID:        buyerID,
		TrackedOrderID: trackedOrderID,
		Status:         status,
		DeliveryDate:   models.DateOf(deliveryDate),
		RequestedAt:    p.now(),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal shipping progress")
	}

	key := []byte(strconv.FormatInt(buyerID, 10))
	return p.producer.Publish(ctx, p.topic, key, b, kafka.Header{Key: "event_id", Value: msg.EventID})
}
