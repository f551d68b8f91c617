// Package service holds the outbound integrations: publishing domain events
// to RabbitMQ. Publish errors are logged and returned so callers can treat
// them as best-effort without interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/queue"
	"github.com/Abdulazizdev09/wedding-hall-booking/pkg/logger"
)

// BookingPublisher publishes BookingEvent messages to the booking.events
// queue. Each publish dials its own short-lived connection; event volume is
// a handful per request, not a stream, so a pooled channel is not worth the
// reconnect bookkeeping.
type BookingPublisher struct {
	URL string
}

// NewBookingPublisher resolves the broker URL from the environment.
func NewBookingPublisher() *BookingPublisher {
	return &BookingPublisher{URL: queue.BrokerURL()}
}

// PublishBookingEvent marshals the event and publishes it persistently to
// the booking.events queue, declaring it first so publisher and consumer can
// start in either order.
func (p *BookingPublisher) PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error {
	log := logger.Get()

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.BookingQueueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("rabbitmq queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.BookingQueueName, false, false, pub); err != nil {
		log.Warn().Err(err).Str("action", ev.Action).Msg("rabbitmq publish failed")
		return err
	}
	return nil
}
