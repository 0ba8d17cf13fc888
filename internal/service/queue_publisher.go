package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/NafiGit/omnify/internal/queue"
)

// AMQPPublisher publishes booking events to RabbitMQ.  Each publish
// dials a fresh connection so a dead broker can never poison long-lived
// state; bookings are low-volume enough that this costs nothing
// noticeable.  Errors are logged and returned so callers can ignore
// them without interrupting the booking flow.
type AMQPPublisher struct{}

// PublishBookingCreated publishes a BookingCreatedEvent to the durable
// "booking.created" queue.  Messages are marked persistent.
func (AMQPPublisher) PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare("booking.created", true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", "booking.created", false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
