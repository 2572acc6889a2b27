package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends booking events to RabbitMQ. Publishing is best-effort:
// failures are logged and never propagate into the request that triggered
// the event. A nil Publisher (broker not configured) drops events silently.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		log.Warn("Message broker URL not configured, booking events disabled")
		return nil
	}
	return &Publisher{
		url: url,
		log: log.With(zap.String("component", "queue_publisher")),
	}
}

// Publish declares the durable queue and sends one persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, queueName string, event BookingEvent) {
	if p == nil {
		return
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("Broker dial failed", zap.Error(err), zap.String("queue", queueName))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("Broker channel open failed", zap.Error(err), zap.String("queue", queueName))
		return
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Error("Queue declare failed", zap.Error(err), zap.String("queue", queueName))
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Event marshal failed", zap.Error(err), zap.String("queue", queueName))
		return
	}

	err = ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("Event publish failed", zap.Error(err), zap.String("queue", queueName))
		return
	}

	p.log.Debug("Event published",
		zap.String("queue", queueName),
		zap.String("booking_id", event.BookingID),
	)
}
