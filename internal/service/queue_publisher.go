// Package service publishes domain events to RabbitMQ. Errors are logged and
// returned so callers can ignore failures without interrupting the request
// flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/leetcode-tracker/internal/queue"
)

// Publisher sends problem events to a durable queue on the default exchange.
type Publisher struct {
	url   string
	queue string
	log   zerolog.Logger
}

func NewPublisher(url, queueName string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, queue: queueName, log: log}
}

// Publish delivers ev as a persistent JSON message. Each call dials its own
// connection; problem writes are infrequent.
func (p *Publisher) Publish(ctx context.Context, ev queue.ProblemEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.Warn().Err(err).Str("event_id", ev.ID).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
