package amqp

import (
	"context"
	"encoding/json"
	"time"

	"discord-backend/internal/observability"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher publishes audit events.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// NewPublisher builds a RabbitMQ publisher or a noop publisher when AMQP is disabled or unreachable.
func NewPublisher(amqpURL, exchange string, logger *zap.Logger) Publisher {
	log := logger.Sugar()
	if amqpURL == "" {
		log.Infow("RabbitMQ disabled, using noop publisher", "reason", "empty amqp url")
		return &noopPublisher{reason: "empty amqp url", logger: log}
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		log.Warnw("RabbitMQ disabled, using noop publisher", "error", err)
		return &noopPublisher{reason: err.Error(), logger: log}
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Warnw("RabbitMQ disabled, using noop publisher", "error", err)
		_ = conn.Close()
		return &noopPublisher{reason: err.Error(), logger: log}
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		log.Warnw("RabbitMQ disabled, using noop publisher", "error", err)
		_ = ch.Close()
		_ = conn.Close()
		return &noopPublisher{reason: err.Error(), logger: log}
	}

	log.Infow("RabbitMQ connected", "exchange", exchange)
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange, logger: log}
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *zap.SugaredLogger
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		observability.IncAMQPPublishError()
		p.logger.Warnw("RabbitMQ publish failed", "routing_key", routingKey, "error", err)
	}
	return err
}

func (p *amqpPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct {
	reason string
	logger *zap.SugaredLogger
}

func (p *noopPublisher) Publish(_ context.Context, routingKey string, event any) error {
	if envelope, ok := event.(AuditEnvelope); ok {
		p.logger.Debugw("RabbitMQ noop publish", "routing_key", routingKey, "action", envelope.Action, "profile_id", envelope.ProfileID)
		return nil
	}
	p.logger.Debugw("RabbitMQ noop publish", "routing_key", routingKey)
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherMode reports the publisher mode for logging.
func PublisherMode(p Publisher) string {
	switch p.(type) {
	case *amqpPublisher:
		return "amqp"
	case *noopPublisher:
		return "noop"
	default:
		return "unknown"
	}
}
