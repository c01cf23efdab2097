package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the producer needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Topology struct {
	Exchange   string
	RoutingKey string
	Queue      string // optional; when set it is declared and bound
}

// RabbitProducer implements usecase.CartEventPublisher
type RabbitProducer struct {
	ch   Channel
	topo Topology
}

// NewRabbitProducer sets up the exchange (and optional queue) once at startup.
func NewRabbitProducer(ch Channel, topo Topology) (*RabbitProducer, error) {
	// 1. declare exchange (topic type, durable)
	if err := ch.ExchangeDeclare(
		topo.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if topo.Queue != "" {
		// 2. declare queue
		q, err := ch.QueueDeclare(
			topo.Queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("declare queue: %w", err)
		}

		// 3. bind queue → exchange
		if err := ch.QueueBind(q.Name, topo.RoutingKey, topo.Exchange, false, nil); err != nil {
			return nil, fmt.Errorf("queue bind: %w", err)
		}
	}

	return &RabbitProducer{ch: ch, topo: topo}, nil
}

// PublishCartChanged sends a cart change event to the exchange.
func (p *RabbitProducer) PublishCartChanged(ctx context.Context, msg usecase.CartChangedMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient, // snapshots are superseded by the next change
		Timestamp:    msg.At,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(
		ctx,
		p.topo.Exchange,
		p.topo.RoutingKey,
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

var _ usecase.CartEventPublisher = (*RabbitProducer)(nil)
var _ Channel = (*amqp.Channel)(nil)
