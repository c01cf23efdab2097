package app

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/configs"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/queue"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/usecase"
)

// openCartEvents dials RabbitMQ and returns a subscriber publishing every
// cart change. It returns a nil subscriber when publishing is disabled.
func openCartEvents(cfg configs.Config) (cart.Subscriber, func(), error) {
	if !cfg.Rabbit.Enabled {
		return nil, func() {}, nil
	}

	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	producer, err := queue.NewRabbitProducer(ch, queue.Topology{
		Exchange:   cfg.Rabbit.Exchange,
		RoutingKey: cfg.Rabbit.RoutingKey,
		Queue:      cfg.Rabbit.Queue,
	})
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return usecase.NewCartEvents(producer, cfg.Rabbit.Timeout).Subscriber(), closeAll, nil
}
