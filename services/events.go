package services

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const eventsExchange = "farmlink.events"

// EventPublisher pushes domain events (order.created, order.paid,
// order.shipped) onto a topic exchange for downstream consumers. Publishing
// is best effort; a broker outage never fails the request that produced the
// event.
type EventPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewEventPublisher(amqpURL string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(eventsExchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &EventPublisher{conn: conn, channel: channel}, nil
}

// Publish sends payload as JSON under routingKey. Safe to call on a nil
// publisher (broker not configured).
func (p *EventPublisher) Publish(routingKey string, payload interface{}) {
	if p == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to encode event")
		return
	}

	err = p.channel.Publish(eventsExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		log.Warn().Err(err).Str("routing_key", routingKey).Msg("Failed to publish event")
	}
}

func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	p.channel.Close()
	p.conn.Close()
}
