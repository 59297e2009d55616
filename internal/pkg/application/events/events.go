package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const exchangeName = "bootcamp-mgmt"

// Routing keys published on the topic exchange.
const (
	BootcampCreated = "bootcamp.created"
	BootcampUpdated = "bootcamp.updated"
	BootcampDeleted = "bootcamp.deleted"
	CourseCreated   = "course.created"
	CourseUpdated   = "course.updated"
	CourseDeleted   = "course.deleted"
)

//go:generate moq -rm -out events_mock.go . Publisher
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
	Close()
}

type publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func New(ctx context.Context, uri string) (Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &publisher{conn: conn, channel: channel}, nil
}

func (p *publisher) Publish(ctx context.Context, routingKey string, body any) error {
	log := zerolog.Ctx(ctx)

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        b,
	})
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("failed to publish event")
		return err
	}

	return nil
}

func (p *publisher) Close() {
	p.channel.Close()
	p.conn.Close()
}
