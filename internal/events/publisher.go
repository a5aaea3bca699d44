package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

// Channel 是 *amqp.Channel 中发布消息需要用到的部分
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	channel        Channel
	topic          string
	publishTimeout time.Duration
}

// NewPublisher 会声明一个以 topic 命名的持久化 topic 交换机
func NewPublisher(ch Channel, topic string, publishTimeout time.Duration) (*Publisher, error) {
	if err := ch.ExchangeDeclare(
		topic,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, err
	}

	return &Publisher{
		channel:        ch,
		topic:          topic,
		publishTimeout: publishTimeout,
	}, nil
}

// RoutingKey 形如 employee.created
func RoutingKey(eventType domain.EventType) string {
	return "employee." + strings.ToLower(string(eventType))
}

func (p *Publisher) Publish(ctx context.Context, eventType domain.EventType, view domain.EmployeeView) error {
	body, err := json.Marshal(domain.EmployeeEvent{
		EventType:    eventType,
		EmployeeData: view,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		p.topic,
		RoutingKey(eventType),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}
