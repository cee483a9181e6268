package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"mall-commission-api/internal/dal"
)

// AmqpPublisher event.Publisher 的 RabbitMQ 实现
type AmqpPublisher struct{}

func NewAmqpPublisher() *AmqpPublisher { return &AmqpPublisher{} }

func (p *AmqpPublisher) Publish(routingKey string, msg any) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(msg)
	err := dal.RabbitCh.Publish(
		"commission_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}
