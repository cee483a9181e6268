package dal

import (
	"log"

	"github.com/streadway/amqp"

	"mall-commission-api/internal/config"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("commission_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("commission_notify", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare commission_notify failed: %v", err)
	}
	if err := ch.QueueBind("commission_notify", "commission.state_changed", "commission_events", false, nil); err != nil {
		log.Fatalf("queue bind commission.state_changed failed: %v", err)
	}
	if err := ch.QueueBind("commission_notify", "settlement.completed", "commission_events", false, nil); err != nil {
		log.Fatalf("queue bind settlement.completed failed: %v", err)
	}
	if err := ch.QueueBind("commission_notify", "settlement.failed", "commission_events", false, nil); err != nil {
		log.Fatalf("queue bind settlement.failed failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
