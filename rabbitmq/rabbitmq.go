package rabbitmq

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"bakery-service/config"
	"bakery-service/models"
)

type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Cfg     *config.Config
}

func NewRabbitMQ(cfg *config.Config) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		err := conn.Close()
		if err != nil {
			return nil, err
		}
		return nil, err
	}

	return &RabbitMQ{
		Conn:    conn,
		Channel: ch,
		Cfg:     cfg,
	}, nil
}

func (r *RabbitMQ) SetupQueues() error {
	// 声明死信交换机和队列
	if err := r.Channel.ExchangeDeclare(
		r.Cfg.DeadLetterQueue+"_exchange",
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	_, err := r.Channel.QueueDeclare(
		r.Cfg.DeadLetterQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-queue-type": "classic",
		},
	)
	if err != nil {
		return err
	}

	if err := r.Channel.QueueBind(
		r.Cfg.DeadLetterQueue,
		"",
		r.Cfg.DeadLetterQueue+"_exchange",
		false,
		nil,
	); err != nil {
		return err
	}

	// 声明通知交换机
	if err := r.Channel.ExchangeDeclare(
		r.Cfg.NotifyExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	// 声明通知队列（带死信）
	_, err = r.Channel.QueueDeclare(
		r.Cfg.NotifyQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    r.Cfg.DeadLetterQueue + "_exchange",
			"x-dead-letter-routing-key": r.Cfg.DeadLetterQueue,
		},
	)
	if err != nil {
		return err
	}

	if err := r.Channel.QueueBind(
		r.Cfg.NotifyQueue,
		"",
		r.Cfg.NotifyExchange,
		false,
		nil,
	); err != nil {
		return err
	}

	return nil
}

// PublishNotification sends a user-visible message onto the notification
// queue. The consumer appends it to the notification log table.
func (r *RabbitMQ) PublishNotification(recipient, notifyType, message string) error {
	event := models.NotificationEvent{
		Recipient: recipient,
		Message:   message,
		Type:      notifyType,
		Occurred:  time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
	}

	return r.Channel.Publish(
		r.Cfg.NotifyExchange,
		"",
		false, // mandatory
		false, // immediate
		msg,
	)
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		err := r.Channel.Close()
		if err != nil {
			return
		}
	}
	if r.Conn != nil {
		err := r.Conn.Close()
		if err != nil {
			return
		}
	}
}
