package consumers

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"bakery-service/config"
	"bakery-service/database"
	"bakery-service/models"
)

// StartNotificationConsumer drains the notification queue into the
// append-only notifications table.
func StartNotificationConsumer(ch *amqp.Channel, cfg *config.Config) {
	msgs, err := ch.Consume(
		cfg.NotifyQueue,
		"bakery-service", // consumer tag
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to register notification consumer: %v", err)
	}

	go func() {
		for msg := range msgs {
			processNotificationMessage(msg)
		}
	}()

	// 消费死信队列
	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"bakery-service-dlq", // consumer tag
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumer: %v", err)
		return
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func processNotificationMessage(msg amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in notification processing: %v", r)
		}
	}()

	var event models.NotificationEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid notification message: %s", msg.Body)
		err := msg.Nack(false, false)
		if err != nil {
			return
		} // 拒绝消息，不重新入队
		return
	}

	if event.Recipient == "" || event.Message == "" {
		log.Printf("Notification missing recipient or message: %s", msg.Body)
		err := msg.Nack(false, false)
		if err != nil {
			return
		}
		return
	}

	// Insert time, not publish time: keeps timestamps in the log
	// non-decreasing in insert order.
	_, err := database.DB.Exec(
		"INSERT INTO notifications (recipient, message, type, created_at) VALUES (?, ?, ?, NOW(6))",
		event.Recipient, event.Message, event.Type,
	)
	if err != nil {
		log.Printf("Failed to store notification for %s: %v", event.Recipient, err)
		err := msg.Nack(false, false)
		if err != nil {
			return
		}
		return
	}

	log.Printf("Stored notification: recipient=%s type=%s", event.Recipient, event.Type)

	err = msg.Ack(false)
	if err != nil {
		return
	}
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	// 实际处理：记录到数据库、通知管理员等
	err := msg.Ack(false)
	if err != nil {
		return
	}
}
