package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"bakery-service/apperrors"
	"bakery-service/rabbitmq"
)

var rabbitMQ *rabbitmq.RabbitMQ

func SetRabbitMQ(rmq *rabbitmq.RabbitMQ) {
	rabbitMQ = rmq
}

// AdminRecipient receives restock alerts and feedback notifications.
const AdminRecipient = "admin"

// respondError maps the error taxonomy to HTTP statuses. Unexpected
// failures are logged server-side and returned as a generic message.
func respondError(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func publishNotification(recipient, notifyType, message string) {
	if rabbitMQ == nil {
		return
	}
	if err := rabbitMQ.PublishNotification(recipient, notifyType, message); err != nil {
		log.Printf("Failed to publish %s notification: %v", notifyType, err)
	}
}

// isDuplicateKey reports a MySQL unique constraint violation (error 1062).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// currentEmail returns the identity set by the auth middleware.
func currentEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get("email")
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
