package controllers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery-service/apperrors"
	"bakery-service/database"
	"bakery-service/models"
)

// ListNotifications returns the caller's notifications in insert order.
func ListNotifications(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		respondError(c, apperrors.Auth("user not authenticated"))
		return
	}

	rows, err := database.DB.Query(
		"SELECT id, recipient, message, type, created_at FROM notifications WHERE recipient = ? ORDER BY created_at ASC, id ASC",
		email,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			return
		}
	}(rows)

	records := make([]models.NotificationRecord, 0)
	for rows.Next() {
		var record models.NotificationRecord
		if err := rows.Scan(&record.ID, &record.Recipient, &record.Message,
			&record.Type, &record.CreatedAt); err != nil {
			log.Printf("Error scanning notification row: %v", err)
			continue
		}
		records = append(records, record)
	}

	c.JSON(http.StatusOK, records)
}
