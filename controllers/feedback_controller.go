package controllers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bakery-service/apperrors"
	"bakery-service/database"
	"bakery-service/models"
)

type createFeedbackRequest struct {
	Description string `json:"description" binding:"required"`
	Rating      int    `json:"rating" binding:"required"`
	Image       string `json:"image"`
}

func CreateFeedback(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		respondError(c, apperrors.Auth("user not authenticated"))
		return
	}

	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("description and rating are required"))
		return
	}

	record := models.FeedbackRecord{
		Author:      email,
		Description: req.Description,
		Rating:      req.Rating,
		Image:       req.Image,
		CreatedAt:   time.Now(),
	}
	if err := record.Validate(); err != nil {
		respondError(c, err)
		return
	}

	result, err := database.DB.Exec(
		"INSERT INTO feedback (author, description, rating, image, created_at) VALUES (?, ?, ?, ?, ?)",
		record.Author, record.Description, record.Rating, record.Image, record.CreatedAt,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	feedbackID, err := result.LastInsertId()
	if err != nil {
		respondError(c, err)
		return
	}
	record.ID = int(feedbackID)

	c.JSON(http.StatusCreated, gin.H{"feedback": record})

	publishNotification(AdminRecipient, models.NotifyFeedback,
		fmt.Sprintf("New %d-star feedback from %s.", record.Rating, record.Author))
}

// ListFeedback returns all feedback, newest first, for the admin dashboard.
func ListFeedback(c *gin.Context) {
	rows, err := database.DB.Query(
		"SELECT id, author, description, rating, image, created_at FROM feedback ORDER BY created_at DESC",
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

	records := make([]models.FeedbackRecord, 0)
	for rows.Next() {
		var record models.FeedbackRecord
		if err := rows.Scan(&record.ID, &record.Author, &record.Description,
			&record.Rating, &record.Image, &record.CreatedAt); err != nil {
			log.Printf("Error scanning feedback row: %v", err)
			continue
		}
		records = append(records, record)
	}

	c.JSON(http.StatusOK, records)
}
