package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bakery-service/apperrors"
	"bakery-service/config"
	"bakery-service/database"
	"bakery-service/middlewares"
	"bakery-service/models"
	"bakery-service/utils"
)

// RegisterUser handles the multipart registration form: profile fields plus
// an optional profile image.
func RegisterUser(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAuthOperation("register", status)
	}()

	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(strings.ToLower(c.PostForm("email")))
	phone := strings.TrimSpace(c.PostForm("phone"))
	password := c.PostForm("password")

	if name == "" || email == "" || password == "" {
		respondError(c, apperrors.Validation("name, email and password are required"))
		return
	}
	if !strings.Contains(email, "@") {
		respondError(c, apperrors.Validation("invalid email address"))
		return
	}

	// 检查邮箱是否已注册
	var existingID int
	err := database.DB.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		respondError(c, apperrors.Conflict("email already registered"))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		respondError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err = saveUpload(c, file)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	user := models.UserAccount{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Image:        imagePath,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	result, err := database.DB.Exec(
		"INSERT INTO users (name, email, phone, image, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.Name, user.Email, user.Phone, user.Image, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		// the precheck races with concurrent registrations; the unique
		// index on email is the authority
		if isDuplicateKey(err) {
			respondError(c, apperrors.Conflict("email already registered"))
			return
		}
		respondError(c, err)
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		respondError(c, err)
		return
	}
	user.ID = int(userID)

	c.JSON(http.StatusCreated, gin.H{"user": user})

	publishNotification(user.Email, models.NotifyAccount, "Welcome to the bakery! Your account is ready.")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func LoginUser(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAuthOperation("login", status)
	}()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("email and password are required"))
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	var user models.UserAccount
	err := database.DB.QueryRow(
		"SELECT id, name, email, phone, image, password_hash, created_at FROM users WHERE email = ?",
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Image, &user.PasswordHash, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, apperrors.Auth("invalid email or password"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, apperrors.Auth("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// saveUpload stores an uploaded file under the configured upload directory
// with a random name, returning the public path.
func saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	cfg := config.LoadConfig()
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(cfg.UploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/%s", name), nil
}
