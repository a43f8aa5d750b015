package database

import (
	"database/sql"
	"fmt"
	"time"

	"bakery-service/config"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

func InitDB() error {
	cfg := config.LoadConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return err
	}

	DB = db
	return ensureSchema()
}

func CloseDB() {
	if DB != nil {
		err := DB.Close()
		if err != nil {
			return
		}
	}
}

func ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone VARCHAR(32),
			image VARCHAR(255),
			password_hash VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			image VARCHAR(255),
			price DECIMAL(10,2) NOT NULL,
			stock_level INT NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			email VARCHAR(255) PRIMARY KEY,
			items JSON NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id INT AUTO_INCREMENT PRIMARY KEY,
			recipient VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			type VARCHAR(32) NOT NULL,
			created_at DATETIME(6) NOT NULL,
			INDEX idx_notifications_recipient (recipient)
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id INT AUTO_INCREMENT PRIMARY KEY,
			author VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			rating INT NOT NULL,
			image VARCHAR(255),
			created_at DATETIME NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
