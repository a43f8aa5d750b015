package models

import (
	"time"
)

type ItemStatus string

const (
	StatusInStock    ItemStatus = "in-stock"
	StatusOutOfStock ItemStatus = "out-of-stock"
)

type CatalogItem struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Image      string     `json:"image"`
	Price      float64    `json:"price"`
	StockLevel int        `json:"stock_level"`
	Status     ItemStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// StatusForStock derives availability from the stock count; status is never
// stored so it cannot drift from the stock level.
func StatusForStock(stock int) ItemStatus {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

// IsLowStock reports whether an item needs restocking attention.
// Stock exactly at the threshold is not low.
func IsLowStock(stockLevel, threshold int) bool {
	return stockLevel < threshold
}
