package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bakery-service/apperrors"
	"bakery-service/config"
	"bakery-service/database"
	"bakery-service/middlewares"
	"bakery-service/models"
)

type inventoryItem struct {
	models.CatalogItem
	LowStock bool `json:"low_stock"`
}

// ListInventory returns every catalog item with its derived status and a
// low-stock flag for UI highlighting.
func ListInventory(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordInventoryOperation("list", status)
	}()

	rows, err := database.DB.Query(
		"SELECT id, name, image, price, stock_level, created_at, updated_at FROM catalog_items ORDER BY name ASC",
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

	cfg := config.LoadConfig()
	items := make([]inventoryItem, 0)
	lowCount := 0
	for rows.Next() {
		var item models.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Image, &item.Price,
			&item.StockLevel, &item.CreatedAt, &item.UpdatedAt); err != nil {
			log.Printf("Error scanning catalog item: %v", err)
			continue
		}
		item.Status = models.StatusForStock(item.StockLevel)
		low := models.IsLowStock(item.StockLevel, cfg.LowStockThreshold)
		if low {
			lowCount++
		}
		items = append(items, inventoryItem{CatalogItem: item, LowStock: low})
	}

	middlewares.SetLowStockItems(lowCount)

	c.JSON(http.StatusOK, gin.H{"items": items, "low_stock_threshold": cfg.LowStockThreshold})
}

type createItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Image      string  `json:"image"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	StockLevel int     `json:"stock_level" binding:"gte=0"`
}

func CreateItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordInventoryOperation("create", status)
	}()

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("name and a positive price are required"))
		return
	}

	var existingID int
	err := database.DB.QueryRow("SELECT id FROM catalog_items WHERE name = ?", req.Name).Scan(&existingID)
	if err == nil {
		respondError(c, apperrors.Conflict("catalog item already exists"))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		respondError(c, err)
		return
	}

	now := time.Now()
	result, err := database.DB.Exec(
		"INSERT INTO catalog_items (name, image, price, stock_level, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		req.Name, req.Image, req.Price, req.StockLevel, now, now,
	)
	if err != nil {
		if isDuplicateKey(err) {
			respondError(c, apperrors.Conflict("catalog item already exists"))
			return
		}
		respondError(c, err)
		return
	}

	itemID, err := result.LastInsertId()
	if err != nil {
		respondError(c, err)
		return
	}

	item := models.CatalogItem{
		ID:         int(itemID),
		Name:       req.Name,
		Image:      req.Image,
		Price:      req.Price,
		StockLevel: req.StockLevel,
		Status:     models.StatusForStock(req.StockLevel),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

type updateItemRequest struct {
	Image      *string  `json:"image"`
	Price      *float64 `json:"price"`
	StockLevel *int     `json:"stock_level"`
}

// UpdateItem applies stock or price changes. Dropping below the low-stock
// threshold raises a restock alert for the admin.
func UpdateItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordInventoryOperation("update", status)
	}()

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid item ID"))
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("invalid update payload"))
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		respondError(c, apperrors.Validation("price must be positive"))
		return
	}
	if req.StockLevel != nil && *req.StockLevel < 0 {
		respondError(c, apperrors.Validation("stock level cannot be negative"))
		return
	}

	var item models.CatalogItem
	err = database.DB.QueryRow(
		"SELECT id, name, image, price, stock_level FROM catalog_items WHERE id = ?", itemID,
	).Scan(&item.ID, &item.Name, &item.Image, &item.Price, &item.StockLevel)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, apperrors.NotFound("catalog item %d not found", itemID))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	previousStock := item.StockLevel
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.StockLevel != nil {
		item.StockLevel = *req.StockLevel
	}

	item.UpdatedAt = time.Now()
	_, err = database.DB.Exec(
		"UPDATE catalog_items SET image = ?, price = ?, stock_level = ?, updated_at = ? WHERE id = ?",
		item.Image, item.Price, item.StockLevel, item.UpdatedAt, item.ID,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	item.Status = models.StatusForStock(item.StockLevel)
	c.JSON(http.StatusOK, gin.H{"item": item})

	cfg := config.LoadConfig()
	crossedBelow := !models.IsLowStock(previousStock, cfg.LowStockThreshold) &&
		models.IsLowStock(item.StockLevel, cfg.LowStockThreshold)
	if crossedBelow {
		publishNotification(AdminRecipient, models.NotifyRestock,
			fmt.Sprintf("%s is low on stock: %d left.", item.Name, item.StockLevel))
	}
}

func DeleteItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordInventoryOperation("delete", status)
	}()

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid item ID"))
		return
	}

	result, err := database.DB.Exec("DELETE FROM catalog_items WHERE id = ?", itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		respondError(c, apperrors.NotFound("catalog item %d not found", itemID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted", "item_id": itemID})
}
