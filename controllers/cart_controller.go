package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bakery-service/apperrors"
	"bakery-service/config"
	"bakery-service/database"
	"bakery-service/middlewares"
	"bakery-service/models"
)

// GetCart returns the caller's cart, or an empty cart if none exists yet.
// Identity always comes from the bearer token; a legacy ?email= query
// parameter is accepted but ignored.
func GetCart(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("get", status)
	}()

	email, ok := currentEmail(c)
	if !ok {
		respondError(c, apperrors.Auth("user not authenticated"))
		return
	}

	cart, err := loadCart(email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

type addItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity *int   `json:"quantity"`
}

// AddCartItem appends a catalog item line to the caller's cart. Quantity
// defaults to 1 when omitted; zero or negative is rejected.
func AddCartItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("add_item", status)
	}()

	email, ok := currentEmail(c)
	if !ok {
		respondError(c, apperrors.Auth("user not authenticated"))
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("item name is required"))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		respondError(c, apperrors.Validation("quantity must be at least 1"))
		return
	}

	// 解析商品名称
	var name string
	var price float64
	err := database.DB.QueryRow(
		"SELECT name, price FROM catalog_items WHERE name = ?", req.Name,
	).Scan(&name, &price)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, apperrors.NotFound("catalog item %q not found", req.Name))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	line := models.CatalogLine(name, quantity, price)
	if err := line.Validate(); err != nil {
		respondError(c, err)
		return
	}

	cart, err := appendToCart(email, line)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

type addCakeRequest struct {
	EventNature  string   `json:"event_nature"`
	BaseType     string   `json:"base_type"`
	Size         string   `json:"size"`
	Colors       []string `json:"colors"`
	PickupOption string   `json:"pickup_option"`
	Topping      string   `json:"topping"`
	Writing      string   `json:"writing"`
	DesignSource string   `json:"design_source"`
	DesignRef    string   `json:"design_ref"`
	Notes        string   `json:"notes"`
	RequiredDate string   `json:"required_date"`
}

// AddCakeToCart validates the custom cake order form, prices it and appends
// it to the caller's cart. All form failures are returned together.
func AddCakeToCart(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("add_cake", status)
	}()

	email, ok := currentEmail(c)
	if !ok {
		respondError(c, apperrors.Auth("user not authenticated"))
		return
	}

	var req addCakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("invalid cake order payload"))
		return
	}

	spec := models.CakeSpec{
		EventNature:  req.EventNature,
		BaseType:     req.BaseType,
		Size:         req.Size,
		Colors:       req.Colors,
		PickupOption: req.PickupOption,
		Topping:      req.Topping,
		Writing:      req.Writing,
		DesignSource: req.DesignSource,
		DesignRef:    req.DesignRef,
		Notes:        req.Notes,
		RequiredDate: req.RequiredDate,
	}

	if failures := spec.ValidateForm(time.Now()); len(failures) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cake order", "failures": failures})
		return
	}

	cfg := config.LoadConfig()
	spec.ID = uuid.NewString()
	spec.Price, spec.PriceNote = spec.ComputePrice(cfg.DeliveryCharge)

	cart, err := appendToCart(email, models.CakeLine(&spec))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cart": cart, "total": cart.Total()})

	publishNotification(email, models.NotifyOrder,
		fmt.Sprintf("Your custom %s cake for %s was added to your cart.", spec.BaseType, spec.RequiredDate))
}

// RemoveCartItem removes a single line by its position in the cart.
func RemoveCartItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("remove_item", status)
	}()

	email, ok := currentEmail(c)
	if !ok {
		respondError(c, apperrors.Auth("user not authenticated"))
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid line item index"))
		return
	}

	cart, err := loadCart(email)
	if err != nil {
		respondError(c, err)
		return
	}

	if index < 0 || index >= len(cart.Items) {
		respondError(c, apperrors.NotFound("no line item at index %d", index))
		return
	}

	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	if err := saveCart(&cart); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

// CheckoutCart empties the cart and confirms the order to the customer.
func CheckoutCart(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("checkout", status)
	}()

	email, ok := currentEmail(c)
	if !ok {
		respondError(c, apperrors.Auth("user not authenticated"))
		return
	}

	cart, err := loadCart(email)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(cart.Items) == 0 {
		respondError(c, apperrors.Validation("cart is empty"))
		return
	}

	total := cart.Total()
	if _, err := database.DB.Exec("DELETE FROM carts WHERE email = ?", email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order placed", "total": total})

	publishNotification(email, models.NotifyOrder,
		fmt.Sprintf("Order received! %d item(s), total %.2f.", len(cart.Items), total))
}

// loadCart reads the single cart row for a customer. A missing row is an
// empty cart, not an error.
func loadCart(email string) (models.Cart, error) {
	var raw []byte
	var updatedAt time.Time
	err := database.DB.QueryRow(
		"SELECT items, updated_at FROM carts WHERE email = ?", email,
	).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EmptyCart(email), nil
	}
	if err != nil {
		return models.Cart{}, err
	}

	items, err := models.DecodeCartItems(raw)
	if err != nil {
		return models.Cart{}, err
	}

	return models.Cart{Email: email, Items: items, UpdatedAt: updatedAt}, nil
}

// saveCart upserts the whole cart document. Concurrent writers race on the
// single row; last write wins.
func saveCart(cart *models.Cart) error {
	raw, err := models.EncodeCartItems(cart.Items)
	if err != nil {
		return err
	}

	cart.UpdatedAt = time.Now()
	_, err = database.DB.Exec(
		"INSERT INTO carts (email, items, updated_at) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE items = VALUES(items), updated_at = VALUES(updated_at)",
		cart.Email, raw, cart.UpdatedAt,
	)
	return err
}

func appendToCart(email string, line models.LineItem) (models.Cart, error) {
	cart, err := loadCart(email)
	if err != nil {
		return models.Cart{}, err
	}

	cart.Append(line)
	if err := saveCart(&cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}
