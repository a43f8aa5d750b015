package models

import (
	"encoding/json"
	"time"

	"bakery-service/apperrors"
)

// LineItemType tags the two kinds of cart entries.
type LineItemType string

const (
	LineCatalog LineItemType = "catalog"
	LineCake    LineItemType = "cake"
)

// LineItem is a tagged union: either a catalog item reference with a
// quantity, or a full custom cake specification. Exactly one side is set,
// according to Type.
type LineItem struct {
	Type      LineItemType `json:"type"`
	Name      string       `json:"name,omitempty"`
	Quantity  int          `json:"quantity,omitempty"`
	UnitPrice float64      `json:"unit_price,omitempty"`
	Cake      *CakeSpec    `json:"cake,omitempty"`
}

func CatalogLine(name string, quantity int, unitPrice float64) LineItem {
	return LineItem{Type: LineCatalog, Name: name, Quantity: quantity, UnitPrice: unitPrice}
}

func CakeLine(spec *CakeSpec) LineItem {
	return LineItem{Type: LineCake, Cake: spec, Quantity: 1, UnitPrice: spec.Price}
}

// Validate checks the union exhaustively by tag.
func (li LineItem) Validate() error {
	switch li.Type {
	case LineCatalog:
		if li.Name == "" {
			return apperrors.Validation("catalog line requires an item name")
		}
		if li.Quantity < 1 {
			return apperrors.Validation("quantity must be at least 1")
		}
		if li.Cake != nil {
			return apperrors.Validation("catalog line cannot carry a cake spec")
		}
	case LineCake:
		if li.Cake == nil {
			return apperrors.Validation("cake line requires a cake spec")
		}
	default:
		return apperrors.Validation("unknown line item type %q", li.Type)
	}
	return nil
}

func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Cart is one customer's open order, stored as a single document row.
type Cart struct {
	Email     string     `json:"email"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func EmptyCart(email string) Cart {
	return Cart{Email: email, Items: []LineItem{}}
}

func (c *Cart) Append(item LineItem) {
	c.Items = append(c.Items, item)
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// EncodeCartItems / DecodeCartItems (de)serialize the JSON items column.

func EncodeCartItems(items []LineItem) ([]byte, error) {
	return json.Marshal(items)
}

func DecodeCartItems(raw []byte) ([]LineItem, error) {
	if len(raw) == 0 {
		return []LineItem{}, nil
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
