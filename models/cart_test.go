package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-service/apperrors"
)

func TestLineItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    LineItem
		wantErr bool
	}{
		{"valid catalog line", CatalogLine("Croissant", 2, 3.5), false},
		{"valid cake line", CakeLine(&CakeSpec{BaseType: "Vanilla", Price: 25}), false},
		{"catalog line without name", LineItem{Type: LineCatalog, Quantity: 1}, true},
		{"catalog line zero quantity", LineItem{Type: LineCatalog, Name: "Croissant", Quantity: 0}, true},
		{"catalog line negative quantity", LineItem{Type: LineCatalog, Name: "Croissant", Quantity: -3}, true},
		{"catalog line carrying cake", LineItem{Type: LineCatalog, Name: "x", Quantity: 1, Cake: &CakeSpec{}}, true},
		{"cake line without spec", LineItem{Type: LineCake}, true},
		{"unknown tag", LineItem{Type: "voucher"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 400, apperrors.Status(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCartTotal(t *testing.T) {
	cart := EmptyCart("jane@example.com")
	cart.Append(CatalogLine("Croissant", 3, 3.5))
	cart.Append(CakeLine(&CakeSpec{Price: 45}))
	assert.Equal(t, 55.5, cart.Total())
}

func TestCartItemsRoundTrip(t *testing.T) {
	spec := CakeSpec{
		ID:           "c0ffee",
		EventNature:  "Wedding",
		BaseType:     "Red Velvet",
		Size:         "Large",
		Colors:       []string{"Ivory", "Gold"},
		PickupOption: "Delivery",
		Topping:      "Fresh flowers",
		Writing:      "Forever",
		DesignSource: "ai-placeholder",
		Notes:        "two tiers",
		RequiredDate: "2030-09-12",
		Price:        68,
		PriceNote:    "includes 5.00 delivery charge",
	}
	items := []LineItem{
		CatalogLine("Chocolate Cake", 2, 18.0),
		CakeLine(&spec),
	}

	raw, err := EncodeCartItems(items)
	require.NoError(t, err)

	decoded, err := DecodeCartItems(raw)
	require.NoError(t, err)

	// no field loss through the document column
	assert.Equal(t, items, decoded)
}

func TestDecodeCartItemsEmpty(t *testing.T) {
	items, err := DecodeCartItems(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
