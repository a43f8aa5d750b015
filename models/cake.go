package models

import (
	"fmt"
	"time"
)

// 自定义蛋糕规格的枚举值
var (
	CakeBaseTypes     = []string{"Vanilla", "Chocolate", "Red Velvet", "Marble"}
	CakeSizes         = []string{"Small", "Medium", "Large"}
	PickupOptions     = []string{"Self Pickup", "Delivery"}
	CakeDesignSources = []string{"upload", "ai-placeholder"}
)

const MaxCakeColors = 3

var cakeSizePrices = map[string]float64{
	"Small":  25.0,
	"Medium": 40.0,
	"Large":  60.0,
}

const toppingCharge = 3.0

type CakeSpec struct {
	ID           string   `json:"id"`
	EventNature  string   `json:"event_nature"`
	BaseType     string   `json:"base_type"`
	Size         string   `json:"size"`
	Colors       []string `json:"colors"`
	PickupOption string   `json:"pickup_option"`
	Topping      string   `json:"topping,omitempty"`
	Writing      string   `json:"writing,omitempty"`
	DesignSource string   `json:"design_source"`
	DesignRef    string   `json:"design_ref,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	RequiredDate string   `json:"required_date"` // YYYY-MM-DD
	Price        float64  `json:"price"`
	PriceNote    string   `json:"price_note,omitempty"`
}

// ValidateForm collects every problem with the submitted cake order so the
// client can show them all at once instead of one per round trip.
func (s *CakeSpec) ValidateForm(today time.Time) []string {
	var failures []string

	if s.EventNature == "" {
		failures = append(failures, "event nature required")
	}
	if !oneOf(s.BaseType, CakeBaseTypes) {
		failures = append(failures, fmt.Sprintf("base type must be one of %v", CakeBaseTypes))
	}
	if !oneOf(s.Size, CakeSizes) {
		failures = append(failures, fmt.Sprintf("size must be one of %v", CakeSizes))
	}
	if len(s.Colors) > MaxCakeColors {
		failures = append(failures, fmt.Sprintf("at most %d base colors", MaxCakeColors))
	}
	if !oneOf(s.PickupOption, PickupOptions) {
		failures = append(failures, fmt.Sprintf("pickup option must be one of %v", PickupOptions))
	}
	if !oneOf(s.DesignSource, CakeDesignSources) {
		failures = append(failures, fmt.Sprintf("design source must be one of %v", CakeDesignSources))
	}

	if s.RequiredDate == "" {
		failures = append(failures, "date required")
	} else if date, err := time.Parse(DateLayout, s.RequiredDate); err != nil {
		failures = append(failures, "date must be in YYYY-MM-DD format")
	} else if !IsSelectable(date, today) {
		failures = append(failures, "date in past")
	}

	return failures
}

// ComputePrice prices the cake from its size and extras. The note calls out
// the delivery surcharge when the customer chose delivery.
func (s *CakeSpec) ComputePrice(deliveryCharge float64) (float64, string) {
	price := cakeSizePrices[s.Size]
	if s.Topping != "" {
		price += toppingCharge
	}
	if s.PickupOption == "Delivery" {
		price += deliveryCharge
		return price, fmt.Sprintf("includes %.2f delivery charge", deliveryCharge)
	}
	return price, ""
}

func oneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if value == v {
			return true
		}
	}
	return false
}
