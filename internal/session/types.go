package session

import (
	"time"

	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/search"
)

// User is the signed-in identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SavedConfiguration is a configurator summary stored in the account.
type SavedConfiguration struct {
	ID   string `json:"id"`
	Date string `json:"date"` // YYYY-MM-DD
	configurator.Summary
}

// SavedFilter is a frozen used-car query.
type SavedFilter struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Filters   search.Query `json:"filters"`
	CreatedAt time.Time    `json:"createdAt"`
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
)

// OrderType distinguishes new-car from used-car orders.
type OrderType string

const (
	OrderNew  OrderType = "new"
	OrderUsed OrderType = "used"
)

// Order is a placed vehicle order. Orders are read-only for the user.
type Order struct {
	ID      string      `json:"id"`
	Date    string      `json:"date"`
	Status  OrderStatus `json:"status"`
	Type    OrderType   `json:"type"`
	Vehicle string      `json:"vehicle"`
	Price   int         `json:"price"`
}

// Registration holds the sign-up form.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirmPassword"`
}

// Export is the downloadable copy of everything held for the user.
type Export struct {
	User           *User                `json:"user"`
	Configurations []SavedConfiguration `json:"configurations"`
	Filters        []SavedFilter        `json:"filters"`
	Orders         []Order              `json:"orders"`
	ExportedAt     time.Time            `json:"exportedAt"`
}

// Demo account contents handed out on login.
var (
	demoUser = User{ID: "user-001", Name: "Max Mustermann"}

	demoConfigurations = []SavedConfiguration{
		{
			ID:   "config-001",
			Date: "2024-01-15",
			Summary: configurator.Summary{
				Model:       "APEX SUV",
				Trim:        "Luxury",
				Powertrain:  "Hybrid",
				Exterior:    "Racing Red",
				Accessories: []string{"Tow Bar Package", "Winter Package"},
				TotalPrice:  78990,
			},
		},
	}

	demoOrders = []Order{
		{
			ID:      "order-001",
			Date:    "2024-01-10",
			Status:  OrderProcessing,
			Type:    OrderNew,
			Vehicle: "APEX SUV - Luxury Hybrid",
			Price:   78990,
		},
	}
)
