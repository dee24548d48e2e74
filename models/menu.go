package models

import "time"

// LowStockThreshold is a reporting signal only; it never blocks an order.
const LowStockThreshold = 10

// MenuItem is a row from menu_items. Invariant maintained by the inventory
// code: IsAvailable == (StockQuantity > 0) after every decrement or restore,
// and StockQuantity never goes below zero.
type MenuItem struct {
	ID               int64     `json:"item_id"`
	Name             string    `json:"item_name"`
	Categories       []string  `json:"category"`
	PricePerPlate    float64   `json:"price_per_plate"`
	IsVegetarian     bool      `json:"is_vegetarian"`
	ImageURL         string    `json:"image_url"`
	Description      string    `json:"description"`
	IsAvailable      bool      `json:"is_available"`
	StockQuantity    int       `json:"stock_quantity"`
	TotalOrdersCount int       `json:"total_orders_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type MenuItemInput struct {
	Name          string   `json:"item_name" binding:"required"`
	Categories    []string `json:"category"`
	Price         float64  `json:"price"`
	IsVegetarian  *bool    `json:"veg"`
	ImageURL      string   `json:"image"`
	Description   string   `json:"description"`
	IsAvailable   *bool    `json:"is_available"`
	StockQuantity *int     `json:"stock_quantity"`
}
