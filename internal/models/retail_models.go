package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Retailer is the seller entity whose inventory and sales are tracked.
type Retailer struct {
	ID     string `json:"_id" validate:"required"`
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

// Product is a catalog entry; Name is the fuzzy-match target.
type Product struct {
	ID    string           `json:"_id" validate:"required"`
	Name  string           `json:"name" validate:"required"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// Batch is a discrete lot of inventory for a product.
type Batch struct {
	BatchID    string     `json:"batchId"`
	Quantity   int        `json:"quantity" validate:"gte=0"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

// InventoryItem is the retailer's current stock for one product.
type InventoryItem struct {
	ProductID     string  `json:"productId,omitempty"`
	ProductName   string  `json:"productName" validate:"required"`
	TotalQuantity int     `json:"totalQuantity" validate:"gte=0"`
	Batches       []Batch `json:"batches" validate:"dive"`
}

// StockLevel buckets for the inventory panel.
const (
	StockLevelWellStocked = "well_stocked"
	StockLevelLow         = "low_stock"
	StockLevelCritical    = "critical"
)

// InventoryRow is an InventoryItem as shown on the inventory panel.
type InventoryRow struct {
	InventoryItem
	StockLevel string `json:"stockLevel"`
}
