package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleEvent is one recorded sale from the retailer's ledger.
type SaleEvent struct {
	ID          string           `json:"_id"`
	ProductName string           `json:"productName" validate:"required"`
	UnitsSold   int              `json:"unitsSold" validate:"gte=0"`
	PriceAtSale *decimal.Decimal `json:"priceAtSale,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	SaleDate    *time.Time       `json:"saleDate,omitempty"`
}

// SalesSummaryRow is the per-product aggregate returned by the summary endpoint.
type SalesSummaryRow struct {
	ProductID   string           `json:"productId,omitempty"`
	ProductName string           `json:"productName"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	UnitsSold   int              `json:"unitsSold" validate:"gte=0"`
	Revenue     decimal.Decimal  `json:"revenue"`
}

// SummaryTotals is the footer of the summary table.
type SummaryTotals struct {
	UnitsSold int             `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SalesSummary is the summary panel: rows with the unit price resolved, plus totals.
type SalesSummary struct {
	Rows   []SalesSummaryRow `json:"rows"`
	Totals SummaryTotals     `json:"totals"`
}

// SalesFilter holds the optional filters of both sales panels.
type SalesFilter struct {
	From      string `form:"from" json:"from,omitempty"`           // YYYY-MM-DD
	To        string `form:"to" json:"to,omitempty"`               // YYYY-MM-DD
	ProductID string `form:"productId" json:"productId,omitempty"` // upstream product id
}
