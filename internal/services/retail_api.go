package services

import (
	"context"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/retailapi"
)

// RetailAPI is the subset of the retail API the services call.
// *retailapi.Client satisfies it.
type RetailAPI interface {
	ListRetailers(ctx context.Context, token string) ([]models.Retailer, error)
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	Inventory(ctx context.Context, token string) ([]models.InventoryItem, error)
	SalesEvents(ctx context.Context, token string, filter models.SalesFilter) ([]models.SaleEvent, error)
	SalesSummary(ctx context.Context, token string, filter models.SalesFilter) ([]models.SalesSummaryRow, error)
	FixInventory(ctx context.Context, token string) (string, error)
	AddSale(ctx context.Context, token, retailerID, productName string, unitsSold int) (retailapi.AddSaleResult, error)
}

var _ RetailAPI = (*retailapi.Client)(nil)
