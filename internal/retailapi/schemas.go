package retailapi

import "retail_voice_backend/internal/models"

// Upstream endpoints.
const (
	PathRetailers    = "/api/retailer/get"
	PathProducts     = "/api/products/get"
	PathInventory    = "/api/retailer/inventory"
	PathAddSales     = "/api/retailer/add-sales"
	PathSalesData    = "/api/retailer/sales/data"
	PathSalesSummary = "/api/retailer/sales/summary"
	PathFixInventory = "/api/retailer/fix-inventory"
)

// ErrorKindInsufficientInventory is the explicit discriminator for stock rejections.
const ErrorKindInsufficientInventory = "insufficient_inventory"

// envelope is the common `{ success, message }` wrapper of every response.
type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ErrorKind string `json:"errorKind,omitempty"`
}

func (e *envelope) header() *envelope { return e }

type enveloped interface {
	header() *envelope
}

type retailersResponse struct {
	envelope
	Retailers []models.Retailer `json:"retailers" validate:"dive"`
}

type productsResponse struct {
	envelope
	Products []models.Product `json:"products" validate:"dive"`
}

type inventoryResponse struct {
	envelope
	Inventory []models.InventoryItem `json:"inventory" validate:"dive"`
}

type addSaleRequest struct {
	RetailerID  string `json:"retailerId" validate:"required"`
	ProductName string `json:"productName" validate:"required"`
	UnitsSold   int    `json:"unitsSold" validate:"gt=0"`
}

type addSaleResponse struct {
	envelope
	Sale              *models.SaleEvent `json:"sale,omitempty" validate:"-"`
	AvailableQuantity *int              `json:"availableQuantity,omitempty"`
	RequestedQuantity *int              `json:"requestedQuantity,omitempty"`
	ProductName       string            `json:"productName,omitempty"`
}

type salesDataResponse struct {
	envelope
	Sales []models.SaleEvent `json:"sales" validate:"dive"`
}

type salesSummaryResponse struct {
	envelope
	Summary []models.SalesSummaryRow `json:"summary" validate:"dive"`
}

type fixInventoryResponse struct {
	envelope
}

// AddSaleResult is the decoded outcome of a sale submission. Shortfall is set
// only for stock rejections; Success and Shortfall are never both set.
type AddSaleResult struct {
	Success   bool
	Sale      *models.SaleEvent
	Shortfall *models.Shortfall
	Message   string
}
