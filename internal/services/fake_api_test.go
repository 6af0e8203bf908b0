package services

import (
	"context"
	"sync"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/retailapi"
)

type addSaleCall struct {
	Token       string
	RetailerID  string
	ProductName string
	UnitsSold   int
}

// fakeRetailAPI serves canned responses and records AddSale calls.
type fakeRetailAPI struct {
	mu        sync.Mutex
	retailers []models.Retailer
	products  []models.Product
	inventory []models.InventoryItem
	events    []models.SaleEvent
	summary   []models.SalesSummaryRow
	fixMsg    string
	addResult retailapi.AddSaleResult
	addErr    error
	listErr   error
	calls     []addSaleCall
	filters   []models.SalesFilter
}

func (f *fakeRetailAPI) ListRetailers(ctx context.Context, token string) ([]models.Retailer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.retailers, nil
}

func (f *fakeRetailAPI) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeRetailAPI) Inventory(ctx context.Context, token string) ([]models.InventoryItem, error) {
	return f.inventory, nil
}

func (f *fakeRetailAPI) SalesEvents(ctx context.Context, token string, filter models.SalesFilter) ([]models.SaleEvent, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return f.events, nil
}

func (f *fakeRetailAPI) SalesSummary(ctx context.Context, token string, filter models.SalesFilter) ([]models.SalesSummaryRow, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return f.summary, nil
}

func (f *fakeRetailAPI) FixInventory(ctx context.Context, token string) (string, error) {
	return f.fixMsg, nil
}

func (f *fakeRetailAPI) AddSale(ctx context.Context, token, retailerID, productName string, unitsSold int) (retailapi.AddSaleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, addSaleCall{token, retailerID, productName, unitsSold})
	return f.addResult, f.addErr
}

func (f *fakeRetailAPI) addSaleCalls() []addSaleCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]addSaleCall(nil), f.calls...)
}

var _ RetailAPI = (*fakeRetailAPI)(nil)
