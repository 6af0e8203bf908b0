package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"retail_voice_backend/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	price := dec("20")
	rows := []models.SalesSummaryRow{
		{ProductName: "Sugar 1kg", UnitPrice: &price, UnitsSold: 3, Revenue: dec("60")},
		{ProductName: "Rice 5kg", UnitsSold: 4, Revenue: dec("50")},
		{ProductName: "Salt", UnitsSold: 0, Revenue: dec("0")},
	}

	summary := Summarize(rows)
	require.Len(t, summary.Rows, 3)
	assert.True(t, summary.Rows[0].UnitPrice.Equal(dec("20")))
	assert.True(t, summary.Rows[1].UnitPrice.Equal(dec("12.5")))
	assert.True(t, summary.Rows[2].UnitPrice.IsZero())
	assert.Equal(t, 7, summary.Totals.UnitsSold)
	assert.True(t, summary.Totals.Revenue.Equal(dec("110")))
	assert.Nil(t, rows[1].UnitPrice)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Empty(t, summary.Rows)
	assert.NotNil(t, summary.Rows)
	assert.Zero(t, summary.Totals.UnitsSold)
	assert.True(t, summary.Totals.Revenue.IsZero())
}

func TestValidateFilter(t *testing.T) {
	assert.NoError(t, ValidateFilter(models.SalesFilter{}))
	assert.NoError(t, ValidateFilter(models.SalesFilter{From: "2024-01-01", To: "2024-01-01"}))
	assert.ErrorIs(t, ValidateFilter(models.SalesFilter{From: "01/02/2024"}), ErrInvalidFilter)
	assert.ErrorIs(t, ValidateFilter(models.SalesFilter{From: "2024-02-01", To: "2024-01-01"}), ErrInvalidFilter)
}

func TestEvents_ForwardsFilter(t *testing.T) {
	api := &fakeRetailAPI{}
	svc := NewReportService(api)
	filter := models.SalesFilter{From: "2024-01-01", To: "2024-01-31", ProductID: "p1"}

	_, err := svc.Events(context.Background(), &models.Session{Token: "tok"}, filter)
	require.NoError(t, err)
	require.Len(t, api.filters, 1)
	assert.Equal(t, filter, api.filters[0])

	_, err = svc.Events(context.Background(), &models.Session{Token: "tok"}, models.SalesFilter{To: "bad"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Len(t, api.filters, 1)
}

func TestExportEventsCSV(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	price, total := dec("20"), dec("60")
	api := &fakeRetailAPI{events: []models.SaleEvent{
		{ID: "e1", ProductName: "Sugar 1kg", UnitsSold: 3, PriceAtSale: &price, TotalAmount: &total, SaleDate: &at},
	}}
	svc := NewReportService(api)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportEventsCSV(context.Background(), &models.Session{}, models.SalesFilter{}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "sale_id,sale_date,product_name,units_sold,price_at_sale,total_amount", lines[0])
	assert.Equal(t, "e1,2024-03-05,Sugar 1kg,3,20.00,60.00", lines[1])
}

func TestExportSummaryXLSX(t *testing.T) {
	api := &fakeRetailAPI{summary: []models.SalesSummaryRow{
		{ProductName: "Rice 5kg", UnitsSold: 4, Revenue: dec("50")},
	}}
	svc := NewReportService(api)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSummaryXLSX(context.Background(), &models.Session{}, models.SalesFilter{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product", "Unit Price", "Units Sold", "Revenue"}, rows[0])
	assert.Equal(t, []string{"Rice 5kg", "12.5", "4", "50"}, rows[1])
	assert.Equal(t, "Total", rows[2][0])
	assert.Equal(t, "4", rows[2][2])
}

func TestInventoryList_AddsStockLevel(t *testing.T) {
	api := &fakeRetailAPI{inventory: []models.InventoryItem{
		{ProductName: "Sugar 1kg", TotalQuantity: 12},
		{ProductName: "Rice 5kg", TotalQuantity: 3},
	}}
	rows, err := NewInventoryService(api).List(context.Background(), &models.Session{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.StockLevelWellStocked, rows[0].StockLevel)
	assert.Equal(t, models.StockLevelCritical, rows[1].StockLevel)
}
