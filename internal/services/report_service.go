package services

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/pkg/utils"
)

const summarySheet = "Sales Summary"

// --- ReportService Interface ---
type ReportService interface {
	Events(ctx context.Context, session *models.Session, filter models.SalesFilter) ([]models.SaleEvent, error)
	Summary(ctx context.Context, session *models.Session, filter models.SalesFilter) (*models.SalesSummary, error)
	ExportEventsCSV(ctx context.Context, session *models.Session, filter models.SalesFilter, w io.Writer) error
	ExportSummaryXLSX(ctx context.Context, session *models.Session, filter models.SalesFilter, w io.Writer) error
}

// --- reportService Implementation ---
type reportService struct {
	api RetailAPI
}

// NewReportService creates a new instance of ReportService.
func NewReportService(api RetailAPI) ReportService {
	return &reportService{api: api}
}

// ValidateFilter checks both dates and their order.
func ValidateFilter(filter models.SalesFilter) error {
	from, err := utils.ParseDateParam(filter.From)
	if err != nil {
		return fmt.Errorf("%w: from: %v", ErrInvalidFilter, err)
	}
	to, err := utils.ParseDateParam(filter.To)
	if err != nil {
		return fmt.Errorf("%w: to: %v", ErrInvalidFilter, err)
	}
	if from != nil && to != nil && from.After(*to) {
		return fmt.Errorf("%w: from is after to", ErrInvalidFilter)
	}
	return nil
}

func (s *reportService) Events(ctx context.Context, session *models.Session, filter models.SalesFilter) ([]models.SaleEvent, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	events, err := s.api.SalesEvents(ctx, session.Token, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching sales events: %w", err)
	}
	return events, nil
}

func (s *reportService) Summary(ctx context.Context, session *models.Session, filter models.SalesFilter) (*models.SalesSummary, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	rows, err := s.api.SalesSummary(ctx, session.Token, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching sales summary: %w", err)
	}
	summary := Summarize(rows)
	return &summary, nil
}

// Summarize resolves each row's unit price and computes the totals.
// A row without a unit price gets revenue/unitsSold, or 0 when nothing sold.
func Summarize(rows []models.SalesSummaryRow) models.SalesSummary {
	summary := models.SalesSummary{
		Rows:   make([]models.SalesSummaryRow, 0, len(rows)),
		Totals: models.SummaryTotals{Revenue: decimal.Zero},
	}
	for _, row := range rows {
		if row.UnitPrice == nil {
			price := decimal.Zero
			if row.UnitsSold > 0 {
				price = row.Revenue.Div(decimal.NewFromInt(int64(row.UnitsSold))).Round(2)
			}
			row.UnitPrice = &price
		}
		summary.Totals.UnitsSold += row.UnitsSold
		summary.Totals.Revenue = summary.Totals.Revenue.Add(row.Revenue)
		summary.Rows = append(summary.Rows, row)
	}
	return summary
}

// eventRecord is the CSV shape of one sale event.
type eventRecord struct {
	SaleID      string `csv:"sale_id"`
	SaleDate    string `csv:"sale_date"`
	ProductName string `csv:"product_name"`
	UnitsSold   int    `csv:"units_sold"`
	PriceAtSale string `csv:"price_at_sale"`
	TotalAmount string `csv:"total_amount"`
}

func (s *reportService) ExportEventsCSV(ctx context.Context, session *models.Session, filter models.SalesFilter, w io.Writer) error {
	events, err := s.Events(ctx, session, filter)
	if err != nil {
		return err
	}
	records := make([]eventRecord, 0, len(events))
	for _, e := range events {
		rec := eventRecord{
			SaleID:      e.ID,
			ProductName: e.ProductName,
			UnitsSold:   e.UnitsSold,
			PriceAtSale: formatMoney(e.PriceAtSale),
			TotalAmount: formatMoney(e.TotalAmount),
		}
		if e.SaleDate != nil {
			rec.SaleDate = e.SaleDate.Format(utils.DateLayout)
		}
		records = append(records, rec)
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("writing events csv: %w", err)
	}
	return nil
}

func (s *reportService) ExportSummaryXLSX(ctx context.Context, session *models.Session, filter models.SalesFilter, w io.Writer) error {
	summary, err := s.Summary(ctx, session, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	header := []interface{}{"Product", "Unit Price", "Units Sold", "Revenue"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	rowNum := 2
	for _, row := range summary.Rows {
		values := []interface{}{row.ProductName, row.UnitPrice.InexactFloat64(), row.UnitsSold, row.Revenue.InexactFloat64()}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", rowNum, err)
		}
		rowNum++
	}
	totals := []interface{}{"Total", "", summary.Totals.UnitsSold, summary.Totals.Revenue.InexactFloat64()}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(summarySheet, cell, &totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(4, rowNum)
	if err := f.SetCellStyle(summarySheet, cell, last, bold); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func formatMoney(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
