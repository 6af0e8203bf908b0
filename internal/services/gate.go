package services

import "retail_voice_backend/internal/models"

// LowStockThreshold is the available quantity below which a sufficient sale
// still carries a low-stock advisory.
const LowStockThreshold = 5

// EvaluateStock is the confirmation gate. A missing inventory row never passes.
func EvaluateStock(item *models.InventoryItem, requested int) models.StockCheck {
	check := models.StockCheck{Requested: requested}
	if item == nil {
		return check
	}
	check.Found = true
	check.Available = item.TotalQuantity
	check.Sufficient = requested > 0 && item.TotalQuantity >= requested
	check.LowStock = check.Sufficient && item.TotalQuantity < LowStockThreshold
	return check
}

// findInventoryItem locates the row for a product by exact name.
func findInventoryItem(items []models.InventoryItem, productName string) *models.InventoryItem {
	for i := range items {
		if items[i].ProductName == productName {
			return &items[i]
		}
	}
	return nil
}

// StockLevel buckets a quantity for the inventory panel.
func StockLevel(quantity int) string {
	switch {
	case quantity > 10:
		return models.StockLevelWellStocked
	case quantity > 5:
		return models.StockLevelLow
	default:
		return models.StockLevelCritical
	}
}
