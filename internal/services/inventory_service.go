package services

import (
	"context"
	"fmt"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/pkg/utils"
)

// --- InventoryService Interface ---
type InventoryService interface {
	List(ctx context.Context, session *models.Session) ([]models.InventoryRow, error)
	Fix(ctx context.Context, session *models.Session) (string, error)
}

// --- inventoryService Implementation ---
type inventoryService struct {
	api RetailAPI
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(api RetailAPI) InventoryService {
	return &inventoryService{api: api}
}

func (s *inventoryService) List(ctx context.Context, session *models.Session) ([]models.InventoryRow, error) {
	items, err := s.api.Inventory(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("fetching inventory: %w", err)
	}
	rows := make([]models.InventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.InventoryRow{
			InventoryItem: item,
			StockLevel:    StockLevel(item.TotalQuantity),
		})
	}
	return rows, nil
}

// Fix asks the retail API to repair the retailer's inventory assignment and
// returns its message. Callers re-fetch the inventory afterwards.
func (s *inventoryService) Fix(ctx context.Context, session *models.Session) (string, error) {
	message, err := s.api.FixInventory(ctx, session.Token)
	if err != nil {
		return "", fmt.Errorf("fixing inventory: %w", err)
	}
	utils.LogInfo("Inventory fix requested", map[string]interface{}{
		"retailer_id": session.RetailerID,
		"message":     message,
	})
	return message, nil
}
