package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/services"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// GetInventory handles the inventory panel.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	rows, err := h.inventoryService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, "GetInventory: Error from inventoryService.List", "Failed to fetch inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inventory": rows})
}

// FixInventory asks the retail API to repair the inventory assignment.
func (h *InventoryHandler) FixInventory(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	message, err := h.inventoryService.Fix(c.Request.Context(), session)
	if err != nil {
		respondError(c, "FixInventory: Error from inventoryService.Fix", "Failed to fix inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
