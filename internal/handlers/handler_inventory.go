package handlers

import (
	"net/http"

	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inventoryHandler serves the merged available-lot list.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvc
}

func newInventoryHandler(is portssvc.InventorySvc) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes for inventory browsing.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvc) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("/available", h.listAvailable)
	}
}

// listAvailable godoc
// @Summary List available lots
// @Description Returns every Available lot across both project tables, tagged with its project.
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.PropertyResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/available [get]
func (h *inventoryHandler) listAvailable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	properties, err := h.inventoryService.ListAvailable(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list available properties")
		return
	}

	c.JSON(http.StatusOK, dto.ToPropertyResponses(properties))
}
