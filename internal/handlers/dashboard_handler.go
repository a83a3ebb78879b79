package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type DashboardHandler struct {
	reportingService *services.ReportingService
	inventoryService *services.InventoryService
}

func NewDashboardHandler(reportingService *services.ReportingService, inventoryService *services.InventoryService) *DashboardHandler {
	return &DashboardHandler{reportingService: reportingService, inventoryService: inventoryService}
}

// Counts handles GET /dashboard/counts: job totals per status plus stock
// levels for the landing-page cards.
func (h *DashboardHandler) Counts(c *fiber.Ctx) error {
	statusCounts, err := h.reportingService.StatusCounts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard counts",
		})
	}

	inventory, err := h.inventoryService.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load inventory counts",
		})
	}

	return c.JSON(fiber.Map{
		"jobs":      statusCounts,
		"inventory": inventory,
	})
}
