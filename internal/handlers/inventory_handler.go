package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// AddDevice handles POST /inventory/devices.
func (h *InventoryHandler) AddDevice(c *fiber.Ctx) error {
	var req dto.AddDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	device, err := h.inventoryService.AddDevice(req.IMEI)
	if err != nil {
		if errors.Is(err, services.ErrIMEITaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(device)
}

// AddSimCard handles POST /inventory/sims.
func (h *InventoryHandler) AddSimCard(c *fiber.Ctx) error {
	var req dto.AddSimCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	sim, err := h.inventoryService.AddSimCard(req.SimNumber, req.Network)
	if err != nil {
		if errors.Is(err, services.ErrSIMTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(sim)
}

// SearchDevices handles GET /inventory/devices/search?q=...
func (h *InventoryHandler) SearchDevices(c *fiber.Ctx) error {
	devices, err := h.inventoryService.SearchAvailableDevices(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Search failed",
		})
	}
	return c.JSON(devices)
}

// SearchSimCards handles GET /inventory/sims/search?q=...
func (h *InventoryHandler) SearchSimCards(c *fiber.Ctx) error {
	sims, err := h.inventoryService.SearchAvailableSimCards(c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Search failed",
		})
	}
	return c.JSON(sims)
}

// Summary handles GET /inventory/summary.
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.inventoryService.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load inventory summary",
		})
	}
	return c.JSON(summary)
}
