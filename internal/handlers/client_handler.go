package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type ClientHandler struct {
	intakeService    *services.IntakeService
	reportingService *services.ReportingService
}

func NewClientHandler(intakeService *services.IntakeService, reportingService *services.ReportingService) *ClientHandler {
	return &ClientHandler{intakeService: intakeService, reportingService: reportingService}
}

// ListClients handles GET /clients, with optional ?q= search across name,
// phone and plate numbers.
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	var (
		clients interface{}
		err     error
	)
	if q := c.Query("q"); q != "" {
		clients, err = h.reportingService.SearchClients(q)
	} else {
		clients, err = h.reportingService.ListClients()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list clients",
		})
	}
	return c.JSON(clients)
}

// GetClient handles GET /clients/:id with vehicles and their jobs.
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	client, err := h.reportingService.GetClient(clientID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Client not found",
		})
	}
	return c.JSON(client)
}

// UpdateClient handles PUT /clients/:id: client fields plus per-row
// create-or-update of its vehicle list.
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	client, err := h.intakeService.UpdateClient(clientID, services.UpdateClientInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
		State:       req.State,
		LeadSource:  req.LeadSource,
		DOB:         parseDate(req.DOB),
		Vehicles:    vehicleInputs(req.Vehicles),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrPhoneTaken), errors.Is(err, services.ErrEmailInUse):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}
	return c.JSON(client)
}

// DeleteClient handles DELETE /clients/:id (admin only), cascading vehicles
// and jobs.
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	if err := h.intakeService.DeleteClient(clientID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete client",
		})
	}
	return c.JSON(fiber.Map{"message": "Client deleted"})
}

// AddVehicle handles POST /clients/:id/vehicles.
func (h *ClientHandler) AddVehicle(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	vehicle, err := h.intakeService.AddVehicle(clientID, services.VehicleInput{
		Name:        req.Name,
		Year:        req.Year,
		PlateNumber: req.PlateNumber,
	})
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// DeleteVehicle handles DELETE /vehicles/:id.
func (h *ClientHandler) DeleteVehicle(c *fiber.Ctx) error {
	vehicleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid vehicle id",
		})
	}

	if err := h.intakeService.DeleteVehicle(vehicleID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Vehicle deleted"})
}
