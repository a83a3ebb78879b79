package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type TechHandler struct {
	lifecycleService *services.LifecycleService
	reportingService *services.ReportingService
}

func NewTechHandler(lifecycleService *services.LifecycleService, reportingService *services.ReportingService) *TechHandler {
	return &TechHandler{lifecycleService: lifecycleService, reportingService: reportingService}
}

// Queue handles GET /tech/queue: installs waiting for verification.
func (h *TechHandler) Queue(c *fiber.Ctx) error {
	jobs, err := h.reportingService.JobsByStatus(models.StatusPendingQC)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load tech queue",
		})
	}
	return c.JSON(jobs)
}

// CompleteConfiguration handles POST /jobs/:id/configuration.
func (h *TechHandler) CompleteConfiguration(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	var req dto.CompleteConfigurationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	job, err := h.lifecycleService.CompleteConfiguration(services.CompleteConfigurationInput{
		JobID:         jobID,
		IMEI:          req.IMEI,
		SimNumber:     req.SimNumber,
		PlatformID:    req.PlatformID,
		InstallerName: req.InstallerName,
	})
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}
