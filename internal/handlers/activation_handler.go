package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type ActivationHandler struct {
	lifecycleService *services.LifecycleService
	reportingService *services.ReportingService
}

func NewActivationHandler(lifecycleService *services.LifecycleService, reportingService *services.ReportingService) *ActivationHandler {
	return &ActivationHandler{lifecycleService: lifecycleService, reportingService: reportingService}
}

// Queue handles GET /activation/queue: configured jobs awaiting onboarding.
func (h *ActivationHandler) Queue(c *fiber.Ctx) error {
	jobs, err := h.reportingService.JobsByStatus(models.StatusConfigured)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load activation queue",
		})
	}
	return c.JSON(jobs)
}

// Activate handles POST /jobs/:id/activate.
func (h *ActivationHandler) Activate(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	job, err := h.lifecycleService.Activate(jobID)
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}
