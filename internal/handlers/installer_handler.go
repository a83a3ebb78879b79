package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/middleware"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type InstallerHandler struct {
	claimService     *services.ClaimService
	lifecycleService *services.LifecycleService
	reportingService *services.ReportingService
}

func NewInstallerHandler(
	claimService *services.ClaimService,
	lifecycleService *services.LifecycleService,
	reportingService *services.ReportingService,
) *InstallerHandler {
	return &InstallerHandler{
		claimService:     claimService,
		lifecycleService: lifecycleService,
		reportingService: reportingService,
	}
}

// Queue handles GET /installer/queue: claimable and in-flight field jobs.
func (h *InstallerHandler) Queue(c *fiber.Ctx) error {
	jobs, err := h.reportingService.JobsByStatus(
		models.StatusNewLead, models.StatusScheduled, models.StatusInProgress,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load installer queue",
		})
	}
	return c.JSON(jobs)
}

// Claim handles POST /jobs/:id/claim: installer self-assignment.
func (h *InstallerHandler) Claim(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	job, err := h.claimService.Claim(jobID, actorID)
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}

// Release handles POST /jobs/:id/release: holder or admin returns the job
// to the schedule.
func (h *InstallerHandler) Release(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	job, err := h.claimService.Release(jobID, actorID, middleware.GetRole(c))
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}

// SubmitInstallation handles POST /jobs/:id/installation.
func (h *InstallerHandler) SubmitInstallation(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	var req dto.SubmitInstallationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	deviceID, err := uuid.Parse(req.DeviceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "You must select an IMEI from the inventory",
		})
	}
	simCardID, err := uuid.Parse(req.SimCardID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "You must select a SIM card from the inventory",
		})
	}

	job, err := h.lifecycleService.SubmitInstallation(services.SubmitInstallationInput{
		JobID:       jobID,
		DeviceID:    deviceID,
		SimCardID:   simCardID,
		PlateNumber: req.PlateNumber,
		VehicleName: req.VehicleName,
	})
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}
