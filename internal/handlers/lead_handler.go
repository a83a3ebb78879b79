package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/middleware"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type LeadHandler struct {
	intakeService    *services.IntakeService
	lifecycleService *services.LifecycleService
	reportingService *services.ReportingService
}

func NewLeadHandler(
	intakeService *services.IntakeService,
	lifecycleService *services.LifecycleService,
	reportingService *services.ReportingService,
) *LeadHandler {
	return &LeadHandler{
		intakeService:    intakeService,
		lifecycleService: lifecycleService,
		reportingService: reportingService,
	}
}

// CreateLead handles POST /leads: one client plus its vehicles, each with a
// NEW_LEAD job, created atomically.
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	client, err := h.intakeService.CreateLead(actorID, services.CreateLeadInput{
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
		if errors.Is(err, services.ErrPhoneTaken) || errors.Is(err, services.ErrEmailInUse) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

// ListLeads handles GET /leads: the pipeline view (everything before QC).
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	jobs, err := h.reportingService.JobsByStatus(
		models.StatusNewLead, models.StatusScheduled, models.StatusInProgress,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list leads",
		})
	}
	return c.JSON(jobs)
}

// Schedule handles POST /jobs/:id/schedule.
func (h *LeadHandler) Schedule(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	installDate := parseDate(req.InstallDate)
	if installDate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "A valid install date is required",
		})
	}

	job, err := h.lifecycleService.Schedule(jobID, *installDate)
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}

// MarkLost handles POST /jobs/:id/lost.
func (h *LeadHandler) MarkLost(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	var req dto.MarkLostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	job, err := h.lifecycleService.MarkLost(jobID, req.Reason)
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}

func vehicleInputs(reqs []dto.VehicleRequest) []services.VehicleInput {
	out := make([]services.VehicleInput, 0, len(reqs))
	for _, r := range reqs {
		id := uuid.Nil
		if r.ID != "" {
			if parsed, err := uuid.Parse(r.ID); err == nil {
				id = parsed
			}
		}
		out = append(out, services.VehicleInput{
			ID:          id,
			Name:        r.Name,
			Year:        r.Year,
			PlateNumber: r.PlateNumber,
		})
	}
	return out
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// jobTransitionError maps lifecycle sentinels to HTTP statuses.
func jobTransitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrUnitUnavailable),
		errors.Is(err, services.ErrIMEITaken),
		errors.Is(err, services.ErrSIMTaken),
		errors.Is(err, services.ErrAlreadyClaimed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
}
