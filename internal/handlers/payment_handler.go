package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"github.com/trackmasterhq/trackmaster-backend/internal/services"
)

type PaymentHandler struct {
	paymentService   *services.PaymentService
	reportingService *services.ReportingService
}

func NewPaymentHandler(paymentService *services.PaymentService, reportingService *services.ReportingService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, reportingService: reportingService}
}

// Queue handles GET /payments/queue: live and configured jobs with their
// payment state, for the collections view.
func (h *PaymentHandler) Queue(c *fiber.Ctx) error {
	jobs, err := h.reportingService.JobsByStatus(models.StatusConfigured, models.StatusActive)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load payments queue",
		})
	}
	return c.JSON(jobs)
}

// RecordPayment handles POST /jobs/:id/payment.
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	job, err := h.paymentService.RecordPayment(jobID, req.Amount, req.Collector)
	if err != nil {
		return jobTransitionError(c, err)
	}
	return c.JSON(job)
}
