package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"dayflow/models"
	"dayflow/pkg/paseto"
	"dayflow/repository"
	util "dayflow/pkg/utils"
)

type PayrollHandler struct {
	payrollRepo *repository.PayrollRepository
}

func NewPayrollHandler(payrollRepo *repository.PayrollRepository) *PayrollHandler {
	return &PayrollHandler{payrollRepo: payrollRepo}
}

// GetAll godoc
// @Summary Payroll table for the whole company
// @Description One row per employee; employees without a payroll record appear with status NA.
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PayrollRecord
// @Router /api/v1/admin/payroll [get]
func (h *PayrollHandler) GetAll(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	records, err := h.payrollRepo.GetAllEmployeePayroll(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list payroll", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"records": records, "total": len(records)})
}

// GetMine godoc
// @Summary The caller's payroll record
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PayrollRecord
// @Router /api/v1/payroll/me [get]
func (h *PayrollHandler) GetMine(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	record, err := h.payrollRepo.GetEmployeePayroll(ctx, claims.UserID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payroll", "details": err.Error()})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"record": record})
}

// GetOne godoc
// @Summary One employee's payroll record
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param employeeId path string true "Employee ID"
// @Success 200 {object} models.PayrollRecord
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/admin/payroll/{employeeId} [get]
func (h *PayrollHandler) GetOne(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	record, err := h.payrollRepo.GetEmployeePayroll(ctx, c.Params("employeeId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payroll", "details": err.Error()})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"record": record})
}

// UpdateSalaryStructure godoc
// @Summary Update an employee's salary structure
// @Description Recomputes gross and net and appends a history row.
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employeeId path string true "Employee ID"
// @Param payload body models.SalaryStructureUpdatePayload true "New structure"
// @Success 200 {object} models.PayrollRecord
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/admin/payroll/{employeeId}/salary-structure [put]
func (h *PayrollHandler) UpdateSalaryStructure(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	payload := new(models.SalaryStructureUpdatePayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}

	structure := models.SalaryStructure{
		Basic:     payload.Basic,
		Housing:   payload.Housing,
		Transport: payload.Transport,
		Medical:   payload.Medical,
		Other:     payload.Other,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	record, err := h.payrollRepo.UpdateSalaryStructure(ctx, c.Params("employeeId"), structure, claims.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update salary structure", "details": err.Error()})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Salary structure updated", "record": record})
}

// SalaryHistory godoc
// @Summary An employee's salary structure history
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param employeeId path string true "Employee ID"
// @Success 200 {array} models.SalaryStructureHistory
// @Router /api/v1/admin/payroll/{employeeId}/history [get]
func (h *PayrollHandler) SalaryHistory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	history, err := h.payrollRepo.SalaryHistory(ctx, c.Params("employeeId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch salary history", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"history": history, "total": len(history)})
}
