package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow/models"
	"dayflow/pkg/paseto"
	util "dayflow/pkg/utils"
)

// LeaveDesk is the repository surface the leave handlers are written
// against; *repository.LeaveRequestRepository satisfies it.
type LeaveDesk interface {
	Create(ctx context.Context, user *models.User, payload *models.LeaveRequestCreatePayload) (*models.LeaveRequest, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]models.LeaveRequest, error)
	FindPendingWithBalances(ctx context.Context) ([]models.LeaveRequestWithBalance, error)
	Balance(ctx context.Context, employeeID, leaveType string) (*models.LeaveBalance, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status, note string, requester *models.User) (*models.LeaveRequest, error)
	Decisions(ctx context.Context) ([]models.LeaveRequest, error)
}

type LeaveRequestHandler struct {
	leaveRepo LeaveDesk
	userRepo  UserDirectory
}

func NewLeaveRequestHandler(leaveRepo LeaveDesk, userRepo UserDirectory) *LeaveRequestHandler {
	return &LeaveRequestHandler{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
	}
}

// Create godoc
// @Summary Apply for leave
// @Description Files a pending request; the day count is the inclusive span of the dates.
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.LeaveRequestCreatePayload true "Leave request"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} models.ValidationErrorResponse
// @Router /api/v1/leave-requests [post]
func (h *LeaveRequestHandler) Create(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	payload := new(models.LeaveRequestCreatePayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up user", "details": err.Error()})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	// Refuse a request that would overdraw this year's allowance.
	balance, err := h.leaveRepo.Balance(ctx, claims.UserID.Hex(), payload.Type)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute leave balance", "details": err.Error()})
	}
	days := models.LeaveDays(payload.StartDate, payload.EndDate)
	if days > balance.Available {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Insufficient leave balance",
			"balance": balance,
		})
	}

	request, err := h.leaveRepo.Create(ctx, user, payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create leave request", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Leave request submitted", "request": request})
}

// My godoc
// @Summary The caller's leave requests
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequest
// @Router /api/v1/leave-requests/my [get]
func (h *LeaveRequestHandler) My(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.leaveRepo.FindByEmployee(ctx, claims.UserID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list leave requests", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"requests": requests, "total": len(requests)})
}

// Pending godoc
// @Summary Pending requests with balances
// @Description Lists every pending request with the requester's balance for that leave type.
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequestWithBalance
// @Router /api/v1/admin/leave-requests [get]
func (h *LeaveRequestHandler) Pending(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.leaveRepo.FindPendingWithBalances(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list pending requests", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"requests": requests, "total": len(requests)})
}

// Decide godoc
// @Summary Approve or reject a request
// @Description Approval writes Leave attendance records for every day of the span.
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Param payload body models.LeaveRequestDecisionPayload true "Decision"
// @Success 200 {object} models.LeaveRequest
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/admin/leave-requests/{id}/status [put]
func (h *LeaveRequestHandler) Decide(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid leave request ID format"})
	}

	payload := new(models.LeaveRequestDecisionPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	request, err := h.leaveRepo.FindByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to find leave request", "details": err.Error()})
	}
	if request == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found"})
	}

	requesterID, err := primitive.ObjectIDFromHex(request.EmployeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Corrupt employee reference on request"})
	}
	requester, err := h.userRepo.FindUserByID(ctx, requesterID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up requester", "details": err.Error()})
	}
	// Approval writes attendance records for the requester; without the
	// employee there is nobody to write them for.
	if payload.Status == "approved" && requester == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot approve leave for an employee that no longer exists"})
	}

	decided, err := h.leaveRepo.UpdateStatus(ctx, id, payload.Status, payload.Note, requester)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if decided == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Leave request " + decided.Status, "request": decided})
}

// Decisions godoc
// @Summary Decided requests, newest first
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequest
// @Router /api/v1/admin/leave-requests/decisions [get]
func (h *LeaveRequestHandler) Decisions(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	decisions, err := h.leaveRepo.Decisions(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list decisions", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"decisions": decisions, "total": len(decisions)})
}

// Balance godoc
// @Summary The caller's balance for one leave type
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param type query string true "Leave type" Enums(Annual, Sick, Personal)
// @Success 200 {object} models.LeaveBalance
// @Router /api/v1/leave-requests/balance [get]
func (h *LeaveRequestHandler) Balance(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	leaveType := c.Query("type")
	if _, ok := models.LeaveTypeTotals[leaveType]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must be one of: Annual, Sick, Personal"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	balance, err := h.leaveRepo.Balance(ctx, claims.UserID.Hex(), leaveType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"type": leaveType, "balance": balance})
}
