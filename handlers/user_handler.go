package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow/models"
	"dayflow/pkg/paseto"
	"dayflow/repository"
	util "dayflow/pkg/utils"
)

type UserHandler struct {
	userRepo       *repository.UserRepository
	attendanceRepo *repository.AttendanceRepository
	leaveRepo      *repository.LeaveRequestRepository
}

func NewUserHandler(userRepo *repository.UserRepository, attendanceRepo *repository.AttendanceRepository, leaveRepo *repository.LeaveRequestRepository) *UserHandler {
	return &UserHandler{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

// GetUserByID godoc
// @Summary Get one employee
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.GetUserSuccessResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}
	// Employees can only read their own profile.
	if claims.Role != "admin" && claims.UserID != objectID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up user", "details": err.Error()})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User found", "user": user})
}

// GetAllUsers godoc
// @Summary List all employees
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.GetAllUsersSuccessResponse
// @Router /api/v1/admin/users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, err := h.userRepo.FindAllUsers(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Users fetched successfully",
		"users":   users,
		"total":   len(users),
	})
}

// UpdateUser godoc
// @Summary Update an employee profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param payload body models.UserUpdatePayload true "Fields to update"
// @Success 200 {object} models.UpdateUserSuccessResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	payload := new(models.UserUpdatePayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}

	updateData := bson.M{}
	if payload.Name != "" {
		updateData["name"] = payload.Name
	}
	if payload.Email != "" {
		updateData["email"] = payload.Email
	}
	if payload.Position != "" {
		updateData["position"] = payload.Position
	}
	if payload.Department != "" {
		updateData["department"] = payload.Department
	}
	if payload.Phone != "" {
		updateData["phone"] = payload.Phone
	}
	if payload.Status != "" {
		updateData["status"] = payload.Status
	}
	if payload.Address != "" {
		updateData["address"] = payload.Address
	}
	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.userRepo.UpdateUser(ctx, objectID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user", "details": err.Error()})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User updated successfully", "user_id": objectID.Hex()})
}

// DeleteUser godoc
// @Summary Delete an employee
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.DeleteUserSuccessResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	claims, ok := c.Locals("user").(*paseto.Claims)
	if ok && claims.UserID == objectID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot delete your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	result, err := h.userRepo.DeleteUser(ctx, objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user", "details": err.Error()})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted successfully", "user_id": objectID.Hex()})
}

// GetDashboardStats godoc
// @Summary Admin dashboard headline numbers
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Router /api/v1/admin/dashboard-stats [get]
func (h *UserHandler) GetDashboardStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.userRepo.GetDashboardStats(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute dashboard stats", "details": err.Error()})
	}

	today := time.Now().Format("2006-01-02")
	stats.CheckedInToday, err = h.attendanceRepo.CountCheckedInToday(ctx, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count today's check-ins", "details": err.Error()})
	}

	stats.PendingLeaveRequests, err = h.leaveRepo.CountPending(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count pending leave requests", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

// GetBadge godoc
// @Summary Employee badge QR code
// @Description Renders a PNG QR code carrying the employee code and a one-time badge ID.
// @Tags Users
// @Produce png
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /api/v1/users/{id}/badge [get]
func (h *UserHandler) GetBadge(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up user", "details": err.Error()})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	// The badge ID makes every rendered badge unique so a screenshot of an
	// old badge is distinguishable from a fresh one.
	content := fmt.Sprintf("dayflow:badge:%s:%s:%s", user.EmployeeCode, user.ID.Hex(), uuid.NewString())

	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render badge", "details": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}
