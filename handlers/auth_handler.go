package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"dayflow/models"
	"dayflow/pkg/mailer"
	"dayflow/pkg/paseto"
	"dayflow/pkg/password"
	"dayflow/repository"
	util "dayflow/pkg/utils"
)

type AuthHandler struct {
	userRepo *repository.UserRepository
	otpRepo  *repository.OTPRepository
	maker    *paseto.PasetoMaker
	mailer   mailer.Mailer
}

func NewAuthHandler(userRepo *repository.UserRepository, otpRepo *repository.OTPRepository, maker *paseto.PasetoMaker, m mailer.Mailer) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		maker:    maker,
		mailer:   m,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Creates an employee account and assigns the next employee code.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.UserRegisterPayload true "Registration data"
// @Success 201 {object} models.RegisterSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	payload := new(models.UserRegisterPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check email", "details": err.Error()})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email is already registered"})
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password", "details": err.Error()})
	}

	user := &models.User{
		Name:       payload.Name,
		Email:      payload.Email,
		Password:   hashedPassword,
		Role:       "employee",
		Position:   payload.Position,
		Department: payload.Department,
		Phone:      payload.Phone,
		Address:    payload.Address,
		JoinDate:   time.Now().Format("2006-01-02"),
	}

	if _, err := h.userRepo.CreateUser(ctx, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"user_id": user.ID.Hex(),
	})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a PASETO session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.UserLoginPayload true "Login credentials"
// @Success 200 {object} models.LoginSuccessResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	payload := new(models.UserLoginPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up user", "details": err.Error()})
	}
	if user == nil || !password.CheckPasswordHash(payload.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := h.maker.GenerateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":        "Login successful",
		"token":          token,
		"user_id":        user.ID.Hex(),
		"role":           user.Role,
		"is_first_login": user.IsFirstLogin,
	})
}

// Logout godoc
// @Summary Log out
// @Description Stateless logout; the client discards the token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LogoutSuccessResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logout successful. Remove the token on the client side.",
	})
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ChangePasswordPayload true "Old and new password"
// @Success 200 {object} models.ChangePasswordSuccessResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /api/v1/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
	}

	payload := new(models.ChangePasswordPayload)
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

	if !password.CheckPasswordHash(payload.OldPassword, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Old password is incorrect"})
	}

	hashedPassword, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password", "details": err.Error()})
	}

	update := bson.M{"password": hashedPassword, "isFirstLogin": false}
	if _, err := h.userRepo.UpdateUser(ctx, user.ID, update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password changed successfully."})
}

// SendOTP godoc
// @Summary Send a password-reset OTP
// @Description Emails a 6-digit code valid for five minutes.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.SendOTPPayload true "Target email"
// @Success 200 {object} models.OTPResponse
// @Failure 400 {object} models.OTPResponse
// @Failure 500 {object} models.OTPResponse
// @Router /send-otp [post]
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	payload := new(models.SendOTPPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPResponse{Success: false, Message: "Invalid request body"})
	}

	if payload.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPResponse{Success: false, Message: "Email is required"})
	}
	if !util.IsValidEmail(payload.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPResponse{Success: false, Message: "Invalid email format"})
	}

	if !h.mailer.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(models.OTPResponse{Success: false, Message: "Email service is not configured"})
	}

	code, err := util.GenerateOTP()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.OTPResponse{Success: false, Message: "Failed to generate OTP"})
	}

	// Store before sending so a slow mail provider cannot race the user.
	h.otpRepo.Save(payload.Email, code)

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := h.mailer.SendOTP(ctx, payload.Email, code); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.OTPResponse{Success: false, Message: "Failed to send OTP email"})
	}

	return c.Status(fiber.StatusOK).JSON(models.OTPResponse{Success: true, Message: fmt.Sprintf("OTP sent to %s", payload.Email)})
}

// VerifyOTP godoc
// @Summary Verify a password-reset OTP
// @Description Consumes the code and returns a short-lived reset token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.VerifyOTPPayload true "Email and code"
// @Success 200 {object} models.OTPResponse
// @Failure 400 {object} models.OTPResponse
// @Router /verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	payload := new(models.VerifyOTPPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPResponse{Success: false, Message: "Invalid request body"})
	}

	if payload.Email == "" || payload.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPResponse{Success: false, Message: "Email and OTP are required"})
	}

	ok, message := h.otpRepo.Verify(payload.Email, payload.OTP)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPResponse{Success: false, Message: message})
	}

	resetToken, err := h.maker.GenerateResetToken(payload.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.OTPResponse{Success: false, Message: "Failed to issue reset token"})
	}

	return c.Status(fiber.StatusOK).JSON(models.OTPResponse{Success: true, Message: message, ResetToken: resetToken})
}

// ResetPassword godoc
// @Summary Reset a forgotten password
// @Description Sets a new password using the reset token from OTP verification.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.ResetPasswordPayload true "Email, reset token and new password"
// @Success 200 {object} models.ChangePasswordSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	payload := new(models.ResetPasswordPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}

	if err := h.maker.ValidateResetToken(payload.ResetToken, payload.Email); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired reset token", "details": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up user", "details": err.Error()})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	hashedPassword, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password", "details": err.Error()})
	}

	if _, err := h.userRepo.UpdatePasswordByEmail(ctx, payload.Email, hashedPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset password", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password reset successfully."})
}
