package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/models"
	"dayflow/pkg/paseto"
	"dayflow/repository"
	util "dayflow/pkg/utils"
)

type stubMailer struct {
	configured bool
	failSend   bool
	lastTo     string
	lastCode   string
}

func (m *stubMailer) Configured() bool { return m.configured }

func (m *stubMailer) SendOTP(_ context.Context, to, code string) error {
	if m.failSend {
		return fmt.Errorf("smtp unavailable")
	}
	m.lastTo = to
	m.lastCode = code
	return nil
}

func newOTPTestApp(t *testing.T, m *stubMailer) (*fiber.App, *repository.OTPRepository) {
	t.Helper()

	secret, err := util.GenerateBase64Key(32)
	require.NoError(t, err)
	maker, err := paseto.NewPasetoMaker(secret)
	require.NoError(t, err)

	otpRepo := repository.NewOTPRepository()
	handler := NewAuthHandler(nil, otpRepo, maker, m)

	app := fiber.New()
	app.Post("/send-otp", handler.SendOTP)
	app.Post("/verify-otp", handler.VerifyOTP)
	return app, otpRepo
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (*http.Response, models.OTPResponse) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed models.OTPResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestSendOTP(t *testing.T) {
	m := &stubMailer{configured: true}
	app, _ := newOTPTestApp(t, m)

	resp, body := postJSON(t, app, "/send-otp", models.SendOTPPayload{Email: "john@dayflow.io"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	assert.Equal(t, "john@dayflow.io", m.lastTo)
	assert.Len(t, m.lastCode, 6)
}

func TestSendOTPMissingEmail(t *testing.T) {
	app, _ := newOTPTestApp(t, &stubMailer{configured: true})

	resp, body := postJSON(t, app, "/send-otp", models.SendOTPPayload{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Email is required", body.Message)
}

func TestSendOTPInvalidEmail(t *testing.T) {
	app, _ := newOTPTestApp(t, &stubMailer{configured: true})

	resp, body := postJSON(t, app, "/send-otp", models.SendOTPPayload{Email: "not an email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email format", body.Message)
}

func TestSendOTPUnconfiguredMailer(t *testing.T) {
	app, _ := newOTPTestApp(t, &stubMailer{configured: false})

	resp, body := postJSON(t, app, "/send-otp", models.SendOTPPayload{Email: "john@dayflow.io"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Email service is not configured", body.Message)
}

func TestSendOTPMailFailure(t *testing.T) {
	app, _ := newOTPTestApp(t, &stubMailer{configured: true, failSend: true})

	resp, body := postJSON(t, app, "/send-otp", models.SendOTPPayload{Email: "john@dayflow.io"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to send OTP email", body.Message)
}

func TestVerifyOTPFlow(t *testing.T) {
	m := &stubMailer{configured: true}
	app, _ := newOTPTestApp(t, m)

	_, sent := postJSON(t, app, "/send-otp", models.SendOTPPayload{Email: "john@dayflow.io"})
	require.True(t, sent.Success)

	resp, body := postJSON(t, app, "/verify-otp", models.VerifyOTPPayload{Email: "john@dayflow.io", OTP: m.lastCode})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "OTP verified successfully", body.Message)
	assert.NotEmpty(t, body.ResetToken)

	// The code is one-time: a replay is rejected.
	resp, body = postJSON(t, app, "/verify-otp", models.VerifyOTPPayload{Email: "john@dayflow.io", OTP: m.lastCode})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No OTP found for this email. Please request a new one.", body.Message)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	m := &stubMailer{configured: true}
	app, _ := newOTPTestApp(t, m)

	_, sent := postJSON(t, app, "/send-otp", models.SendOTPPayload{Email: "john@dayflow.io"})
	require.True(t, sent.Success)

	wrong := "000000"
	if wrong == m.lastCode {
		wrong = "000001"
	}

	resp, body := postJSON(t, app, "/verify-otp", models.VerifyOTPPayload{Email: "john@dayflow.io", OTP: wrong})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid OTP. Please try again.", body.Message)
	assert.Empty(t, body.ResetToken)
}

func TestVerifyOTPMissingFields(t *testing.T) {
	app, _ := newOTPTestApp(t, &stubMailer{configured: true})

	resp, body := postJSON(t, app, "/verify-otp", models.VerifyOTPPayload{Email: "john@dayflow.io"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email and OTP are required", body.Message)
}
