package models

import "time"

// OTPRecord is a server-held one-time passcode, keyed by email, consumed on
// successful verification or expiry.
type OTPRecord struct {
	Code      string
	Email     string
	ExpiresAt time.Time
	Purpose   string
}

const OTPPurposePasswordReset = "password-reset"

type SendOTPPayload struct {
	Email string `json:"email"`
}

type VerifyOTPPayload struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// OTPResponse mirrors the envelope the password-reset frontend expects.
type OTPResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}
