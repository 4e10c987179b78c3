package repository

import (
	"sync"
	"time"

	"dayflow/models"
)

const otpTTL = 5 * time.Minute

// OTPRepository is the in-memory one-time-passcode store. Codes are keyed
// by email, live for five minutes, and are consumed the moment they are
// verified or found expired. Losing them on restart is acceptable; the user
// simply requests a new code.
type OTPRepository struct {
	mu    sync.Mutex
	codes map[string]models.OTPRecord
	now   func() time.Time
}

func NewOTPRepository() *OTPRepository {
	return &OTPRepository{
		codes: make(map[string]models.OTPRecord),
		now:   time.Now,
	}
}

// Save stores a fresh code for the email, replacing any outstanding one.
func (r *OTPRepository) Save(email, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes[email] = models.OTPRecord{
		Code:      code,
		Email:     email,
		ExpiresAt: r.now().Add(otpTTL),
		Purpose:   models.OTPPurposePasswordReset,
	}
}

// Verify checks the submitted code. A correct code and an expired code are
// both consumed; a wrong code leaves the stored one in place so the user
// can retry. The returned message is shown to the user verbatim.
func (r *OTPRepository) Verify(email, code string) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.codes[email]
	if !ok {
		return false, "No OTP found for this email. Please request a new one."
	}

	if r.now().After(record.ExpiresAt) {
		delete(r.codes, email)
		return false, "OTP has expired. Please request a new one."
	}

	if record.Code != code {
		return false, "Invalid OTP. Please try again."
	}

	delete(r.codes, email)
	return true, "OTP verified successfully"
}

// HasValid reports whether an unexpired code is outstanding for the email.
func (r *OTPRepository) HasValid(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.codes[email]
	if !ok {
		return false
	}
	return !r.now().After(record.ExpiresAt)
}

// CleanupExpired drops every expired code and returns how many were removed.
func (r *OTPRepository) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	now := r.now()
	for email, record := range r.codes {
		if now.After(record.ExpiresAt) {
			delete(r.codes, email)
			removed++
		}
	}
	return removed
}
