package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestOTPRepo(start time.Time) (*OTPRepository, *time.Time) {
	repo := NewOTPRepository()
	current := start
	repo.now = func() time.Time { return current }
	return repo, &current
}

func TestOTPVerify(t *testing.T) {
	repo, _ := newTestOTPRepo(time.Now())
	repo.Save("john@dayflow.io", "123456")

	ok, message := repo.Verify("john@dayflow.io", "123456")
	assert.True(t, ok)
	assert.Equal(t, "OTP verified successfully", message)

	// Consumed on success; a replay fails.
	ok, message = repo.Verify("john@dayflow.io", "123456")
	assert.False(t, ok)
	assert.Equal(t, "No OTP found for this email. Please request a new one.", message)
}

func TestOTPVerifyUnknownEmail(t *testing.T) {
	repo, _ := newTestOTPRepo(time.Now())

	ok, message := repo.Verify("nobody@dayflow.io", "123456")
	assert.False(t, ok)
	assert.Equal(t, "No OTP found for this email. Please request a new one.", message)
}

func TestOTPWrongCodeAllowsRetry(t *testing.T) {
	repo, _ := newTestOTPRepo(time.Now())
	repo.Save("john@dayflow.io", "123456")

	ok, message := repo.Verify("john@dayflow.io", "654321")
	assert.False(t, ok)
	assert.Equal(t, "Invalid OTP. Please try again.", message)

	// A wrong guess does not consume the stored code.
	ok, _ = repo.Verify("john@dayflow.io", "123456")
	assert.True(t, ok)
}

func TestOTPExpiry(t *testing.T) {
	repo, clock := newTestOTPRepo(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	repo.Save("john@dayflow.io", "123456")

	*clock = clock.Add(4*time.Minute + 59*time.Second)
	assert.True(t, repo.HasValid("john@dayflow.io"))
	ok, _ := repo.Verify("john@dayflow.io", "123456")
	assert.True(t, ok, "code should still be valid just before the five-minute mark")

	repo.Save("john@dayflow.io", "777777")
	*clock = clock.Add(5*time.Minute + 1*time.Second)

	assert.False(t, repo.HasValid("john@dayflow.io"))
	ok, message := repo.Verify("john@dayflow.io", "777777")
	assert.False(t, ok)
	assert.Equal(t, "OTP has expired. Please request a new one.", message)

	// Expiry consumed the code, so the next attempt sees no code at all.
	ok, message = repo.Verify("john@dayflow.io", "777777")
	assert.False(t, ok)
	assert.Equal(t, "No OTP found for this email. Please request a new one.", message)
}

func TestOTPSaveReplacesOutstandingCode(t *testing.T) {
	repo, _ := newTestOTPRepo(time.Now())
	repo.Save("john@dayflow.io", "111111")
	repo.Save("john@dayflow.io", "222222")

	ok, message := repo.Verify("john@dayflow.io", "111111")
	assert.False(t, ok)
	assert.Equal(t, "Invalid OTP. Please try again.", message)

	ok, _ = repo.Verify("john@dayflow.io", "222222")
	assert.True(t, ok)
}

func TestOTPCleanupExpired(t *testing.T) {
	repo, clock := newTestOTPRepo(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	repo.Save("a@dayflow.io", "111111")
	repo.Save("b@dayflow.io", "222222")

	*clock = clock.Add(6 * time.Minute)
	repo.Save("c@dayflow.io", "333333")

	assert.Equal(t, 2, repo.CleanupExpired())
	assert.True(t, repo.HasValid("c@dayflow.io"))
	assert.False(t, repo.HasValid("a@dayflow.io"))
}
