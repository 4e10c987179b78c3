package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"regexp"
)

// GenerateBase64Key generates a secure 32-byte key and returns it as base64 URL-encoded
func GenerateBase64Key(size int) (string, error) {
	if size != 32 {
		return "", fmt.Errorf("PASETO v2 local requires a 32-byte key")
	}

	key := make([]byte, size)
	_, err := rand.Read(key)
	if err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}

	return base64.URLEncoding.EncodeToString(key), nil
}

// GenerateOTP returns a 6-digit numeric one-time passcode.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail applies the same loose shape check the password-reset
// frontend uses before it ever calls the server.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// FormatEmployeeCode renders the display code for the nth employee.
func FormatEmployeeCode(n int64) string {
	return fmt.Sprintf("EMP-%04d", n)
}
