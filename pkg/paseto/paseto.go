package paseto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow/models"
)

type Claims struct {
	UserID       primitive.ObjectID `json:"user_id"`
	Email        string             `json:"email"`
	Role         string             `json:"role"`
	IsFirstLogin bool               `json:"is_first_login"`
}

const (
	sessionTokenDuration = 24 * time.Hour
	resetTokenDuration   = 15 * time.Minute
)

type PasetoMaker struct {
	instance     *paseto.V2
	symmetricKey []byte
}

func NewPasetoMaker(secretBase64 string) (*PasetoMaker, error) {
	var decodedKey []byte
	var err error

	// Accept the padded URL, raw URL and standard base64 variants.
	decodedKey, err = base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		decodedKey, err = base64.RawURLEncoding.DecodeString(secretBase64)
		if err != nil {
			decodedKey, err = base64.StdEncoding.DecodeString(secretBase64)
			if err != nil {
				return nil, fmt.Errorf("failed to decode PASETO secret: %w", err)
			}
		}
	}

	if len(decodedKey) != 32 {
		return nil, fmt.Errorf("PASETO secret must be exactly 32 bytes after Base64 decoding, got %d bytes", len(decodedKey))
	}

	return &PasetoMaker{
		instance:     paseto.NewV2(),
		symmetricKey: decodedKey,
	}, nil
}

func (m *PasetoMaker) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	exp := now.Add(sessionTokenDuration)

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: exp,
		NotBefore:  now,
	}

	// Custom claims are stored as strings
	token.Set("user_id", user.ID.Hex())
	token.Set("email", user.Email)
	token.Set("role", user.Role)
	token.Set("is_first_login", fmt.Sprintf("%v", user.IsFirstLogin))

	return m.instance.Encrypt(m.symmetricKey, token, "")
}

// GenerateResetToken issues the short-lived token handed out by a
// successful OTP verification and required by the password-reset endpoint.
func (m *PasetoMaker) GenerateResetToken(email string) (string, error) {
	now := time.Now()
	exp := now.Add(resetTokenDuration)

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: exp,
		NotBefore:  now,
	}

	token.Set("email", email)
	token.Set("purpose", models.OTPPurposePasswordReset)

	return m.instance.Encrypt(m.symmetricKey, token, "")
}

func (m *PasetoMaker) ValidateToken(tokenString string) (*Claims, error) {
	token, err := m.decrypt(tokenString)
	if err != nil {
		return nil, err
	}

	var claims Claims

	userIDStr := token.Get("user_id")
	objectID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %v", err)
	}
	claims.UserID = objectID
	claims.Email = token.Get("email")
	claims.Role = token.Get("role")
	claims.IsFirstLogin = (token.Get("is_first_login") == "true")

	return &claims, nil
}

// ValidateResetToken checks that the token was issued for the password-reset
// purpose and for the given email.
func (m *PasetoMaker) ValidateResetToken(tokenString, email string) error {
	token, err := m.decrypt(tokenString)
	if err != nil {
		return err
	}

	if token.Get("purpose") != models.OTPPurposePasswordReset {
		return fmt.Errorf("token was not issued for password reset")
	}
	if token.Get("email") != email {
		return fmt.Errorf("token was not issued for this email")
	}
	return nil
}

func (m *PasetoMaker) decrypt(tokenString string) (*paseto.JSONToken, error) {
	var token paseto.JSONToken
	var footer string

	err := m.instance.Decrypt(tokenString, m.symmetricKey, &token, &footer)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	return &token, nil
}
