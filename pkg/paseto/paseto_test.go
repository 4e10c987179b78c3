package paseto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow/models"
	util "dayflow/pkg/utils"
)

func newTestMaker(t *testing.T) *PasetoMaker {
	t.Helper()

	secret, err := util.GenerateBase64Key(32)
	require.NoError(t, err)

	maker, err := NewPasetoMaker(secret)
	require.NoError(t, err)
	return maker
}

func TestNewPasetoMakerRejectsBadSecrets(t *testing.T) {
	_, err := NewPasetoMaker("not base64 at all!!!")
	assert.Error(t, err)

	// Valid base64 but the wrong key length.
	_, err = NewPasetoMaker("c2hvcnQ=")
	assert.Error(t, err)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	maker := newTestMaker(t)

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        "john@dayflow.io",
		Role:         "employee",
		IsFirstLogin: true,
	}

	token, err := maker.GenerateToken(user)
	require.NoError(t, err)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "john@dayflow.io", claims.Email)
	assert.Equal(t, "employee", claims.Role)
	assert.True(t, claims.IsFirstLogin)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	maker := newTestMaker(t)

	_, err := maker.ValidateToken("v2.local.definitely-not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignKey(t *testing.T) {
	maker := newTestMaker(t)
	other := newTestMaker(t)

	token, err := maker.GenerateToken(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestResetToken(t *testing.T) {
	maker := newTestMaker(t)

	token, err := maker.GenerateResetToken("john@dayflow.io")
	require.NoError(t, err)

	assert.NoError(t, maker.ValidateResetToken(token, "john@dayflow.io"))
	assert.Error(t, maker.ValidateResetToken(token, "someone-else@dayflow.io"))
}

func TestSessionTokenIsNotAResetToken(t *testing.T) {
	maker := newTestMaker(t)

	token, err := maker.GenerateToken(&models.User{ID: primitive.NewObjectID(), Email: "john@dayflow.io"})
	require.NoError(t, err)

	assert.Error(t, maker.ValidateResetToken(token, "john@dayflow.io"))
}
