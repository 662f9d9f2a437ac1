package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/wms-api/pkg/jwt"
)

const (
	secret = "test-secret-key-for-unit-tests"
	issuer = "wms-api-test"
	userID = "00000000-0000-0000-0000-000000000001"
)

func TestJWT_GenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "bodeguero", issuer, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, issuer, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "bodeguero", claims.Role)
}

func TestJWT_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", issuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, issuer, tok)
	assert.Error(t, err)
}

func TestJWT_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", issuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", issuer, tok)
	assert.Error(t, err)
}

func TestJWT_EmisorDistinto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", "otro-emisor", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, issuer, tok)
	assert.Error(t, err)

	_, err = pkgjwt.Parse(secret, "", tok)
	assert.NoError(t, err, "sin emisor configurado no se valida iss")
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, "admin", issuer, 60)
	assert.Error(t, err)
}
