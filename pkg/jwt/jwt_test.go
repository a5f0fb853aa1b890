package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate(secret, "E001", "Nguyen Van A", jwt.RoleOperator, "repuestos-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "E001", claims.Subject)
	assert.Equal(t, jwt.RoleOperator, claims.Role)
	assert.Equal(t, "Nguyen Van A", claims.Name)
	assert.Equal(t, "repuestos-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, "admin", "", jwt.RoleAdmin, "", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate(secret, "admin", "", jwt.RoleAdmin, "", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SinSecretOSubject(t *testing.T) {
	_, err := jwt.Generate("", "E001", "", jwt.RoleOperator, "", 5)
	assert.Error(t, err)

	_, err = jwt.Generate(secret, "", "", jwt.RoleOperator, "", 5)
	assert.Error(t, err)
}
