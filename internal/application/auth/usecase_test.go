package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Repuestos-api/internal/application/auth"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/pkg/jwt"
)

const secret = "test-secret"

type employees map[entity.EmployeeID]*entity.Employee

func (e employees) Create(context.Context, *entity.Employee) error { return nil }
func (e employees) Update(context.Context, *entity.Employee) error { return nil }
func (e employees) List(context.Context, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (e employees) GetByID(_ context.Context, id entity.EmployeeID) (*entity.Employee, error) {
	return e[id], nil
}

func newAuth(t *testing.T, pin, hash string) *auth.AuthUseCase {
	t.Helper()
	repo := employees{
		"E001": {ID: "E001", Name: "An", Active: true, Status: entity.EmployeeStatusWorking},
		"E002": {ID: "E002", Name: "Binh", Active: true, Status: entity.EmployeeStatusResigned},
		"E003": {ID: "E003", Name: "Chi", Active: false, Status: entity.EmployeeStatusWorking},
	}
	uc, err := auth.NewAuthUseCase(repo, pin, hash, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "repuestos-api"})
	require.NoError(t, err)
	return uc
}

func TestLoginPIN_EmiteTokenAdmin(t *testing.T) {
	uc := newAuth(t, "1234", "")

	out, err := uc.LoginPIN(context.Background(), dto.PinLoginRequest{PIN: "1234"})
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, out.Role)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestLoginPIN_ConHashPreconfigurado(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("9876"), bcrypt.MinCost)
	require.NoError(t, err)
	uc := newAuth(t, "", string(hash))

	_, err = uc.LoginPIN(context.Background(), dto.PinLoginRequest{PIN: "9876"})
	assert.NoError(t, err)
	_, err = uc.LoginPIN(context.Background(), dto.PinLoginRequest{PIN: "0000"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.LoginPIN(context.Background(), dto.PinLoginRequest{PIN: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewAuthUseCase_SinPIN(t *testing.T) {
	_, err := auth.NewAuthUseCase(employees{}, "", "", auth.JWTConfig{Secret: secret})
	assert.Error(t, err)
}

func TestLoginOperator(t *testing.T) {
	uc := newAuth(t, "1234", "")
	ctx := context.Background()

	out, err := uc.LoginOperator(ctx, dto.OperatorLoginRequest{EmployeeID: " E001 "})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "E001", claims.Subject)
	assert.Equal(t, jwt.RoleOperator, claims.Role)
	assert.Equal(t, "An", claims.Name)

	_, err = uc.LoginOperator(ctx, dto.OperatorLoginRequest{EmployeeID: "E002"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "empleado retirado")
	_, err = uc.LoginOperator(ctx, dto.OperatorLoginRequest{EmployeeID: "E003"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "empleado inactivo")
	_, err = uc.LoginOperator(ctx, dto.OperatorLoginRequest{EmployeeID: "E404"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.LoginOperator(ctx, dto.OperatorLoginRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
