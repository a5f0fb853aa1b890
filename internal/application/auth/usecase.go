package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/jwt"
)

// adminSubject sujeto de los tokens emitidos por PIN; no corresponde a un empleado.
const adminSubject = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: PIN de administrador y login de operario.
type AuthUseCase struct {
	employeeRepo repository.EmployeeRepository
	pinHash      []byte
	jwtCfg       JWTConfig
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
// pinHash es un hash bcrypt; si viene vacío se hashea pin al arrancar.
func NewAuthUseCase(employeeRepo repository.EmployeeRepository, pin, pinHash string, jwtCfg JWTConfig) (*AuthUseCase, error) {
	hash := []byte(pinHash)
	if len(hash) == 0 {
		if pin == "" {
			return nil, fmt.Errorf("auth: se requiere ADMIN_PIN o ADMIN_PIN_HASH")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash del PIN: %w", err)
		}
	}
	return &AuthUseCase{employeeRepo: employeeRepo, pinHash: hash, jwtCfg: jwtCfg, now: time.Now}, nil
}

// LoginPIN verifica el PIN de administrador y emite un token con rol admin.
func (uc *AuthUseCase) LoginPIN(_ context.Context, in dto.PinLoginRequest) (*dto.TokenResponse, error) {
	if strings.TrimSpace(in.PIN) == "" {
		return nil, domain.Invalid("pin", "obligatorio")
	}
	if err := bcrypt.CompareHashAndPassword(uc.pinHash, []byte(in.PIN)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(adminSubject, "Administrador", jwt.RoleAdmin)
}

// LoginOperator emite un token de operario para un empleado activo y en planta.
func (uc *AuthUseCase) LoginOperator(ctx context.Context, in dto.OperatorLoginRequest) (*dto.TokenResponse, error) {
	id := strings.TrimSpace(in.EmployeeID)
	if id == "" {
		return nil, domain.Invalid("amann_id", "obligatorio")
	}
	emp, err := uc.employeeRepo.GetByID(ctx, entity.EmployeeID(id))
	if err != nil {
		return nil, domain.StoreFailure("login operario", err)
	}
	if emp == nil {
		return nil, domain.ErrUnauthorized
	}
	if !emp.Active || emp.Status != entity.EmployeeStatusWorking {
		return nil, domain.ErrForbidden
	}
	return uc.issue(string(emp.ID), emp.Name, jwt.RoleOperator)
}

func (uc *AuthUseCase) issue(subject, name, role string) (*dto.TokenResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, subject, name, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		Role:      role,
		Subject:   subject,
		ExpiresAt: uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}, nil
}
