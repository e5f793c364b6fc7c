package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/cafe-manager-api/internal/config"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminOperatorName é o operador fixo com perfil de administrador, sempre
// disponível mesmo antes de qualquer funcionário ser cadastrado.
const AdminOperatorName = "Admin"

type Authenticator interface {
	Operators() []domain.Operator
	Login(name, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	appState     *state.AppState
	cfg          *config.Config
	passwordHash []byte
}

func NewService(appState *state.AppState, cfg *config.Config) (Authenticator, error) {
	// A senha compartilhada de operação nunca fica em memória em texto puro
	// depois da construção do serviço.
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.OperatorPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Service{
		appState:     appState,
		cfg:          cfg,
		passwordHash: hash,
	}, nil
}

// Operators lista os operadores disponíveis para login: o administrador fixo
// mais todos os funcionários cadastrados.
func (s *Service) Operators() []domain.Operator {
	operators := []domain.Operator{
		{Name: AdminOperatorName, Role: domain.RoleAdmin},
	}

	for _, staff := range s.appState.Staff() {
		operators = append(operators, domain.Operator{
			Name: staff.Name,
			Role: staff.Role,
		})
	}

	return operators
}

func (s *Service) Login(name, password string) (string, error) {
	if name == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do operador e senha são obrigatórios")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		log.L.WithField("operator", name).Warn("Tentativa de login com senha incorreta")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha de operação incorreta")
	}

	role := domain.RoleAdmin
	if name != AdminOperatorName {
		staff, ok := s.appState.StaffByName(name)
		if !ok {
			return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Operador desconhecido")
		}
		role = staff.Role
	}

	token, err := s.generateJWT(name, role)
	if err != nil {
		return "", err
	}

	log.L.WithFields(log.Fields{
		"operator": name,
		"role":     role,
	}).Info("Login realizado com sucesso")

	return token, nil
}

func (s *Service) generateJWT(name, role string) (string, error) {
	claims := domain.Claims{
		OperatorName: name,
		OperatorRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}
