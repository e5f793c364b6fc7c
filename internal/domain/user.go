package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Operator é quem está usando o painel. Não há cadastro de usuários: o login é
// uma senha única de operação e o papel vem do cadastro de funcionários (ou
// Admin, quando o nome não está na folha).
type Operator struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

const RoleAdmin = "Admin"

// Claims transportadas no token JWT emitido no login.
type Claims struct {
	OperatorName string
	OperatorRole string
	jwt.RegisteredClaims
}

// IsAdmin indica se o operador tem acesso às telas administrativas.
func (c *Claims) IsAdmin() bool {
	return c.OperatorRole == RoleAdmin
}
