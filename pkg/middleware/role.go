package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
)

// AdminOnly restringe a rota a operadores com papel Admin. Funcionários comuns
// só enxergam a própria ficha de ponto.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ContextKeyOperator).(*domain.Claims)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Operador não autenticado", nil)
				return
			}

			if !claims.IsAdmin() {
				logrus.Warnf("Acesso negado para operador %s (papel %s)", claims.OperatorName, claims.OperatorRole)
				apiErrors.WriteError(w, apiErrors.ErrAdminOnly, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AllRoles exige apenas um operador autenticado, qualquer papel.
func AllRoles() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Value(ContextKeyOperator).(*domain.Claims); !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Operador não autenticado", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
