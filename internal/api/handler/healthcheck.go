package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
)

// HealthcheckHandler responde com o horário atual. Sessão marcada como
// quebrada por erro de acesso ao store responde 503 para o balanceador tirar
// a instância de rotação.
func HealthcheckHandler(appState *state.AppState) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := appState.Failure(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrStoreAccess, "Sem acesso ao document store, verifique as credenciais do banco", nil)
			return
		}

		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
