package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/cafe-manager-api/internal/scheduler"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
)

// RunCronJob dispara manualmente um job agendado. Hoje só existe o auditor
// do razão (type = ledger-audit).
func RunCronJob(auditService *scheduler.LedgerAuditService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch jobType {
		case "ledger-audit":
			// O job sobrevive ao fim da requisição.
			go auditService.AuditAll(context.Background())

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "started",
				"job":    jobType,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Job desconhecido: "+jobType, nil)
		}
	}
}

// GetCronStatus devolve o estado dos jobs agendados.
func GetCronStatus(auditService *scheduler.LedgerAuditService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ledger_audit": auditService.Status(),
		})
	}
}
