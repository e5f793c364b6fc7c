package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/selling"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
)

// GetMenuAnalysis devolve a análise de menu do período ?from=&to= (pontas
// abertas quando ausentes).
func GetMenuAnalysis(service selling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromDate := r.URL.Query().Get("from")
		toDate := r.URL.Query().Get("to")

		analysis, err := service.Analyze(r.Context(), fromDate, toDate)
		if err != nil {
			logrus.WithError(err).Error("Erro na análise de menu")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido, use datas YYYY-MM-DD", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(analysis)
	}
}

// SaveSalesBatch grava fatos de venda por item em lote.
func SaveSalesBatch(service selling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sales []domain.MenuItemSales
		if err := json.NewDecoder(r.Body).Decode(&sales); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(sales) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lista de vendas vazia", nil)
			return
		}

		if err := service.SaveBatch(r.Context(), sales); err != nil {
			logrus.WithError(err).Error("Erro ao salvar vendas em lote")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao salvar vendas", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
