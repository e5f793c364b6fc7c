package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/inventorying"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

// GetInventorySession devolve a sessão de estoque da data, criando uma em
// branco com a abertura herdada do dia anterior quando não há sessão salva.
func GetInventorySession(service inventorying.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := httprouter.ParamsFromContext(r.Context()).ByName("date")
		if !utils.IsValidDate(date) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		session, err := service.SessionForDate(r.Context(), date)
		if err != nil {
			logrus.WithError(err).Error("Erro ao montar sessão de estoque")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar sessão de estoque", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(session)
	}
}

// SaveInventorySession persiste a sessão do dia e sincroniza o custo total
// com o resultado.
func SaveInventorySession(service inventorying.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var session domain.DailyInventorySession
		if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if !utils.IsValidDate(session.Date) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		saved, err := service.SaveSession(r.Context(), session)
		if err != nil {
			logrus.WithError(err).Error("Erro ao salvar sessão de estoque")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao salvar sessão de estoque", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(saved)
	}
}

func ListMaterials(appState *state.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(appState.Materials())
	}
}

// SaveMaterialsBatch substitui o catálogo de materiais enviado em lote.
func SaveMaterialsBatch(service inventorying.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var materials []domain.Material
		if err := json.NewDecoder(r.Body).Decode(&materials); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(materials) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lista de materiais vazia", nil)
			return
		}

		if err := service.SaveMaterials(r.Context(), materials); err != nil {
			logrus.WithError(err).Error("Erro ao salvar materiais")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao salvar materiais", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
