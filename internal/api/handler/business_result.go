package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/reconciling"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

// ListBusinessResults devolve todos os fechamentos diários do snapshot local.
func ListBusinessResults(appState *state.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(appState.BusinessResults())
	}
}

// PrefillResultForm devolve o formulário de fechamento pré-preenchido da data
// pedida em ?date=.
func PrefillResultForm(service reconciling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = utils.Today()
		}
		if !utils.IsValidDate(date) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		form, err := service.PrefillForm(r.Context(), date)
		if err != nil {
			logrus.WithError(err).Error("Erro ao montar formulário de fechamento")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar formulário", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(form)
	}
}

// SubmitBusinessResult grava o fechamento manual do dia.
func SubmitBusinessResult(service reconciling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var result domain.DailyBusinessResult
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if !utils.IsValidDate(result.Date) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		saved, err := service.SubmitManual(r.Context(), result)
		if err != nil {
			logrus.WithError(err).Error("Erro ao salvar resultado do dia")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao salvar resultado do dia", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(saved)
	}
}
