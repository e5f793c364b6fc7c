package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/expensing"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

// ListExpenses devolve as despesas da data pedida em ?date=.
func ListExpenses(service expensing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = utils.Today()
		}
		if !utils.IsValidDate(date) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		expenses, err := service.ListByDate(r.Context(), date)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar despesas")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar despesas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expenses)
	}
}

// AddExpense registra uma despesa e propaga o valor para o resultado do dia.
func AddExpense(service expensing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var expense domain.ExpenseRecord
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if !utils.IsValidDate(expense.Date) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		saved, err := service.Add(r.Context(), expense)
		if err != nil {
			if errors.Is(err, expensing.ErrInvalidAmount) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidAmount, "Valor da despesa deve ser positivo", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao registrar despesa")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao registrar despesa", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(saved)
	}
}

// DeleteExpense remove uma despesa e desfaz o valor no resultado do dia.
func DeleteExpense(service expensing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da despesa não fornecido", nil)
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			logrus.WithError(err).Error("Erro ao apagar despesa")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao apagar despesa", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
