package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/payrolling"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
	"github.com/vfg2006/cafe-manager-api/pkg/middleware"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

// ListStaff devolve o cadastro de funcionários. Operador comum enxerga só a
// própria ficha; administradores enxergam todas.
func ListStaff(service payrolling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := service.ListStaff(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar funcionários")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar funcionários", nil)
			return
		}

		claims, ok := r.Context().Value(middleware.ContextKeyOperator).(*domain.Claims)
		if ok && !claims.IsAdmin() {
			own := make([]domain.StaffShift, 0, 1)
			for _, st := range staff {
				if st.Name == claims.OperatorName {
					own = append(own, st)
					break
				}
			}
			staff = own
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(staff)
	}
}

func SaveStaff(service payrolling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var staff domain.StaffShift
		if err := json.NewDecoder(r.Body).Decode(&staff); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if staff.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do funcionário é obrigatório", nil)
			return
		}

		if err := service.SaveStaff(r.Context(), staff); err != nil {
			logrus.WithError(err).Error("Erro ao salvar funcionário")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao salvar funcionário", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SaveStaffBatch(service payrolling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var staff []domain.StaffShift
		if err := json.NewDecoder(r.Body).Decode(&staff); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(staff) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lista de funcionários vazia", nil)
			return
		}

		if err := service.SaveStaffBatch(r.Context(), staff); err != nil {
			logrus.WithError(err).Error("Erro ao salvar funcionários em lote")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao salvar funcionários", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RecordAttendance registra o ponto do dia. Data já pontuada sem o flag de
// sobrescrita responde 409 para o cliente pedir confirmação.
func RecordAttendance(service payrolling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payrolling.AttendanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.StaffName == "" || req.CheckIn == "" || req.CheckOut == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome, entrada e saída são obrigatórios", nil)
			return
		}

		if !utils.IsValidDate(req.Date) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		// Funcionário comum só registra o próprio ponto.
		claims, ok := r.Context().Value(middleware.ContextKeyOperator).(*domain.Claims)
		if ok && !claims.IsAdmin() && claims.OperatorName != req.StaffName {
			apiErrors.WriteError(w, apiErrors.ErrAdminOnly, "Você só pode registrar o próprio ponto", nil)
			return
		}

		staff, err := service.RecordAttendance(r.Context(), req)
		if err != nil {
			if errors.Is(err, payrolling.ErrAttendanceExists) {
				apiErrors.WriteError(w, apiErrors.ErrAttendanceExists, "Já existe registro de ponto para esta data", map[string]any{
					"date": req.Date,
				})
				return
			}
			logrus.WithError(err).Error("Erro ao registrar ponto")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao registrar ponto", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(staff)
	}
}
