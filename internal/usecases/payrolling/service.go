// Package payrolling registra o ponto diário dos funcionários e mantém os
// acumulados de horas e renda recalculados por soma integral.
package payrolling

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

// ErrAttendanceExists sinaliza que já há ponto na data e o chamador precisa
// confirmar a sobrescrita explicitamente.
var ErrAttendanceExists = errors.New("já existe registro de ponto para a data")

const (
	clockLayout  = "15:04"
	fullDayHours = 8.0
)

type Service interface {
	RecordAttendance(ctx context.Context, req AttendanceRequest) (domain.StaffShift, error)
	SaveStaff(ctx context.Context, staff domain.StaffShift) error
	SaveStaffBatch(ctx context.Context, staff []domain.StaffShift) error
	ListStaff(ctx context.Context) ([]domain.StaffShift, error)
}

type AttendanceRequest struct {
	StaffName string `json:"staffName"`
	Date      string `json:"date"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Allowance float64 `json:"allowance"`
	Overwrite bool   `json:"overwrite"`
}

type service struct {
	store    docstore.Store
	appState *state.AppState
}

func NewService(store docstore.Store, appState *state.AppState) Service {
	return &service{
		store:    store,
		appState: appState,
	}
}

// ComputeDetail deriva um registro de ponto a partir dos horários. Saída
// anterior à entrada é lida como travessia da meia-noite. A partir de oito
// horas o dia conta um ngày công inteiro; abaixo disso, a fração das horas.
func ComputeDetail(date, checkIn, checkOut string, hourlyRate, allowance float64) (domain.StaffDailyDetail, error) {
	in, err := time.Parse(clockLayout, checkIn)
	if err != nil {
		return domain.StaffDailyDetail{}, errors.Wrapf(err, "horário de entrada inválido: %s", checkIn)
	}
	out, err := time.Parse(clockLayout, checkOut)
	if err != nil {
		return domain.StaffDailyDetail{}, errors.Wrapf(err, "horário de saída inválido: %s", checkOut)
	}

	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}

	rawHours := out.Sub(in).Hours()
	hours := utils.RoundWithTwoDecimalPlace(rawHours)

	credit := 1.0
	if hours < fullDayHours {
		credit = utils.RoundWithTwoDecimalPlace(hours / fullDayHours)
	}

	// O salário usa a duração exata; o arredondamento das horas é só exibição.
	dailySalary := math.Round(rawHours * hourlyRate)

	return domain.StaffDailyDetail{
		Date:             date,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		WorkHours:        hours,
		WorkDayCredit:    credit,
		DailySalary:      dailySalary,
		Allowance:        allowance,
		TotalDailyIncome: dailySalary + allowance,
	}, nil
}

// RecordAttendance grava o ponto do funcionário na data. Data já pontuada
// exige o flag de sobrescrita; o registro anterior é substituído no lugar.
func (s *service) RecordAttendance(ctx context.Context, req AttendanceRequest) (domain.StaffShift, error) {
	if !utils.IsValidDate(req.Date) {
		return domain.StaffShift{}, errors.Errorf("data inválida: %s", req.Date)
	}

	staff, ok := s.appState.StaffByName(req.StaffName)
	if !ok {
		return domain.StaffShift{}, errors.Errorf("funcionário não encontrado: %s", req.StaffName)
	}

	detail, err := ComputeDetail(req.Date, req.CheckIn, req.CheckOut, staff.HourlyRate, req.Allowance)
	if err != nil {
		return domain.StaffShift{}, err
	}

	// O snapshot compartilha o slice de registros com outros leitores.
	staff.Details = append([]domain.StaffDailyDetail(nil), staff.Details...)

	if idx := staff.DetailForDate(req.Date); idx >= 0 {
		if !req.Overwrite {
			return domain.StaffShift{}, ErrAttendanceExists
		}
		staff.Details[idx] = detail
	} else {
		staff.Details = append(staff.Details, detail)
	}

	staff.RecomputeTotals()

	if err := s.store.Set(ctx, docstore.CollectionStaffPayroll, staff.Name, staff); err != nil {
		return domain.StaffShift{}, errors.Wrap(err, "erro ao salvar ponto do funcionário")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"staff":     staff.Name,
		"date":      req.Date,
		"workHours": detail.WorkHours,
	}).Info("Ponto registrado")

	return staff, nil
}

// SaveStaff persiste o cadastro de um funcionário. Acumulados enviados pelo
// cliente são descartados e refeitos a partir dos registros.
func (s *service) SaveStaff(ctx context.Context, staff domain.StaffShift) error {
	if staff.Name == "" {
		return errors.New("funcionário sem nome")
	}

	staff.RecomputeTotals()

	if err := s.store.Set(ctx, docstore.CollectionStaffPayroll, staff.Name, staff); err != nil {
		return errors.Wrap(err, "erro ao salvar funcionário")
	}

	return nil
}

// SaveStaffBatch persiste vários cadastros numa única transação.
func (s *service) SaveStaffBatch(ctx context.Context, staff []domain.StaffShift) error {
	docs := make([]docstore.Document, 0, len(staff))
	for i := range staff {
		if staff[i].Name == "" {
			return errors.New("funcionário sem nome")
		}
		staff[i].RecomputeTotals()
		docs = append(docs, docstore.Document{
			Key:   staff[i].Name,
			Value: staff[i],
		})
	}

	if err := s.store.BatchSet(ctx, docstore.CollectionStaffPayroll, docs); err != nil {
		return errors.Wrap(err, "erro ao salvar funcionários em lote")
	}

	log.ForContext(ctx).WithField("staff", len(docs)).Info("Cadastro de funcionários atualizado em lote")
	return nil
}

func (s *service) ListStaff(_ context.Context) ([]domain.StaffShift, error) {
	return s.appState.Staff(), nil
}
