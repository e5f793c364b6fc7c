package payrolling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore/mocks"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"go.uber.org/mock/gomock"
)

func TestComputeDetail(t *testing.T) {
	tests := []struct {
		name       string
		checkIn    string
		checkOut   string
		hourlyRate float64
		allowance  float64
		expected   domain.StaffDailyDetail
		expectErr  bool
	}{
		{
			name:       "Turno diurno completo de 8 horas",
			checkIn:    "14:00",
			checkOut:   "22:00",
			hourlyRate: 28000,
			allowance:  25000,
			expected: domain.StaffDailyDetail{
				WorkHours:        8,
				WorkDayCredit:    1,
				DailySalary:      224000,
				Allowance:        25000,
				TotalDailyIncome: 249000,
			},
		},
		{
			name:       "Turno noturno cruzando a meia-noite conta como 8 horas",
			checkIn:    "22:00",
			checkOut:   "06:00",
			hourlyRate: 30000,
			expected: domain.StaffDailyDetail{
				WorkHours:        8,
				WorkDayCredit:    1,
				DailySalary:      240000,
				TotalDailyIncome: 240000,
			},
		},
		{
			name:       "Meio período credita fração do dia",
			checkIn:    "08:00",
			checkOut:   "12:00",
			hourlyRate: 28000,
			expected: domain.StaffDailyDetail{
				WorkHours:        4,
				WorkDayCredit:    0.5,
				DailySalary:      112000,
				TotalDailyIncome: 112000,
			},
		},
		{
			name:       "Turno acima de 8 horas mantém crédito de um dia",
			checkIn:    "08:00",
			checkOut:   "18:30",
			hourlyRate: 28000,
			expected: domain.StaffDailyDetail{
				WorkHours:        10.5,
				WorkDayCredit:    1,
				DailySalary:      294000,
				TotalDailyIncome: 294000,
			},
		},
		{
			name:       "Entrada e saída iguais contam zero horas",
			checkIn:    "09:00",
			checkOut:   "09:00",
			hourlyRate: 28000,
			allowance:  25000,
			expected: domain.StaffDailyDetail{
				WorkHours:        0,
				WorkDayCredit:    0,
				DailySalary:      0,
				Allowance:        25000,
				TotalDailyIncome: 25000,
			},
		},
		{
			name:       "Salário usa a duração exata e não as horas arredondadas",
			checkIn:    "08:00",
			checkOut:   "12:50",
			hourlyRate: 28000,
			expected: domain.StaffDailyDetail{
				WorkHours:        4.83,
				WorkDayCredit:    0.6,
				DailySalary:      135333,
				TotalDailyIncome: 135333,
			},
		},
		{
			name:      "Horário inválido retorna erro",
			checkIn:   "25:99",
			checkOut:  "18:00",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := ComputeDetail("2026-01-15", tt.checkIn, tt.checkOut, tt.hourlyRate, tt.allowance)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2026-01-15", detail.Date)
			assert.Equal(t, tt.expected.WorkHours, detail.WorkHours)
			assert.Equal(t, tt.expected.WorkDayCredit, detail.WorkDayCredit)
			assert.Equal(t, tt.expected.DailySalary, detail.DailySalary)
			assert.Equal(t, tt.expected.TotalDailyIncome, detail.TotalDailyIncome)
		})
	}
}

func TestRecordAttendance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appState := state.New()
	appState.ReplaceStaff([]domain.StaffShift{
		{
			Name:       "Hoàng Vũ Thanh Thủy",
			Role:       "Pha chế",
			HourlyRate: 28000,
			Details: []domain.StaffDailyDetail{
				{
					Date:             "2026-01-14",
					WorkHours:        8,
					WorkDayCredit:    1,
					DailySalary:      224000,
					Allowance:        25000,
					TotalDailyIncome: 249000,
				},
			},
		},
	})

	mockStore := mocks.NewMockStore(ctrl)
	service := NewService(mockStore, appState)

	t.Run("Registro novo recalcula os acumulados por soma integral", func(t *testing.T) {
		var saved domain.StaffShift
		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionStaffPayroll, "Hoàng Vũ Thanh Thủy", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, value any) error {
				saved = value.(domain.StaffShift)
				return nil
			})

		staff, err := service.RecordAttendance(context.Background(), AttendanceRequest{
			StaffName: "Hoàng Vũ Thanh Thủy",
			Date:      "2026-01-15",
			CheckIn:   "14:00",
			CheckOut:  "22:00",
			Allowance: 25000,
		})
		require.NoError(t, err)

		assert.Len(t, saved.Details, 2)
		assert.Equal(t, 16.0, staff.TotalHours)
		assert.Equal(t, 498000.0, staff.Salary)
	})

	t.Run("Data já pontuada sem flag de sobrescrita retorna conflito", func(t *testing.T) {
		_, err := service.RecordAttendance(context.Background(), AttendanceRequest{
			StaffName: "Hoàng Vũ Thanh Thủy",
			Date:      "2026-01-14",
			CheckIn:   "08:00",
			CheckOut:  "12:00",
		})
		assert.ErrorIs(t, err, ErrAttendanceExists)
	})

	t.Run("Sobrescrita substitui o registro no lugar", func(t *testing.T) {
		var saved domain.StaffShift
		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionStaffPayroll, "Hoàng Vũ Thanh Thủy", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, value any) error {
				saved = value.(domain.StaffShift)
				return nil
			})

		staff, err := service.RecordAttendance(context.Background(), AttendanceRequest{
			StaffName: "Hoàng Vũ Thanh Thủy",
			Date:      "2026-01-14",
			CheckIn:   "08:00",
			CheckOut:  "12:00",
			Overwrite: true,
		})
		require.NoError(t, err)

		assert.Len(t, saved.Details, 1)
		assert.Equal(t, 4.0, staff.TotalHours)
		assert.Equal(t, 112000.0, staff.Salary)
	})

	t.Run("Funcionário desconhecido retorna erro", func(t *testing.T) {
		_, err := service.RecordAttendance(context.Background(), AttendanceRequest{
			StaffName: "Ninguém",
			Date:      "2026-01-15",
			CheckIn:   "08:00",
			CheckOut:  "12:00",
		})
		assert.Error(t, err)
	})
}
