package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore/mocks"
	"github.com/vfg2006/cafe-manager-api/internal/config"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newAuditService(t *testing.T, store docstore.Store) *LedgerAuditService {
	t.Helper()

	return NewLedgerAuditService(store, &config.Config{
		LedgerAudit: config.LedgerAudit{
			CronSchedule: "0 3 * * *",
			Tolerance:    0.01,
			Enabled:      true,
		},
	})
}

func resultSnapshot(t *testing.T, results ...domain.DailyBusinessResult) docstore.Snapshot {
	t.Helper()

	snapshot := make(docstore.Snapshot, len(results))
	for _, result := range results {
		raw, err := json.Marshal(result)
		require.NoError(t, err)
		snapshot[result.Date] = raw
	}
	return snapshot
}

func TestAuditAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	service := newAuditService(t, mockStore)

	t.Run("Conta apenas os resultados que violam a identidade de lucro", func(t *testing.T) {
		consistent := domain.DailyBusinessResult{
			Date:               "2026-01-15",
			NetRevenue:         2000000,
			CostOfGoodsSold:    500000,
			StaffTotalCost:     400000,
			OperatingTotalCost: 100000,
		}
		consistent.RecomputeNetProfit()

		drifted := consistent
		drifted.Date = "2026-01-16"
		drifted.NetProfit = 999999 // valor gravado por um produtor que perdeu a corrida

		mockStore.EXPECT().
			List(gomock.Any(), docstore.CollectionBusinessResults).
			Return(resultSnapshot(t, consistent, drifted), nil)

		assert.Equal(t, 1, service.AuditAll(context.Background()))
	})

	t.Run("Documento ilegível é ignorado sem abortar a varredura", func(t *testing.T) {
		snapshot := resultSnapshot(t, domain.DailyBusinessResult{Date: "2026-01-17"})
		snapshot["lixo"] = []byte("{nao é json")

		mockStore.EXPECT().
			List(gomock.Any(), docstore.CollectionBusinessResults).
			Return(snapshot, nil)

		assert.Equal(t, 0, service.AuditAll(context.Background()))
	})

	t.Run("Erro do store devolve zero divergências", func(t *testing.T) {
		mockStore.EXPECT().
			List(gomock.Any(), docstore.CollectionBusinessResults).
			Return(nil, errors.New("conexão perdida"))

		assert.Equal(t, 0, service.AuditAll(context.Background()))
	})
}

func TestStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	service := newAuditService(t, mockStore)

	status := service.Status()
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 3 * * *", status["cron_schedule"])
	assert.Equal(t, false, status["running"])
	assert.NotContains(t, status, "last_audit_started_at")

	mockStore.EXPECT().
		List(gomock.Any(), docstore.CollectionBusinessResults).
		Return(docstore.Snapshot{}, nil)
	service.AuditAll(context.Background())

	status = service.Status()
	assert.Contains(t, status, "last_audit_started_at")
	assert.Contains(t, status, "last_audit_completed_at")
}

func TestStatusDuringAudit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	service := newAuditService(t, mockStore)

	mockStore.EXPECT().
		List(gomock.Any(), docstore.CollectionBusinessResults).
		Return(docstore.Snapshot{}, nil).
		AnyTimes()

	// Leituras do status concorrentes com a auditoria. Sob -race, qualquer
	// escrita dos carimbos fora do mutex fica visível aqui.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.AuditAll(context.Background())
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				service.Status()
			}
		}()
	}
	wg.Wait()

	status := service.Status()
	assert.Equal(t, false, status["running"])
	assert.Contains(t, status, "last_audit_started_at")
}
