package inventorying

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore/mocks"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/reconciling"
	"go.uber.org/mock/gomock"
)

func newTestState() *state.AppState {
	appState := state.New()
	appState.ReplaceMaterials([]domain.Material{
		{ID: 1, Category: "COFFEE & TEA", Name: "Espresso Blend 8R/2A", Unit: "Kg", Price: 250000},
		{ID: 2, Category: "MILK", Name: "Sữa tươi thanh trùng", Unit: "Lít", Price: 38000},
	})
	return appState
}

func TestSessionForDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appState := newTestState()
	mockStore := mocks.NewMockStore(ctrl)
	service := NewService(mockStore, appState, reconciling.NewService(mockStore, appState))

	t.Run("Sessão persistida tem precedência sobre o template", func(t *testing.T) {
		stored := domain.DailyInventorySession{
			Date:      "2026-01-15",
			Records:   []domain.InventoryRecord{{MaterialID: 1, Open: 3}},
			TotalCost: 0,
		}
		appState.ReplaceSessions([]domain.DailyInventorySession{stored})

		session, err := service.SessionForDate(context.Background(), "2026-01-15")
		require.NoError(t, err)
		assert.Equal(t, stored, session)
	})

	t.Run("Sessão nova herda a abertura do fechamento do dia anterior", func(t *testing.T) {
		appState.ReplaceSessions([]domain.DailyInventorySession{
			{
				Date: "2026-01-15",
				Records: []domain.InventoryRecord{
					{MaterialID: 1, Open: 3, Close: 2.5},
				},
			},
		})

		session, err := service.SessionForDate(context.Background(), "2026-01-16")
		require.NoError(t, err)

		require.Len(t, session.Records, 2)
		assert.Equal(t, 2.5, session.Records[0].Open)
		// Material sem registro no dia anterior abre zerado.
		assert.Equal(t, 0.0, session.Records[1].Open)
	})

	t.Run("Sem sessão anterior todos os campos abrem zerados", func(t *testing.T) {
		appState.ReplaceSessions(nil)

		session, err := service.SessionForDate(context.Background(), "2026-01-16")
		require.NoError(t, err)

		require.Len(t, session.Records, 2)
		for _, rec := range session.Records {
			assert.Equal(t, 0.0, rec.Open)
		}
	})

	t.Run("Data inválida retorna erro", func(t *testing.T) {
		_, err := service.SessionForDate(context.Background(), "16/01/2026")
		assert.Error(t, err)
	})
}

func TestSaveSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appState := newTestState()
	mockStore := mocks.NewMockStore(ctrl)
	service := NewService(mockStore, appState, reconciling.NewService(mockStore, appState))

	t.Run("Recalcula consumo, custo e total antes de persistir", func(t *testing.T) {
		var savedSession domain.DailyInventorySession
		var savedResult domain.DailyBusinessResult

		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionInventorySessions, "2026-01-16", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, value any) error {
				savedSession = value.(domain.DailyInventorySession)
				return nil
			})
		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionBusinessResults, "2026-01-16", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, value any) error {
				savedResult = value.(domain.DailyBusinessResult)
				return nil
			})

		session, err := service.SaveSession(context.Background(), domain.DailyInventorySession{
			Date: "2026-01-16",
			Records: []domain.InventoryRecord{
				// 2 + 1 - 0.5 = 2.5 usados a 250000 = 625000
				{MaterialID: 1, Open: 2, Import: 1, Close: 0.5},
				// Fechamento maior que abertura+entrada trava o consumo em zero.
				{MaterialID: 2, Open: 1, Import: 0, Close: 5},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 2.5, session.Records[0].Used)
		assert.Equal(t, 625000.0, session.Records[0].Cost)
		assert.Equal(t, 0.0, session.Records[1].Used)
		assert.Equal(t, 0.0, session.Records[1].Cost)
		assert.Equal(t, 625000.0, session.TotalCost)

		assert.Equal(t, session, savedSession)

		// Sem resultado existente na data, nasce um zerado com o lucro
		// negativado pelo custo.
		assert.Equal(t, 625000.0, savedResult.CostOfGoodsSold)
		assert.Equal(t, -625000.0, savedResult.NetProfit)
	})

	t.Run("Custo congela o preço vigente no momento da edição", func(t *testing.T) {
		appState.ReplaceMaterials([]domain.Material{
			{ID: 1, Name: "Espresso Blend 8R/2A", Unit: "Kg", Price: 300000},
		})

		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionInventorySessions, "2026-01-17", gomock.Any()).
			Return(nil)
		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionBusinessResults, "2026-01-17", gomock.Any()).
			Return(nil)

		session, err := service.SaveSession(context.Background(), domain.DailyInventorySession{
			Date: "2026-01-17",
			Records: []domain.InventoryRecord{
				{MaterialID: 1, Open: 1, Import: 0, Close: 0},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 300000.0, session.Records[0].Cost)
	})

	t.Run("Material removido do catálogo custa zero", func(t *testing.T) {
		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionInventorySessions, "2026-01-18", gomock.Any()).
			Return(nil)
		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionBusinessResults, "2026-01-18", gomock.Any()).
			Return(nil)

		session, err := service.SaveSession(context.Background(), domain.DailyInventorySession{
			Date: "2026-01-18",
			Records: []domain.InventoryRecord{
				{MaterialID: 99, Open: 2, Import: 0, Close: 1},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1.0, session.Records[0].Used)
		assert.Equal(t, 0.0, session.Records[0].Cost)
	})
}

func TestSaveMaterials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appState := newTestState()
	mockStore := mocks.NewMockStore(ctrl)
	service := NewService(mockStore, appState, reconciling.NewService(mockStore, appState))

	t.Run("Persiste o catálogo em lote chaveado pelo id", func(t *testing.T) {
		mockStore.EXPECT().
			BatchSet(gomock.Any(), docstore.CollectionMaterials, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, docs []docstore.Document) error {
				require.Len(t, docs, 2)
				assert.Equal(t, "1", docs[0].Key)
				assert.Equal(t, "2", docs[1].Key)
				return nil
			})

		err := service.SaveMaterials(context.Background(), []domain.Material{
			{ID: 1, Name: "Espresso Blend 8R/2A", Price: 250000},
			{ID: 2, Name: "Sữa tươi thanh trùng", Price: 38000},
		})
		assert.NoError(t, err)
	})

	t.Run("Material sem nome é rejeitado", func(t *testing.T) {
		err := service.SaveMaterials(context.Background(), []domain.Material{{ID: 3}})
		assert.Error(t, err)
	})
}
