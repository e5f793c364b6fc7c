package selling

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

func TestAnalyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appState := state.New()
	mockStore := mocks.NewMockStore(ctrl)
	service := NewService(mockStore, appState)

	appState.ReplaceSales([]domain.MenuItemSales{
		{ID: "s1", Date: "2026-01-15", ItemName: "Cà phê sữa đá", Quantity: 30, Revenue: 900000},
		{ID: "s2", Date: "2026-01-16", ItemName: "Cà phê sữa đá", Quantity: 25, Revenue: 750000},
		{ID: "s3", Date: "2026-01-15", ItemName: "Bạc xỉu", Quantity: 20, Revenue: 700000},
		{ID: "s4", Date: "2026-01-15", ItemName: "Trà đào", Quantity: 10, Revenue: 450000},
		{ID: "s5", Date: "2026-01-16", ItemName: "Espresso", Quantity: 5, Revenue: 175000},
	})

	t.Run("Agrega por item e ordena por quantidade decrescente", func(t *testing.T) {
		analysis, err := service.Analyze(context.Background(), "", "")
		require.NoError(t, err)

		require.Len(t, analysis.Items, 4)
		assert.Equal(t, "Cà phê sữa đá", analysis.Items[0].Name)
		assert.Equal(t, 55, analysis.Items[0].Quantity)
		assert.Equal(t, 1650000.0, analysis.Items[0].Revenue)

		assert.Equal(t, 90, analysis.TotalQuantity)
		assert.Equal(t, 2975000.0, analysis.TotalRevenue)

		// Com menos itens que o corte, destaques e parados cobrem a lista toda.
		assert.Len(t, analysis.TopItems, 4)
		assert.Len(t, analysis.SlowItems, 4)
		assert.Equal(t, "Espresso", analysis.SlowItems[len(analysis.SlowItems)-1].Name)
	})

	t.Run("Filtra pelo período quando as datas são informadas", func(t *testing.T) {
		analysis, err := service.Analyze(context.Background(), "2026-01-16", "2026-01-16")
		require.NoError(t, err)

		require.Len(t, analysis.Items, 2)
		assert.Equal(t, 30, analysis.TotalQuantity)
	})

	t.Run("Período inválido retorna erro", func(t *testing.T) {
		_, err := service.Analyze(context.Background(), "16/01/2026", "")
		assert.Error(t, err)
	})

	t.Run("Sem vendas devolve análise vazia", func(t *testing.T) {
		analysis, err := service.Analyze(context.Background(), "2025-01-01", "2025-01-31")
		require.NoError(t, err)
		assert.Empty(t, analysis.Items)
		assert.Empty(t, analysis.TopItems)
	})
}

func TestSaveBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appState := state.New()
	mockStore := mocks.NewMockStore(ctrl)
	service := NewService(mockStore, appState)

	t.Run("Gera chaves datadas para vendas sem id", func(t *testing.T) {
		mockStore.EXPECT().
			BatchSet(gomock.Any(), docstore.CollectionSalesDetails, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, docs []docstore.Document) error {
				require.Len(t, docs, 2)
				assert.Equal(t, "2026-01-15-Cà_phê", docs[0].Key)
				assert.Contains(t, docs[1].Key, "2026-01-15-")
				return nil
			})

		err := service.SaveBatch(context.Background(), []domain.MenuItemSales{
			{ID: "2026-01-15-Cà_phê", Date: "2026-01-15", ItemName: "Cà phê", Quantity: 10, Revenue: 300000},
			{Date: "2026-01-15", ItemName: "Bạc xỉu", Quantity: 5, Revenue: 175000},
		})
		assert.NoError(t, err)
	})

	t.Run("Data inválida aborta o lote inteiro", func(t *testing.T) {
		err := service.SaveBatch(context.Background(), []domain.MenuItemSales{
			{Date: "ontem", ItemName: "Cà phê"},
		})
		assert.Error(t, err)
	})
}
