package analyzing

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	docstoremocks "github.com/vfg2006/cafe-manager-api/infrastructure/docstore/mocks"
	"github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini"
	geminimocks "github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini/mocks"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestAnalyzeImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := docstoremocks.NewMockStore(ctrl)
	mockExtractor := geminimocks.NewMockExtractor(ctrl)
	service := NewService(mockStore, mockExtractor)

	t.Run("Recalcula totais e carimba as vendas com a data do resultado", func(t *testing.T) {
		mockExtractor.EXPECT().
			ExtractFromImage(gomock.Any(), "imagem-base64", "image/jpeg").
			Return(&domain.ExtractedData{
				BusinessResults: []domain.DailyBusinessResult{
					{
						Date:           "2026-01-15",
						NetRevenue:     2500000,
						StaffSalary:    400000,
						StaffBonus:     50000,
						StaffAllowance: 25000,
						// Totais errados de propósito: o modelo não é confiável.
						StaffTotalCost:     1,
						Marketing:          100000,
						Tools:              50000,
						OperatingTotalCost: 1,
					},
				},
				StaffPayroll: []domain.StaffShift{
					{Name: "Nguyễn Thiên Phúc", TotalHours: 8, Salary: 280000},
				},
				SalesDetails: []domain.MenuItemSales{
					{ItemName: "Cà phê sữa", Quantity: 30, Revenue: 900000},
				},
			}, nil)

		extracted, err := service.AnalyzeImage(context.Background(), "imagem-base64", "image/jpeg")
		require.NoError(t, err)

		result := extracted.BusinessResults[0]
		assert.Equal(t, 475000.0, result.StaffTotalCost)
		assert.Equal(t, 150000.0, result.OperatingTotalCost)

		require.Len(t, extracted.SalesDetails, 1)
		assert.Equal(t, "2026-01-15", extracted.SalesDetails[0].Date)
		assert.Equal(t, "2026-01-15-Cà_phê_sữa", extracted.SalesDetails[0].ID)

		// O payroll extraído é devolvido para conferência, nada além disso.
		assert.Len(t, extracted.StaffPayroll, 1)
	})

	t.Run("Resposta ilegível do modelo é propagada", func(t *testing.T) {
		mockExtractor.EXPECT().
			ExtractFromImage(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.Wrap(gemini.ErrUnreadableResponse, "json inválido"))

		_, err := service.AnalyzeImage(context.Background(), "imagem-base64", "image/png")
		assert.ErrorIs(t, err, gemini.ErrUnreadableResponse)
	})

	t.Run("Imagem vazia é rejeitada sem chamar o integrador", func(t *testing.T) {
		_, err := service.AnalyzeImage(context.Background(), "", "image/jpeg")
		assert.Error(t, err)
	})
}

func TestApplyExtracted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := docstoremocks.NewMockStore(ctrl)
	mockExtractor := geminimocks.NewMockExtractor(ctrl)
	service := NewService(mockStore, mockExtractor)

	t.Run("Persiste resultados por data e vendas em lote", func(t *testing.T) {
		var savedResult domain.DailyBusinessResult
		mockStore.EXPECT().
			Set(gomock.Any(), docstore.CollectionBusinessResults, "2026-01-15", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ string, value interface{}) error {
				savedResult = value.(domain.DailyBusinessResult)
				return nil
			})
		mockStore.EXPECT().
			BatchSet(gomock.Any(), docstore.CollectionSalesDetails, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, docs []docstore.Document) error {
				require.Len(t, docs, 1)
				assert.Equal(t, "2026-01-15-Cà_phê_sữa", docs[0].Key)
				return nil
			})

		err := service.ApplyExtracted(context.Background(), &domain.ExtractedData{
			BusinessResults: []domain.DailyBusinessResult{
				{Date: "2026-01-15", NetRevenue: 2500000},
			},
			StaffPayroll: []domain.StaffShift{
				{Name: "Nguyễn Thiên Phúc", TotalHours: 8, Salary: 280000},
			},
			SalesDetails: []domain.MenuItemSales{
				{ID: "2026-01-15-Cà_phê_sữa", Date: "2026-01-15", ItemName: "Cà phê sữa", Quantity: 30, Revenue: 900000},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2500000.0, savedResult.NetRevenue)
	})

	t.Run("Resultado sem data e venda sem id são ignorados", func(t *testing.T) {
		err := service.ApplyExtracted(context.Background(), &domain.ExtractedData{
			BusinessResults: []domain.DailyBusinessResult{{Date: ""}},
			SalesDetails:    []domain.MenuItemSales{{ID: "", ItemName: "Órfã"}},
		})
		assert.NoError(t, err)
	})
}
