// Package selling agrega os fatos de venda por item de cardápio e produz a
// análise de menu com destaques e itens parados.
package selling

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

const highlightCount = 5

type Service interface {
	Analyze(ctx context.Context, fromDate, toDate string) (domain.MenuAnalysis, error)
	SaveBatch(ctx context.Context, sales []domain.MenuItemSales) error
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

// Analyze consolida as vendas do período por item. Com datas vazias o período
// é aberto naquela ponta.
func (s *service) Analyze(_ context.Context, fromDate, toDate string) (domain.MenuAnalysis, error) {
	if fromDate != "" && !utils.IsValidDate(fromDate) {
		return domain.MenuAnalysis{}, errors.Errorf("data inicial inválida: %s", fromDate)
	}
	if toDate != "" && !utils.IsValidDate(toDate) {
		return domain.MenuAnalysis{}, errors.Errorf("data final inválida: %s", toDate)
	}

	byItem := make(map[string]domain.MenuItemSummary)
	for _, sale := range s.appState.Sales() {
		if fromDate != "" && sale.Date < fromDate {
			continue
		}
		if toDate != "" && sale.Date > toDate {
			continue
		}

		summary := byItem[sale.ItemName]
		summary.Name = sale.ItemName
		summary.Quantity += sale.Quantity
		summary.Revenue += sale.Revenue
		byItem[sale.ItemName] = summary
	}

	analysis := domain.MenuAnalysis{
		Items: make([]domain.MenuItemSummary, 0, len(byItem)),
	}
	for _, summary := range byItem {
		analysis.Items = append(analysis.Items, summary)
		analysis.TotalQuantity += summary.Quantity
		analysis.TotalRevenue += summary.Revenue
	}

	// Desempate por nome para a ordenação ser estável entre chamadas.
	sort.Slice(analysis.Items, func(i, j int) bool {
		if analysis.Items[i].Quantity != analysis.Items[j].Quantity {
			return analysis.Items[i].Quantity > analysis.Items[j].Quantity
		}
		return analysis.Items[i].Name < analysis.Items[j].Name
	})

	if n := len(analysis.Items); n > 0 {
		top := highlightCount
		if top > n {
			top = n
		}
		analysis.TopItems = analysis.Items[:top]
		analysis.SlowItems = analysis.Items[n-top:]
	}

	return analysis, nil
}

// SaveBatch persiste fatos de venda numa única transação, gerando chaves
// datadas para os que chegarem sem id.
func (s *service) SaveBatch(ctx context.Context, sales []domain.MenuItemSales) error {
	docs := make([]docstore.Document, 0, len(sales))
	for i := range sales {
		if !utils.IsValidDate(sales[i].Date) {
			return errors.Errorf("data inválida: %s", sales[i].Date)
		}
		if sales[i].ID == "" {
			sales[i].ID = utils.DatedID(sales[i].Date)
		}
		docs = append(docs, docstore.Document{
			Key:   sales[i].ID,
			Value: sales[i],
		})
	}

	if err := s.store.BatchSet(ctx, docstore.CollectionSalesDetails, docs); err != nil {
		return errors.Wrap(err, "erro ao salvar vendas em lote")
	}

	log.ForContext(ctx).WithField("sales", len(docs)).Info("Vendas por item salvas em lote")
	return nil
}
