// Package expensing registra despesas avulsas e mantém os agregados por
// categoria dobrados no resultado do dia a cada lançamento.
package expensing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

var ErrInvalidAmount = errors.New("valor da despesa deve ser positivo")

type Service interface {
	Add(ctx context.Context, expense domain.ExpenseRecord) (domain.ExpenseRecord, error)
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context, date string) ([]domain.ExpenseRecord, error)
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

// Aggregate soma as despesas de um dia por categoria. Despesas de matéria
// prima entram no custo de importação; as demais, nos custos operacionais.
func Aggregate(expenses []domain.ExpenseRecord) domain.ExpenseAggregate {
	var agg domain.ExpenseAggregate
	for _, expense := range expenses {
		switch expense.Category {
		case domain.ExpenseRawMaterial:
			agg.CostOfGoodsImport += expense.Amount
		case domain.ExpenseMarketing:
			agg.Marketing += expense.Amount
		case domain.ExpenseTools:
			agg.Tools += expense.Amount
		case domain.ExpenseConsumables:
			agg.Consumables += expense.Amount
		default:
			agg.OtherCash += expense.Amount
		}
	}
	return agg
}

// Add persiste a despesa e dobra o valor dela no resultado do dia.
func (s *service) Add(ctx context.Context, expense domain.ExpenseRecord) (domain.ExpenseRecord, error) {
	if !utils.IsValidDate(expense.Date) {
		return domain.ExpenseRecord{}, errors.Errorf("data inválida: %s", expense.Date)
	}
	if expense.Amount <= 0 {
		return domain.ExpenseRecord{}, ErrInvalidAmount
	}
	if expense.ID == "" {
		expense.ID = utils.DatedID(expense.Date)
	}

	if err := s.store.Set(ctx, docstore.CollectionExpenses, expense.ID, expense); err != nil {
		return domain.ExpenseRecord{}, errors.Wrap(err, "erro ao salvar despesa")
	}

	if err := s.applyToResult(ctx, expense, expense.Amount); err != nil {
		return domain.ExpenseRecord{}, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"id":       expense.ID,
		"date":     expense.Date,
		"category": expense.Category,
		"amount":   expense.Amount,
	}).Info("Despesa registrada")

	return expense, nil
}

// Delete remove a despesa e desfaz o valor dela no resultado do dia. Sem
// resultado persistido não há o que desfazer.
func (s *service) Delete(ctx context.Context, id string) error {
	expense, ok := s.appState.ExpenseByID(id)
	if !ok {
		return errors.Errorf("despesa não encontrada: %s", id)
	}

	if err := s.store.Delete(ctx, docstore.CollectionExpenses, id); err != nil {
		return errors.Wrap(err, "erro ao apagar despesa")
	}

	if _, exists := s.appState.BusinessResultByDate(expense.Date); exists {
		if err := s.applyToResult(ctx, expense, -expense.Amount); err != nil {
			return err
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"id":   id,
		"date": expense.Date,
	}).Info("Despesa removida")

	return nil
}

func (s *service) ListByDate(_ context.Context, date string) ([]domain.ExpenseRecord, error) {
	if !utils.IsValidDate(date) {
		return nil, errors.Errorf("data inválida: %s", date)
	}
	return s.appState.ExpensesByDate(date), nil
}

// applyToResult dobra um delta de despesa no campo correspondente do
// resultado da data e recalcula os derivados afetados.
func (s *service) applyToResult(ctx context.Context, expense domain.ExpenseRecord, delta float64) error {
	result, ok := s.appState.BusinessResultByDate(expense.Date)
	if !ok {
		result = *domain.NewBusinessResult(expense.Date)
	}

	switch expense.Category {
	case domain.ExpenseRawMaterial:
		result.CostOfGoodsImport += delta
	case domain.ExpenseMarketing:
		result.Marketing += delta
	case domain.ExpenseTools:
		result.Tools += delta
	case domain.ExpenseConsumables:
		result.Consumables += delta
	default:
		result.OtherCash += delta
	}

	result.RecomputeOperatingTotal()
	result.RecomputeNetProfit()

	if err := s.store.Set(ctx, docstore.CollectionBusinessResults, result.Date, result); err != nil {
		return errors.Wrap(err, "erro ao atualizar resultado com a despesa")
	}

	return nil
}
