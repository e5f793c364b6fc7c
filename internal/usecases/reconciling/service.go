// Package reconciling concentra as duas vias de escrita do resultado diário:
// o fechamento manual do formulário e a sincronização automática do custo de
// estoque. Ambas gravam o documento inteiro; a última escrita vence.
package reconciling

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/expensing"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

type Service interface {
	PrefillForm(ctx context.Context, date string) (domain.DailyBusinessResult, error)
	SubmitManual(ctx context.Context, result domain.DailyBusinessResult) (domain.DailyBusinessResult, error)
	SyncInventorySession(ctx context.Context, session domain.DailyInventorySession) error
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

// PrefillForm monta o formulário de fechamento de uma data. Parte do resultado
// persistido quando existe, senão de um registro zerado, e em qualquer caso os
// agregados das despesas avulsas do dia sobrescrevem os custos operacionais e
// o custo de importação: o sổ chi tiêu é a fonte autoritativa desses campos.
func (s *service) PrefillForm(_ context.Context, date string) (domain.DailyBusinessResult, error) {
	if !utils.IsValidDate(date) {
		return domain.DailyBusinessResult{}, errors.Errorf("data inválida: %s", date)
	}

	result, ok := s.appState.BusinessResultByDate(date)
	if !ok {
		result = *domain.NewBusinessResult(date)
	}

	aggregate := expensing.Aggregate(s.appState.ExpensesByDate(date))
	result.Marketing = aggregate.Marketing
	result.Tools = aggregate.Tools
	result.Consumables = aggregate.Consumables
	result.OtherCash = aggregate.OtherCash
	result.CostOfGoodsImport = aggregate.CostOfGoodsImport
	result.RecomputeDerived()

	return result, nil
}

// SubmitManual recalcula todos os campos derivados e grava o resultado,
// sobrescrevendo qualquer versão anterior da data.
func (s *service) SubmitManual(ctx context.Context, result domain.DailyBusinessResult) (domain.DailyBusinessResult, error) {
	if !utils.IsValidDate(result.Date) {
		return domain.DailyBusinessResult{}, errors.Errorf("data inválida: %s", result.Date)
	}

	result.RecomputeDerived()

	if err := s.store.Set(ctx, docstore.CollectionBusinessResults, result.Date, result); err != nil {
		return domain.DailyBusinessResult{}, errors.Wrap(err, "erro ao salvar resultado do dia")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"date":      result.Date,
		"netProfit": result.NetProfit,
	}).Info("Resultado diário fechado manualmente")

	return result, nil
}

// SyncInventorySession propaga o custo total da sessão de estoque para o
// resultado da mesma data. Sem resultado existente, nasce um zerado cujo
// lucro é o custo negativado.
func (s *service) SyncInventorySession(ctx context.Context, session domain.DailyInventorySession) error {
	result, ok := s.appState.BusinessResultByDate(session.Date)
	if !ok {
		result = *domain.NewBusinessResult(session.Date)
	}

	result.CostOfGoodsSold = session.TotalCost
	result.RecomputeNetProfit()

	if err := s.store.Set(ctx, docstore.CollectionBusinessResults, result.Date, result); err != nil {
		return errors.Wrap(err, "erro ao sincronizar custo de estoque com o resultado")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"date":            session.Date,
		"costOfGoodsSold": session.TotalCost,
	}).Info("Custo de estoque sincronizado com o resultado do dia")

	return nil
}
