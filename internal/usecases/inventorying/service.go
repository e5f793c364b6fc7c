// Package inventorying cuida das sessões diárias de estoque: abertura
// pré-preenchida com o fechamento do dia anterior, custo por material
// congelado no preço vigente e sincronização do custo total com o resultado
// do dia.
package inventorying

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/reconciling"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

type Service interface {
	SessionForDate(ctx context.Context, date string) (domain.DailyInventorySession, error)
	SaveSession(ctx context.Context, session domain.DailyInventorySession) (domain.DailyInventorySession, error)
	SaveMaterials(ctx context.Context, materials []domain.Material) error
}

type service struct {
	store      docstore.Store
	appState   *state.AppState
	reconciler reconciling.Service
}

func NewService(store docstore.Store, appState *state.AppState, reconciler reconciling.Service) Service {
	return &service{
		store:      store,
		appState:   appState,
		reconciler: reconciler,
	}
}

// SessionForDate devolve a sessão persistida da data ou, na ausência dela,
// uma sessão nova com a abertura puxada do fechamento do dia anterior.
func (s *service) SessionForDate(_ context.Context, date string) (domain.DailyInventorySession, error) {
	if !utils.IsValidDate(date) {
		return domain.DailyInventorySession{}, errors.Errorf("data inválida: %s", date)
	}

	if session, ok := s.appState.SessionByDate(date); ok {
		return session, nil
	}

	materials := s.appState.Materials()
	records := make([]domain.InventoryRecord, 0, len(materials))

	previousDate, err := utils.PreviousDate(date)
	if err != nil {
		return domain.DailyInventorySession{}, errors.Wrap(err, "erro ao calcular o dia anterior")
	}
	previous, hasPrevious := s.appState.SessionByDate(previousDate)

	for _, material := range materials {
		record := domain.InventoryRecord{MaterialID: material.ID}
		if hasPrevious {
			if prev, found := previous.RecordForMaterial(material.ID); found {
				record.Open = prev.Close
			}
		}
		records = append(records, record)
	}

	return domain.DailyInventorySession{
		Date:    date,
		Records: records,
	}, nil
}

// RecomputeRecord recalcula consumo e custo de um registro. O consumo nunca
// fica negativo e o custo congela o preço vigente do material no momento da
// edição.
func (s *service) recomputeRecord(record *domain.InventoryRecord) {
	used := record.Open + record.Import - record.Close
	record.Used = utils.RoundWithTwoDecimalPlace(math.Max(0, used))

	price := 0.0
	if material, ok := s.appState.MaterialByID(record.MaterialID); ok {
		price = material.Price
	}
	record.Cost = utils.RoundWithTwoDecimalPlace(record.Used * price)
}

// SaveSession recalcula todos os registros, persiste a sessão inteira e
// sincroniza o custo total com o resultado do dia.
func (s *service) SaveSession(ctx context.Context, session domain.DailyInventorySession) (domain.DailyInventorySession, error) {
	if !utils.IsValidDate(session.Date) {
		return domain.DailyInventorySession{}, errors.Errorf("data inválida: %s", session.Date)
	}

	total := 0.0
	for i := range session.Records {
		s.recomputeRecord(&session.Records[i])
		total += session.Records[i].Cost
	}
	session.TotalCost = utils.RoundWithTwoDecimalPlace(total)

	if err := s.store.Set(ctx, docstore.CollectionInventorySessions, session.Date, session); err != nil {
		return domain.DailyInventorySession{}, errors.Wrap(err, "erro ao salvar sessão de estoque")
	}

	if err := s.reconciler.SyncInventorySession(ctx, session); err != nil {
		return domain.DailyInventorySession{}, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"date":      session.Date,
		"totalCost": session.TotalCost,
	}).Info("Sessão de estoque salva e sincronizada")

	return session, nil
}

// SaveMaterials persiste o catálogo de materiais em lote. O preço alterado
// vale só para edições futuras: custos já congelados não são reprocessados.
func (s *service) SaveMaterials(ctx context.Context, materials []domain.Material) error {
	docs := make([]docstore.Document, 0, len(materials))
	for _, material := range materials {
		if material.Name == "" {
			return errors.New("material sem nome")
		}
		docs = append(docs, docstore.Document{
			Key:   utils.MaterialKey(material.ID),
			Value: material,
		})
	}

	if err := s.store.BatchSet(ctx, docstore.CollectionMaterials, docs); err != nil {
		return errors.Wrap(err, "erro ao salvar materiais")
	}

	log.ForContext(ctx).WithField("materials", len(docs)).Info("Catálogo de materiais atualizado")
	return nil
}
