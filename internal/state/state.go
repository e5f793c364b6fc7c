// Package state mantém o snapshot em memória das coleções do document store.
// A assinatura em tempo real é o único caminho pelo qual os agregados chegam à
// camada de leitura: nenhum handler consulta o store diretamente. Os
// produtores também leem daqui o snapshot local usado nas mesclas, e é
// exatamente por isso que escritores concorrentes podem se sobrescrever em
// silêncio (a última escrita vence).
package state

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type AppState struct {
	mu sync.RWMutex

	businessResults map[string]domain.DailyBusinessResult
	staff           map[string]domain.StaffShift
	materials       map[string]domain.Material
	sessions        map[string]domain.DailyInventorySession
	expenses        map[string]domain.ExpenseRecord
	sales           map[string]domain.MenuItemSales

	lastUpdated time.Time
	failure     error
}

func New() *AppState {
	return &AppState{
		businessResults: make(map[string]domain.DailyBusinessResult),
		staff:           make(map[string]domain.StaffShift),
		materials:       make(map[string]domain.Material),
		sessions:        make(map[string]domain.DailyInventorySession),
		expenses:        make(map[string]domain.ExpenseRecord),
		sales:           make(map[string]domain.MenuItemSales),
	}
}

// Start assina as seis coleções e mantém o snapshot local atualizado.
func (s *AppState) Start(ctx context.Context, store docstore.Store) error {
	collections := []struct {
		name  string
		apply func(docstore.Snapshot)
	}{
		{docstore.CollectionBusinessResults, s.applyBusinessResults},
		{docstore.CollectionStaffPayroll, s.applyStaff},
		{docstore.CollectionMaterials, s.applyMaterials},
		{docstore.CollectionInventorySessions, s.applySessions},
		{docstore.CollectionExpenses, s.applyExpenses},
		{docstore.CollectionSalesDetails, s.applySales},
	}

	for _, coll := range collections {
		ch, err := store.Subscribe(ctx, coll.name)
		if err != nil {
			return err
		}

		go func(name string, apply func(docstore.Snapshot), ch <-chan docstore.Snapshot) {
			for {
				select {
				case <-ctx.Done():
					return
				case snapshot, ok := <-ch:
					if !ok {
						return
					}
					apply(snapshot)
					log.L.WithFields(log.Fields{
						"collection": name,
						"documents":  len(snapshot),
					}).Debug("Snapshot da coleção aplicado")
				}
			}
		}(coll.name, coll.apply, ch)
	}

	return nil
}

// Fail marca a sessão como quebrada por erro de acesso ao store. Não há
// retry: a aplicação passa a responder apenas com a tela de remediação.
func (s *AppState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure == nil {
		s.failure = err
	}
}

// Failure devolve o erro fatal da sessão, se houver.
func (s *AppState) Failure() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure
}

func (s *AppState) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

func (s *AppState) touch() {
	s.lastUpdated = time.Now()
}

// --- aplicação de snapshots ---

func decodeInto[T any](snapshot docstore.Snapshot, collection string) map[string]T {
	out := make(map[string]T, len(snapshot))
	for key, raw := range snapshot {
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			log.L.WithError(err).WithFields(log.Fields{
				"collection": collection,
				"key":        key,
			}).Error("Documento ilegível ignorado no snapshot")
			continue
		}
		out[key] = value
	}
	return out
}

func (s *AppState) applyBusinessResults(snapshot docstore.Snapshot) {
	decoded := decodeInto[domain.DailyBusinessResult](snapshot, docstore.CollectionBusinessResults)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.businessResults = decoded
	s.touch()
}

func (s *AppState) applyStaff(snapshot docstore.Snapshot) {
	decoded := decodeInto[domain.StaffShift](snapshot, docstore.CollectionStaffPayroll)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff = decoded
	s.touch()
}

func (s *AppState) applyMaterials(snapshot docstore.Snapshot) {
	decoded := decodeInto[domain.Material](snapshot, docstore.CollectionMaterials)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials = decoded
	s.touch()
}

func (s *AppState) applySessions(snapshot docstore.Snapshot) {
	decoded := decodeInto[domain.DailyInventorySession](snapshot, docstore.CollectionInventorySessions)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = decoded
	s.touch()
}

func (s *AppState) applyExpenses(snapshot docstore.Snapshot) {
	decoded := decodeInto[domain.ExpenseRecord](snapshot, docstore.CollectionExpenses)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = decoded
	s.touch()
}

func (s *AppState) applySales(snapshot docstore.Snapshot) {
	decoded := decodeInto[domain.MenuItemSales](snapshot, docstore.CollectionSalesDetails)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = decoded
	s.touch()
}

// --- substituições diretas (seed e testes) ---

func (s *AppState) ReplaceBusinessResults(results []domain.DailyBusinessResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.businessResults = make(map[string]domain.DailyBusinessResult, len(results))
	for _, r := range results {
		s.businessResults[r.Date] = r
	}
	s.touch()
}

func (s *AppState) ReplaceStaff(staff []domain.StaffShift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff = make(map[string]domain.StaffShift, len(staff))
	for _, st := range staff {
		s.staff[st.Name] = st
	}
	s.touch()
}

func (s *AppState) ReplaceMaterials(materials []domain.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials = make(map[string]domain.Material, len(materials))
	for _, m := range materials {
		s.materials[materialKey(m.ID)] = m
	}
	s.touch()
}

func (s *AppState) ReplaceSessions(sessions []domain.DailyInventorySession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]domain.DailyInventorySession, len(sessions))
	for _, sess := range sessions {
		s.sessions[sess.Date] = sess
	}
	s.touch()
}

func (s *AppState) ReplaceExpenses(expenses []domain.ExpenseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = make(map[string]domain.ExpenseRecord, len(expenses))
	for _, e := range expenses {
		s.expenses[e.ID] = e
	}
	s.touch()
}

func (s *AppState) ReplaceSales(sales []domain.MenuItemSales) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = make(map[string]domain.MenuItemSales, len(sales))
	for _, item := range sales {
		s.sales[item.ID] = item
	}
	s.touch()
}
