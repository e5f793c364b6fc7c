package state

import (
	"sort"
	"strconv"

	"github.com/vfg2006/cafe-manager-api/internal/domain"
)

func materialKey(id int) string {
	return strconv.Itoa(id)
}

// BusinessResultByDate devolve o resultado do dia, se existir.
func (s *AppState) BusinessResultByDate(date string) (domain.DailyBusinessResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.businessResults[date]
	return result, ok
}

// BusinessResults devolve todos os resultados ordenados por data decrescente.
func (s *AppState) BusinessResults() []domain.DailyBusinessResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.DailyBusinessResult, 0, len(s.businessResults))
	for _, r := range s.businessResults {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})
	return results
}

func (s *AppState) StaffByName(name string) (domain.StaffShift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	staff, ok := s.staff[name]
	return staff, ok
}

func (s *AppState) Staff() []domain.StaffShift {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staff := make([]domain.StaffShift, 0, len(s.staff))
	for _, st := range s.staff {
		staff = append(staff, st)
	}
	sort.Slice(staff, func(i, j int) bool {
		return staff[i].Name < staff[j].Name
	})
	return staff
}

func (s *AppState) MaterialByID(id int) (domain.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	material, ok := s.materials[materialKey(id)]
	return material, ok
}

// Materials devolve o catálogo ordenado por ID.
func (s *AppState) Materials() []domain.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()

	materials := make([]domain.Material, 0, len(s.materials))
	for _, m := range s.materials {
		materials = append(materials, m)
	}
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].ID < materials[j].ID
	})
	return materials
}

func (s *AppState) SessionByDate(date string) (domain.DailyInventorySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[date]
	return session, ok
}

func (s *AppState) Sessions() []domain.DailyInventorySession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]domain.DailyInventorySession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date > sessions[j].Date
	})
	return sessions
}

func (s *AppState) ExpenseByID(id string) (domain.ExpenseRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expense, ok := s.expenses[id]
	return expense, ok
}

// ExpensesByDate devolve as despesas de um dia ordenadas por ID.
func (s *AppState) ExpensesByDate(date string) []domain.ExpenseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expenses := make([]domain.ExpenseRecord, 0)
	for _, e := range s.expenses {
		if e.Date == date {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].ID < expenses[j].ID
	})
	return expenses
}

func (s *AppState) Expenses() []domain.ExpenseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expenses := make([]domain.ExpenseRecord, 0, len(s.expenses))
	for _, e := range s.expenses {
		expenses = append(expenses, e)
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].Date != expenses[j].Date {
			return expenses[i].Date > expenses[j].Date
		}
		return expenses[i].ID < expenses[j].ID
	})
	return expenses
}

// SalesByDate devolve as vendas por item de um dia.
func (s *AppState) SalesByDate(date string) []domain.MenuItemSales {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales := make([]domain.MenuItemSales, 0)
	for _, item := range s.sales {
		if item.Date == date {
			sales = append(sales, item)
		}
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].ID < sales[j].ID
	})
	return sales
}

func (s *AppState) Sales() []domain.MenuItemSales {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales := make([]domain.MenuItemSales, 0, len(s.sales))
	for _, item := range s.sales {
		sales = append(sales, item)
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Date != sales[j].Date {
			return sales[i].Date > sales[j].Date
		}
		return sales[i].ID < sales[j].ID
	})
	return sales
}
