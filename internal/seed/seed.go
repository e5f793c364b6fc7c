// Package seed carrega o catálogo inicial quando o store está vazio, para a
// primeira sessão não abrir com telas em branco.
package seed

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
	"github.com/vfg2006/cafe-manager-api/pkg/utils"
)

// Catálogo digitalizado da planilha de compras. Preços em VND por unidade.
var initialMaterials = []domain.Material{
	{ID: 1, Category: "COFFEE & TEA", Name: "Espresso Blend 8R/2A", Unit: "Kg", Price: 250000},
	{ID: 2, Category: "COFFEE & TEA", Name: "Arabica Wash", Unit: "Kg", Price: 350000},
	{ID: 3, Category: "COFFEE & TEA", Name: "Trà earl grey TWG", Unit: "Gói", Price: 3500},
	{ID: 4, Category: "COFFEE & TEA", Name: "Bông hibiscus khô", Unit: "Kg", Price: 520000},
	{ID: 5, Category: "COFFEE & TEA", Name: "Trà ôlong", Unit: "Kg", Price: 380000},
	{ID: 6, Category: "MILK", Name: "Sữa tươi thanh trùng", Unit: "Lít", Price: 38000},
	{ID: 7, Category: "MILK", Name: "Sữa đặc", Unit: "Hộp", Price: 25000},
	{ID: 8, Category: "SYRUP", Name: "Syrup vani", Unit: "Chai", Price: 185000},
	{ID: 9, Category: "SYRUP", Name: "Syrup caramel", Unit: "Chai", Price: 185000},
	{ID: 10, Category: "CAKE", Name: "Sausage Roll", Unit: "Cái", Price: 22000},
}

var initialStaff = []domain.StaffShift{
	{Name: "Nguyễn Thiên Phúc", Role: "Quản lý", HourlyRate: 35000, StartDate: "2022-05-15"},
	{Name: "Hoàng Vũ Thanh Thủy", Role: "Pha chế", HourlyRate: 28000, StartDate: "2023-08-01"},
}

// IfEmpty popula materiais e funcionários quando a coleção de materiais está
// vazia. O catálogo vazio é o sinal de primeira execução; as demais coleções
// nascem vazias de propósito.
func IfEmpty(ctx context.Context, store docstore.Store) error {
	materials, err := store.List(ctx, docstore.CollectionMaterials)
	if err != nil {
		return errors.Wrap(err, "erro ao verificar catálogo de materiais")
	}
	if len(materials) > 0 {
		return nil
	}

	log.ForContext(ctx).Info("Store vazio, carregando dados iniciais")

	materialDocs := make([]docstore.Document, 0, len(initialMaterials))
	for _, m := range initialMaterials {
		materialDocs = append(materialDocs, docstore.Document{
			Key:   utils.MaterialKey(m.ID),
			Value: m,
		})
	}
	if err := store.BatchSet(ctx, docstore.CollectionMaterials, materialDocs); err != nil {
		return errors.Wrap(err, "erro ao carregar materiais iniciais")
	}

	staffDocs := make([]docstore.Document, 0, len(initialStaff))
	for _, st := range initialStaff {
		staffDocs = append(staffDocs, docstore.Document{
			Key:   st.Name,
			Value: st,
		})
	}
	if err := store.BatchSet(ctx, docstore.CollectionStaffPayroll, staffDocs); err != nil {
		return errors.Wrap(err, "erro ao carregar funcionários iniciais")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"materials": len(materialDocs),
		"staff":     len(staffDocs),
	}).Info("Dados iniciais carregados")

	return nil
}
