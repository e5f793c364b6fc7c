// Package analyzing transforma a foto de uma planilha em dados estruturados
// via Gemini e os persiste nas coleções. Totais vindos do modelo nunca são
// confiados: são recalculados localmente antes de qualquer gravação.
package analyzing

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/pkg/log"
)

type Service interface {
	AnalyzeImage(ctx context.Context, imageBase64, mimeType string) (*domain.ExtractedData, error)
	ApplyExtracted(ctx context.Context, data *domain.ExtractedData) error
}

type service struct {
	store     docstore.Store
	extractor gemini.Extractor
}

func NewService(store docstore.Store, extractor gemini.Extractor) Service {
	return &service{
		store:     store,
		extractor: extractor,
	}
}

// AnalyzeImage extrai os dados da imagem e aplica o pós-processamento local:
// totais de pessoal e operacionais refeitos, vendas carimbadas com a data do
// primeiro resultado e chaves determinísticas por item.
func (s *service) AnalyzeImage(ctx context.Context, imageBase64, mimeType string) (*domain.ExtractedData, error) {
	if imageBase64 == "" {
		return nil, errors.New("imagem vazia")
	}

	extracted, err := s.extractor.ExtractFromImage(ctx, imageBase64, mimeType)
	if err != nil {
		return nil, err
	}

	for i := range extracted.BusinessResults {
		result := &extracted.BusinessResults[i]
		result.StaffTotalCost = result.StaffSalary + result.StaffBonus + result.StaffAllowance
		result.RecomputeOperatingTotal()
	}

	if len(extracted.BusinessResults) > 0 {
		date := extracted.BusinessResults[0].Date
		for i := range extracted.SalesDetails {
			item := &extracted.SalesDetails[i]
			item.Date = date
			item.ID = fmt.Sprintf("%s-%s", date, strings.ReplaceAll(item.ItemName, " ", "_"))
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"businessResults": len(extracted.BusinessResults),
		"staffPayroll":    len(extracted.StaffPayroll),
		"salesDetails":    len(extracted.SalesDetails),
	}).Info("Imagem analisada com sucesso")

	return extracted, nil
}

// ApplyExtracted persiste os dados confirmados pelo operador: resultados por
// data, vendas em lote. O payroll extraído fica de fora porque o cadastro de
// funcionários é autoritativo e não deve ser sobrescrito por uma foto.
func (s *service) ApplyExtracted(ctx context.Context, data *domain.ExtractedData) error {
	for _, result := range data.BusinessResults {
		if result.Date == "" {
			continue
		}
		if err := s.store.Set(ctx, docstore.CollectionBusinessResults, result.Date, result); err != nil {
			return errors.Wrap(err, "erro ao salvar resultado extraído")
		}
	}

	docs := make([]docstore.Document, 0, len(data.SalesDetails))
	for _, item := range data.SalesDetails {
		if item.ID == "" {
			continue
		}
		docs = append(docs, docstore.Document{Key: item.ID, Value: item})
	}
	if len(docs) > 0 {
		if err := s.store.BatchSet(ctx, docstore.CollectionSalesDetails, docs); err != nil {
			return errors.Wrap(err, "erro ao salvar vendas extraídas")
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"businessResults": len(data.BusinessResults),
		"salesDetails":    len(data.SalesDetails),
	}).Info("Dados extraídos aplicados às coleções")

	return nil
}
