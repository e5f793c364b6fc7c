// Package docstore define o colaborador de persistência da aplicação: um
// document store compartilhado que empurra o conteúdo das coleções para todos
// os assinantes a cada mudança. Toda escrita substitui o documento inteiro
// (set, nunca merge por campo); quem escrever por último vence.
package docstore

import (
	"context"

	jsoniter "github.com/json-iterator/go"
)

// Nomes das coleções
const (
	CollectionBusinessResults   = "business_results"
	CollectionStaffPayroll      = "staff_payroll"
	CollectionMaterials         = "materials"
	CollectionInventorySessions = "inventory_sessions"
	CollectionExpenses          = "expenses"
	CollectionSalesDetails      = "sales_details"
)

// Snapshot é o conteúdo corrente de uma coleção: documentId -> documento.
type Snapshot map[string]jsoniter.RawMessage

// Document é um par chave/valor para escrita em lote.
type Document struct {
	Key   string
	Value any
}

// Store é a interface do document store consumida pelos componentes.
// Subscribe é o único caminho pelo qual agregados calculados chegam à camada
// de leitura; escritas são fire-and-forget do ponto de vista do chamador.
type Store interface {
	// Subscribe devolve um canal que recebe o snapshot completo da coleção
	// imediatamente e a cada mudança subsequente.
	Subscribe(ctx context.Context, collection string) (<-chan Snapshot, error)

	// Set faz upsert do documento inteiro.
	Set(ctx context.Context, collection, key string, value any) error

	// Delete remove o documento, se existir.
	Delete(ctx context.Context, collection, key string) error

	// BatchSet faz upsert de vários documentos de uma coleção em um único
	// lote atômico. Não há atomicidade entre coleções.
	BatchSet(ctx context.Context, collection string, docs []Document) error

	// List faz uma leitura única da coleção. Usada apenas para decidir se o
	// banco vazio precisa de dados iniciais.
	List(ctx context.Context, collection string) (Snapshot, error)
}
