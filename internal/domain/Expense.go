package domain

// ExpenseCategory classifica um lançamento do sổ chi tiêu (caderno de despesas
// avulsas). Cada categoria alimenta um campo específico do resultado diário.
type ExpenseCategory string

const (
	ExpenseRawMaterial ExpenseCategory = "RawMaterial" // insumos comprados fora -> costOfGoodsImport
	ExpenseTools       ExpenseCategory = "Tools"       // CCDC -> tools
	ExpenseConsumables ExpenseCategory = "Consumables" // materiais de consumo -> consumables
	ExpenseMarketing   ExpenseCategory = "Marketing"   // marketing -> marketing
	ExpenseOther       ExpenseCategory = "Other"       // qualquer outra saída -> otherCash
)

// ExpenseRecord é um lançamento avulso de despesa. A coleção de despesas é a
// fonte durável da verdade; os campos operacionais do resultado diário são
// apenas um cache da soma por categoria.
type ExpenseRecord struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
}

// ExpenseAggregate agrupa as somas por categoria de um dia, no formato em que
// são projetadas sobre o DailyBusinessResult.
type ExpenseAggregate struct {
	Marketing         float64 `json:"marketing"`
	Tools             float64 `json:"tools"`
	Consumables       float64 `json:"consumables"`
	OtherCash         float64 `json:"otherCash"`
	CostOfGoodsImport float64 `json:"costOfGoodsImport"`
}
