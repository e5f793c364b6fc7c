package domain

// Material é um item da bảng giá (lista mestre de preços), editada de forma
// independente das sessões de inventário. Apagar um material não altera
// sessões históricas, que mantêm o custo fotografado na época.
type Material struct {
	ID       int     `json:"id"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

// InventoryRecord é a contagem de um material em uma sessão diária.
// Used e Cost são derivados e recalculados a cada edição de campo.
type InventoryRecord struct {
	MaterialID int     `json:"materialId"`
	Open       float64 `json:"open"`   // tồn đầu
	Import     float64 `json:"import"` // entrada do dia
	Close      float64 `json:"close"`  // tồn cuối
	Used       float64 `json:"used"`   // max(0, open+import-close)
	Cost       float64 `json:"cost"`   // used * preço vigente
}

// DailyInventorySession é a ficha de kiểm kê de um dia. Uma sessão por data;
// o save substitui o documento inteiro, nunca faz merge por material.
type DailyInventorySession struct {
	Date      string            `json:"date"`
	Records   []InventoryRecord `json:"records"`
	TotalCost float64           `json:"totalCost"`
}

// RecordForMaterial devolve o registro do material na sessão, se existir.
func (s *DailyInventorySession) RecordForMaterial(materialID int) (InventoryRecord, bool) {
	for _, rec := range s.Records {
		if rec.MaterialID == materialID {
			return rec, true
		}
	}
	return InventoryRecord{}, false
}
