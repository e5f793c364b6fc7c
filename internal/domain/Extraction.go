package domain

// ExtractedData é o payload estruturado devolvido pela análise de imagem
// (planilha fotografada). Os totais vindos do serviço externo nunca são
// confiados: staffTotalCost e operatingTotalCost são recalculados localmente
// antes de qualquer persistência.
type ExtractedData struct {
	BusinessResults []DailyBusinessResult `json:"businessResults"`
	StaffPayroll    []StaffShift          `json:"staffPayroll"`
	SalesDetails    []MenuItemSales       `json:"salesDetails"`
}
