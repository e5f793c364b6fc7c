package domain

// DailyBusinessResult representa o fechamento financeiro de um dia de operação
// do café, chaveado pela data no formato YYYY-MM-DD. O registro é sempre
// persistido por inteiro (substituição do documento, nunca merge parcial).
type DailyBusinessResult struct {
	Date string `json:"date"`

	// Receita
	TotalRevenue   float64 `json:"totalRevenue"`
	MorningRevenue float64 `json:"morningRevenue"`
	EveningRevenue float64 `json:"eveningRevenue"`
	Discounts      float64 `json:"discounts"`
	NetRevenue     float64 `json:"netRevenue"`

	// Custo de insumos (NVL/COGS)
	CostOfGoodsSold   float64 `json:"costOfGoodsSold"`
	CostOfGoodsImport float64 `json:"costOfGoodsImport"`
	WasteCost         float64 `json:"wasteCost"`

	// Custos de pessoal
	StaffTotalCost float64 `json:"staffTotalCost"`
	StaffSalary    float64 `json:"staffSalary"`
	StaffBonus     float64 `json:"staffBonus"`
	StaffAllowance float64 `json:"staffAllowance"`

	// Custos operacionais
	OperatingTotalCost float64 `json:"operatingTotalCost"`
	Marketing          float64 `json:"marketing"`
	Tools              float64 `json:"tools"`
	Consumables        float64 `json:"consumables"`
	OtherCash          float64 `json:"otherCash"`

	NetProfit float64 `json:"netProfit"`
}

// NewBusinessResult cria um registro totalmente preenchido (zerado) para a data.
// Todos os produtores devem partir deste construtor para evitar documentos com
// campos ausentes no store.
func NewBusinessResult(date string) *DailyBusinessResult {
	return &DailyBusinessResult{Date: date}
}

// RecomputeDerived recalcula todos os campos derivados a partir dos campos
// editáveis, na ordem das fórmulas do fechamento manual:
//
//	totalRevenue       = morningRevenue + eveningRevenue
//	netRevenue         = totalRevenue - discounts
//	staffTotalCost     = staffSalary + staffBonus + staffAllowance
//	operatingTotalCost = marketing + tools + consumables + otherCash
//	netProfit          = netRevenue - costOfGoodsSold - wasteCost - staffTotalCost - operatingTotalCost
func (r *DailyBusinessResult) RecomputeDerived() {
	r.TotalRevenue = r.MorningRevenue + r.EveningRevenue
	r.NetRevenue = r.TotalRevenue - r.Discounts
	r.StaffTotalCost = r.StaffSalary + r.StaffBonus + r.StaffAllowance
	r.RecomputeOperatingTotal()
	r.RecomputeNetProfit()
}

// RecomputeOperatingTotal recalcula apenas o total operacional. Usado pelo
// agregador de despesas, que nunca toca nos campos de receita.
func (r *DailyBusinessResult) RecomputeOperatingTotal() {
	r.OperatingTotalCost = r.Marketing + r.Tools + r.Consumables + r.OtherCash
}

// RecomputeNetProfit recalcula o lucro líquido sem alterar nenhum outro campo.
// É o único cálculo feito pelo produtor de kiểm kê (sessão de inventário), que
// sobrescreve costOfGoodsSold e preserva o restante do snapshot local.
func (r *DailyBusinessResult) RecomputeNetProfit() {
	r.NetProfit = r.NetRevenue - r.CostOfGoodsSold - r.WasteCost - r.StaffTotalCost - r.OperatingTotalCost
}

// ProfitIdentityHolds verifica a identidade de lucro usada pela auditoria do
// razão. A tolerância absorve ruído de ponto flutuante em valores em VND.
func (r *DailyBusinessResult) ProfitIdentityHolds(tolerance float64) bool {
	expected := r.NetRevenue - r.CostOfGoodsSold - r.WasteCost - r.StaffTotalCost - r.OperatingTotalCost
	diff := r.NetProfit - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
