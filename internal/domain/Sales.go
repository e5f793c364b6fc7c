package domain

// MenuItemSales é um fato de venda por item de cardápio em uma data,
// append-only. A agregação por item é feita em memória na análise de menu.
type MenuItemSales struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// MenuItemSummary é o resultado da agregação de vendas por item.
type MenuItemSummary struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// MenuAnalysis é a visão consolidada servida pela análise de menu.
type MenuAnalysis struct {
	Items         []MenuItemSummary `json:"items"`
	TotalQuantity int               `json:"totalQuantity"`
	TotalRevenue  float64           `json:"totalRevenue"`
	TopItems      []MenuItemSummary `json:"topItems"`
	SlowItems     []MenuItemSummary `json:"slowItems"`
}
