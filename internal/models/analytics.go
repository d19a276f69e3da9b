package models

// MonthlySales — выручка, сведённая в корзину календарного месяца.
// Корзины именуются трёхбуквенными месяцами; годы не различаются:
// продажи всех январей попадают в одну корзину "Jan".
type MonthlySales struct {
	Month string  `json:"month"` // Трёхбуквенное имя месяца (Jan..Dec)
	Total float64 `json:"total"` // Суммарная выручка корзины
}

// SalesSummary — сводка продаж для административной панели.
type SalesSummary struct {
	TotalSales   float64         `json:"total_sales"`   // Общая выручка по всем заказам, включая отменённые
	MonthlySales []MonthlySales  `json:"monthly_sales"` // Выручка по месяцам в календарном порядке
	StatusCounts map[string]int  `json:"status_counts"` // Количество заказов по статусам
	TopProducts  []*ProductSales `json:"top_products"`  // Самые продаваемые товары, включая отменённые заказы
}
