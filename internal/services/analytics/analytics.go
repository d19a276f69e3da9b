// Package services содержит агрегацию продаж для административной панели.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/shop-backend/internal/access"
	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// AnalyticsRepository определяет выборки, необходимые для сводки продаж.
type AnalyticsRepository interface {
	// ListOrderSummaries возвращает заголовки всех заказов без позиций.
	ListOrderSummaries(ctx context.Context) ([]*models.Order, error)
	// TopProducts возвращает товары с наибольшим проданным количеством.
	TopProducts(ctx context.Context, limit int, excludeCancelled bool) ([]*models.ProductSales, error)
}

// Количество позиций в рейтинге товаров сводки. Отменённые заказы учитываются.
const topProductsLimit = 5

// AnalyticsService строит сводку продаж: выручку, помесячные корзины,
// распределение статусов и рейтинг товаров.
type AnalyticsService struct {
	repo AnalyticsRepository
	log  *slog.Logger
}

// NewAnalyticsService создает новый экземпляр AnalyticsService.
func NewAnalyticsService(repo AnalyticsRepository, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, log: log}
}

// Summary строит сводку продаж. Доступно только персоналу.
//
// Выручка и рейтинг товаров считаются по всем заказам, включая отменённые:
// сводка отражает оборот, а не чистую выручку. Помесячные корзины сворачивают
// годы: январи всех лет суммируются в одну корзину "Jan". Месяцы без заказов
// в сводку не попадают.
func (s *AnalyticsService) Summary(ctx context.Context, actor models.Actor) (*models.SalesSummary, error) {
	if !access.CanSeeAll(actor) {
		return nil, errs.ErrForbidden
	}

	orders, err := s.repo.ListOrderSummaries(ctx)
	if err != nil {
		return nil, err
	}

	var totalSales float64
	monthTotals := make(map[time.Month]float64, 12)
	statusCounts := make(map[string]int)
	for _, order := range orders {
		totalSales += order.Total
		monthTotals[order.CreatedAt.Month()] += order.Total
		statusCounts[order.Status]++
	}

	monthly := make([]models.MonthlySales, 0, len(monthTotals))
	for m := time.January; m <= time.December; m++ {
		total, ok := monthTotals[m]
		if !ok {
			continue
		}
		monthly = append(monthly, models.MonthlySales{
			Month: m.String()[:3],
			Total: total,
		})
	}

	top, err := s.repo.TopProducts(ctx, topProductsLimit, false)
	if err != nil {
		return nil, err
	}

	s.log.Info("built sales summary",
		slog.Int("orders", len(orders)),
		slog.Float64("total_sales", totalSales))

	return &models.SalesSummary{
		TotalSales:   totalSales,
		MonthlySales: monthly,
		StatusCounts: statusCounts,
		TopProducts:  top,
	}, nil
}
