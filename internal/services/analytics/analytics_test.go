package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
	services "github.com/magabrotheeeer/shop-backend/internal/services/analytics"
)

type AnalyticsRepoMock struct {
	mock.Mock
}

func (m *AnalyticsRepoMock) ListOrderSummaries(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *AnalyticsRepoMock) TopProducts(ctx context.Context, limit int, excludeCancelled bool) ([]*models.ProductSales, error) {
	args := m.Called(ctx, limit, excludeCancelled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProductSales), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
}

func TestAnalyticsService_Summary(t *testing.T) {
	adminActor := models.Actor{UID: "admin-uid", Role: "admin"}

	orders := []*models.Order{
		{ID: 1, Total: 100.0, Status: models.OrderStatusPaid, CreatedAt: date(2023, time.January)},
		{ID: 2, Total: 250.0, Status: models.OrderStatusPending, CreatedAt: date(2024, time.January)},
		{ID: 3, Total: 400.0, Status: models.OrderStatusCancelled, CreatedAt: date(2024, time.March)},
		{ID: 4, Total: 50.0, Status: models.OrderStatusPaid, CreatedAt: date(2024, time.December)},
	}
	top := []*models.ProductSales{
		{Product: models.Product{ID: 3}, Quantity: 9},
		{Product: models.Product{ID: 1}, Quantity: 4},
	}

	repo := new(AnalyticsRepoMock)
	svc := services.NewAnalyticsService(repo, newTestLogger())
	repo.On("ListOrderSummaries", mock.Anything).Return(orders, nil).Once()
	repo.On("TopProducts", mock.Anything, 5, false).Return(top, nil).Once()

	got, err := svc.Summary(context.Background(), adminActor)
	require.NoError(t, err)

	// Общая выручка включает отмененные заказы
	assert.Equal(t, 800.0, got.TotalSales)

	// Корзины месяцев сворачивают годы (январи 2023 и 2024 суммируются),
	// месяцы без заказов отсутствуют, порядок календарный
	assert.Equal(t, []models.MonthlySales{
		{Month: "Jan", Total: 350.0},
		{Month: "Mar", Total: 400.0},
		{Month: "Dec", Total: 50.0},
	}, got.MonthlySales)

	assert.Equal(t, map[string]int{
		models.OrderStatusPaid:      2,
		models.OrderStatusPending:   1,
		models.OrderStatusCancelled: 1,
	}, got.StatusCounts)

	assert.Equal(t, top, got.TopProducts)
	repo.AssertExpectations(t)
}

func TestAnalyticsService_Summary_Forbidden(t *testing.T) {
	repo := new(AnalyticsRepoMock)
	svc := services.NewAnalyticsService(repo, newTestLogger())

	got, err := svc.Summary(context.Background(), models.Actor{UID: "user-uid", Role: "user"})
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, got)
}

func TestAnalyticsService_Summary_Empty(t *testing.T) {
	repo := new(AnalyticsRepoMock)
	svc := services.NewAnalyticsService(repo, newTestLogger())
	repo.On("ListOrderSummaries", mock.Anything).Return([]*models.Order{}, nil).Once()
	repo.On("TopProducts", mock.Anything, 5, false).Return([]*models.ProductSales{}, nil).Once()

	got, err := svc.Summary(context.Background(), models.Actor{UID: "admin-uid", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalSales)
	assert.Empty(t, got.MonthlySales)
	assert.Empty(t, got.StatusCounts)
}
