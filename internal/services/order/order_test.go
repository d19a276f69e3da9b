package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
	services "github.com/magabrotheeeer/shop-backend/internal/services/order"
)

type OrderRepoMock struct {
	mock.Mock
}

func (m *OrderRepoMock) Checkout(ctx context.Context, userUID, address string) (*models.Order, error) {
	args := m.Called(ctx, userUID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepoMock) ReadOrder(ctx context.Context, id int, userUID string) (*models.Order, error) {
	args := m.Called(ctx, id, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepoMock) ListOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *OrderRepoMock) UpdateOrderStatus(ctx context.Context, id int, status string, cancelledByAdmin bool) (int, error) {
	args := m.Called(ctx, id, status, cancelledByAdmin)
	return args.Int(0), args.Error(1)
}

func (m *OrderRepoMock) RemoveOrder(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *OrderRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	superuser   = models.Actor{UID: "root-uid", Username: "root", Role: "admin", IsSuperuser: true}
	adminActor  = models.Actor{UID: "admin-uid", Username: "admin", Role: "admin"}
	simpleActor = models.Actor{UID: "user-uid", Username: "user", Role: "user"}
)

func TestOrderService_Checkout(t *testing.T) {
	order := &models.Order{
		ID:      11,
		UserUID: "user-uid",
		Total:   5100.0,
		Address: "ул. Ленина, 1",
		Status:  models.OrderStatusPending,
	}
	user := &models.User{UID: "user-uid", Username: "user", Email: "user@example.com"}

	tests := []struct {
		name       string
		setupMocks func(r *OrderRepoMock, p *PublisherMock)
		want       *models.Order
		wantErr    error
	}{
		{
			name: "успешное оформление с письмом",
			setupMocks: func(r *OrderRepoMock, p *PublisherMock) {
				r.On("Checkout", mock.Anything, "user-uid", "ул. Ленина, 1").Return(order, nil).Once()
				r.On("GetUser", mock.Anything, "user-uid").Return(user, nil).Once()
				p.On("Publish", "order.confirmation", mock.MatchedBy(func(msg models.EmailMessage) bool {
					return msg.To == "user@example.com"
				})).Return(nil).Once()
			},
			want: order,
		},
		{
			name: "пустая корзина",
			setupMocks: func(r *OrderRepoMock, _ *PublisherMock) {
				r.On("Checkout", mock.Anything, "user-uid", "ул. Ленина, 1").Return(nil, errs.ErrEmptyCart).Once()
			},
			wantErr: errs.ErrEmptyCart,
		},
		{
			name: "сбой публикации не отменяет заказ",
			setupMocks: func(r *OrderRepoMock, p *PublisherMock) {
				r.On("Checkout", mock.Anything, "user-uid", "ул. Ленина, 1").Return(order, nil).Once()
				r.On("GetUser", mock.Anything, "user-uid").Return(user, nil).Once()
				p.On("Publish", "order.confirmation", mock.Anything).Return(errors.New("broker down")).Once()
			},
			want: order,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(OrderRepoMock)
			publisher := new(PublisherMock)
			svc := services.NewOrderService(repo, publisher, newTestLogger())
			tt.setupMocks(repo, publisher)

			got, err := svc.Checkout(context.Background(), simpleActor, models.DummyCheckout{Address: "ул. Ленина, 1"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_List(t *testing.T) {
	orders := []*models.Order{{ID: 1}, {ID: 2}}

	t.Run("покупатель видит только свои заказы", func(t *testing.T) {
		repo := new(OrderRepoMock)
		svc := services.NewOrderService(repo, new(PublisherMock), newTestLogger())
		repo.On("ListOrders", mock.Anything, "user-uid", 10, 0).Return(orders, nil).Once()

		got, err := svc.List(context.Background(), simpleActor, 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, orders, got)
		repo.AssertExpectations(t)
	})

	t.Run("админ видит все заказы", func(t *testing.T) {
		repo := new(OrderRepoMock)
		svc := services.NewOrderService(repo, new(PublisherMock), newTestLogger())
		repo.On("ListOrders", mock.Anything, "", 10, 0).Return(orders, nil).Once()

		got, err := svc.List(context.Background(), adminActor, 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, orders, got)
		repo.AssertExpectations(t)
	})
}

func TestOrderService_Read(t *testing.T) {
	order := &models.Order{ID: 11, UserUID: "user-uid"}

	t.Run("чужой заказ не существует для покупателя", func(t *testing.T) {
		repo := new(OrderRepoMock)
		svc := services.NewOrderService(repo, new(PublisherMock), newTestLogger())
		repo.On("ReadOrder", mock.Anything, 11, "user-uid").Return(nil, errs.ErrNotFound).Once()

		got, err := svc.Read(context.Background(), simpleActor, 11)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.Nil(t, got)
		repo.AssertExpectations(t)
	})

	t.Run("админ читает любой заказ", func(t *testing.T) {
		repo := new(OrderRepoMock)
		svc := services.NewOrderService(repo, new(PublisherMock), newTestLogger())
		repo.On("ReadOrder", mock.Anything, 11, "").Return(order, nil).Once()

		got, err := svc.Read(context.Background(), adminActor, 11)
		assert.NoError(t, err)
		assert.Equal(t, order, got)
		repo.AssertExpectations(t)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	cancelled := &models.Order{ID: 11, Status: models.OrderStatusCancelled, CancelledByAdmin: true}
	shipped := &models.Order{ID: 11, Status: models.OrderStatusShipped}

	tests := []struct {
		name       string
		actor      models.Actor
		status     string
		setupMocks func(r *OrderRepoMock)
		want       *models.Order
		wantErr    error
	}{
		{
			name:   "отмена администратором помечает заказ",
			actor:  adminActor,
			status: models.OrderStatusCancelled,
			setupMocks: func(r *OrderRepoMock) {
				r.On("UpdateOrderStatus", mock.Anything, 11, models.OrderStatusCancelled, true).Return(1, nil).Once()
				r.On("ReadOrder", mock.Anything, 11, "").Return(cancelled, nil).Once()
			},
			want: cancelled,
		},
		{
			name:   "обычная смена статуса",
			actor:  adminActor,
			status: models.OrderStatusShipped,
			setupMocks: func(r *OrderRepoMock) {
				r.On("UpdateOrderStatus", mock.Anything, 11, models.OrderStatusShipped, false).Return(1, nil).Once()
				r.On("ReadOrder", mock.Anything, 11, "").Return(shipped, nil).Once()
			},
			want: shipped,
		},
		{
			name:       "покупателю запрещено",
			actor:      simpleActor,
			status:     models.OrderStatusShipped,
			setupMocks: func(_ *OrderRepoMock) {},
			wantErr:    errs.ErrForbidden,
		},
		{
			name:   "несуществующий заказ",
			actor:  adminActor,
			status: models.OrderStatusShipped,
			setupMocks: func(r *OrderRepoMock) {
				r.On("UpdateOrderStatus", mock.Anything, 11, models.OrderStatusShipped, false).Return(0, nil).Once()
			},
			wantErr: errs.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(OrderRepoMock)
			svc := services.NewOrderService(repo, new(PublisherMock), newTestLogger())
			tt.setupMocks(repo)

			got, err := svc.UpdateStatus(context.Background(), tt.actor, 11, models.DummyOrderStatus{Status: tt.status})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestOrderService_Remove(t *testing.T) {
	t.Run("суперпользователь удаляет заказ", func(t *testing.T) {
		repo := new(OrderRepoMock)
		svc := services.NewOrderService(repo, new(PublisherMock), newTestLogger())
		repo.On("RemoveOrder", mock.Anything, 11).Return(1, nil).Once()

		err := svc.Remove(context.Background(), superuser, 11)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("админу запрещено удалять", func(t *testing.T) {
		repo := new(OrderRepoMock)
		svc := services.NewOrderService(repo, new(PublisherMock), newTestLogger())

		err := svc.Remove(context.Background(), adminActor, 11)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}
