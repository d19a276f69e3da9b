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
	services "github.com/magabrotheeeer/shop-backend/internal/services/wishlist"
)

type WishlistRepoMock struct {
	mock.Mock
}

func (m *WishlistRepoMock) AddWishlistItem(ctx context.Context, userUID string, productID int) (int, error) {
	args := m.Called(ctx, userUID, productID)
	return args.Int(0), args.Error(1)
}

func (m *WishlistRepoMock) ListWishlistItems(ctx context.Context, userUID string) ([]*models.WishlistItem, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WishlistItem), args.Error(1)
}

func (m *WishlistRepoMock) RemoveWishlistItem(ctx context.Context, userUID string, itemID int) (int, error) {
	args := m.Called(ctx, userUID, itemID)
	return args.Int(0), args.Error(1)
}

func (m *WishlistRepoMock) ReadProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	ownerActor = models.Actor{UID: "user-uid", Username: "user", Role: "user"}
	superActor = models.Actor{UID: "super-uid", Username: "root", Role: "admin", IsSuperuser: true}
)

func TestWishlistService_Add(t *testing.T) {
	product := &models.Product{ID: 5, Name: "Velvet Oud", Price: 4200.0}

	t.Run("товар сохранен", func(t *testing.T) {
		repo := new(WishlistRepoMock)
		repo.On("ReadProduct", mock.Anything, 5).Return(product, nil).Once()
		repo.On("AddWishlistItem", mock.Anything, "user-uid", 5).Return(21, nil).Once()

		svc := services.NewWishlistService(repo, newTestLogger())
		id, err := svc.Add(context.Background(), ownerActor, models.DummyWishlistItem{ProductID: 5})

		assert.NoError(t, err)
		assert.Equal(t, 21, id)
		repo.AssertExpectations(t)
	})

	t.Run("несуществующий товар", func(t *testing.T) {
		repo := new(WishlistRepoMock)
		repo.On("ReadProduct", mock.Anything, 99).Return(nil, errs.ErrNotFound).Once()

		svc := services.NewWishlistService(repo, newTestLogger())
		_, err := svc.Add(context.Background(), ownerActor, models.DummyWishlistItem{ProductID: 99})

		assert.ErrorIs(t, err, errs.ErrNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		repo := new(WishlistRepoMock)
		repo.On("ReadProduct", mock.Anything, 5).Return(product, nil).Once()
		repo.On("AddWishlistItem", mock.Anything, "user-uid", 5).Return(0, errors.New("db down")).Once()

		svc := services.NewWishlistService(repo, newTestLogger())
		_, err := svc.Add(context.Background(), ownerActor, models.DummyWishlistItem{ProductID: 5})

		assert.Error(t, err)
		repo.AssertExpectations(t)
	})
}

func TestWishlistService_Remove(t *testing.T) {
	t.Run("владелец удаляет свою запись", func(t *testing.T) {
		repo := new(WishlistRepoMock)
		repo.On("RemoveWishlistItem", mock.Anything, "user-uid", 21).Return(1, nil).Once()

		svc := services.NewWishlistService(repo, newTestLogger())
		err := svc.Remove(context.Background(), ownerActor, 21)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("суперпользователь удаляет чужую запись", func(t *testing.T) {
		repo := new(WishlistRepoMock)
		repo.On("RemoveWishlistItem", mock.Anything, "", 21).Return(1, nil).Once()

		svc := services.NewWishlistService(repo, newTestLogger())
		err := svc.Remove(context.Background(), superActor, 21)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("чужая запись неотличима от несуществующей", func(t *testing.T) {
		repo := new(WishlistRepoMock)
		repo.On("RemoveWishlistItem", mock.Anything, "user-uid", 77).Return(0, nil).Once()

		svc := services.NewWishlistService(repo, newTestLogger())
		err := svc.Remove(context.Background(), ownerActor, 77)

		assert.ErrorIs(t, err, errs.ErrNotFound)
		repo.AssertExpectations(t)
	})
}

func TestWishlistService_List(t *testing.T) {
	items := []*models.WishlistItem{
		{ID: 21, UserUID: "user-uid", Product: models.Product{ID: 5, Name: "Velvet Oud"}},
	}

	repo := new(WishlistRepoMock)
	repo.On("ListWishlistItems", mock.Anything, "user-uid").Return(items, nil).Once()

	svc := services.NewWishlistService(repo, newTestLogger())
	got, err := svc.List(context.Background(), ownerActor)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Velvet Oud", got[0].Product.Name)
	repo.AssertExpectations(t)
}
