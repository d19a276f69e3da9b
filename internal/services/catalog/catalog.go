// Package services содержит бизнес-логику каталога товаров и кеширование.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/shop-backend/internal/access"
	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	// CreateProduct добавляет новый товар и возвращает его ID.
	CreateProduct(ctx context.Context, p models.Product) (int, error)
	// ReadProduct возвращает товар по ID.
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
	// UpdateProduct обновляет данные товара по ID.
	UpdateProduct(ctx context.Context, p models.Product, id int) (int, error)
	// RemoveProduct удаляет товар по ID и возвращает количество удалённых записей.
	RemoveProduct(ctx context.Context, id int) (int, error)
	// ListProducts возвращает список товаров с фильтром по категории.
	ListProducts(ctx context.Context, category string) ([]*models.Product, error)
	// ListCategories возвращает список уникальных категорий.
	ListCategories(ctx context.Context) ([]string, error)
	// TopProducts возвращает товары с наибольшим проданным количеством.
	TopProducts(ctx context.Context, limit int, excludeCancelled bool) ([]*models.ProductSales, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Количество позиций в витрине самых продаваемых товаров.
// Отменённые заказы в ней не учитываются.
const topSellingLimit = 3

// CatalogService реализует бизнес-логику каталога, включая кеширование карточек.
type CatalogService struct {
	repo  ProductRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ProductRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет товар в каталог. Доступно только персоналу.
func (s *CatalogService) Create(ctx context.Context, actor models.Actor, req models.DummyProduct) (int, error) {
	if !access.Allowed(actor, access.ActionCreate, access.KindProduct) {
		return 0, errs.ErrForbidden
	}

	product := models.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Gender:      req.Gender,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
	}
	id, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new product", slog.Int("id", id))

	product.ID = id
	cacheKey := fmt.Sprintf("product:%d", id)
	if err := s.cache.Set(cacheKey, product, time.Hour); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return id, nil
}

// Read возвращает товар по ID, используя кеш или репозиторий.
func (s *CatalogService) Read(ctx context.Context, id int) (*models.Product, error) {
	var result *models.Product
	cacheKey := fmt.Sprintf("product:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return result, nil
}

// Update обновляет товар и его кеш. Доступно только персоналу.
func (s *CatalogService) Update(ctx context.Context, actor models.Actor, id int, req models.DummyProduct) (int, error) {
	if !access.Allowed(actor, access.ActionUpdate, access.KindProduct) {
		return 0, errs.ErrForbidden
	}

	product := models.Product{
		ID:          id,
		Name:        req.Name,
		Brand:       req.Brand,
		Gender:      req.Gender,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
	}
	count, err := s.repo.UpdateProduct(ctx, product, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errs.ErrNotFound
	}
	s.log.Info("updated product in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("product:%d", id)
	if err := s.cache.Set(cacheKey, product, time.Hour); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// Remove удаляет товар и инвалидирует кеш. Доступно только персоналу.
func (s *CatalogService) Remove(ctx context.Context, actor models.Actor, id int) (int, error) {
	if !access.Allowed(actor, access.ActionDelete, access.KindProduct) {
		return 0, errs.ErrForbidden
	}

	cacheKey := fmt.Sprintf("product:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.RemoveProduct(ctx, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errs.ErrNotFound
	}
	return count, nil
}

// List возвращает товары каталога, при необходимости отфильтрованные по категории.
func (s *CatalogService) List(ctx context.Context, category string) ([]*models.Product, error) {
	return s.repo.ListProducts(ctx, category)
}

// Categories возвращает список уникальных категорий каталога.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// TopSelling возвращает витрину самых продаваемых товаров без учета
// отмененных заказов.
func (s *CatalogService) TopSelling(ctx context.Context) ([]*models.ProductSales, error) {
	return s.repo.TopProducts(ctx, topSellingLimit, true)
}
