// Package topselling реализует HTTP-обработчик подборки самых продаваемых товаров.
package topselling

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Handler обрабатывает запросы на подборку самых продаваемых товаров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подборки хитов продаж.
type Service interface {
	TopSelling(ctx context.Context) ([]*models.ProductSales, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Хиты продаж
// @Description Возвращает три самых продаваемых товара без учета отмененных заказов.
// @Tags Products
// @Produce  json
// @Success 200 {object} map[string]any "Список товаров с количеством продаж"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /products/top-selling [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.topselling"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.TopSelling(r.Context())
	if err != nil {
		log.Error("failed to list top selling products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list top selling products"))
		return
	}

	log.Info("list top selling products", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": res,
	}))
}
