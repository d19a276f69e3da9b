// Package shopbackend собирает HTTP-приложение магазина: маршруты,
// middleware и жизненный цикл сервера.
package shopbackend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/adminorder/remove"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/adminorder/updatestatus"
	adminuserget "github.com/magabrotheeeer/shop-backend/internal/http/handlers/adminuser/get"
	adminuserlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/adminuser/list"
	adminuserremove "github.com/magabrotheeeer/shop-backend/internal/http/handlers/adminuser/remove"
	adminuserupdate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/adminuser/update"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/analytics/summary"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/auth/register"
	cartadd "github.com/magabrotheeeer/shop-backend/internal/http/handlers/cart/add"
	cartlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/cart/list"
	cartremove "github.com/magabrotheeeer/shop-backend/internal/http/handlers/cart/remove"
	cartupdate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/cart/update"
	categorylist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/category/list"
	contactcreate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/contact/create"
	contactlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/contact/list"
	contactremove "github.com/magabrotheeeer/shop-backend/internal/http/handlers/contact/remove"
	contactupdate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/contact/update"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/health"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/order/checkout"
	orderlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/order/list"
	orderread "github.com/magabrotheeeer/shop-backend/internal/http/handlers/order/read"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/passwordreset/requestotp"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/passwordreset/requesttoken"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/passwordreset/verifyotp"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/passwordreset/verifytoken"
	paymentcreate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/payment/create"
	paymentverify "github.com/magabrotheeeer/shop-backend/internal/http/handlers/payment/verify"
	productcreate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/create"
	productlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/list"
	productread "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/read"
	productremove "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/topselling"
	productupdate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/update"
	wishlistadd "github.com/magabrotheeeer/shop-backend/internal/http/handlers/wishlist/add"
	wishlistlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/wishlist/list"
	wishlistremove "github.com/magabrotheeeer/shop-backend/internal/http/handlers/wishlist/remove"
	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"

	analyticsservice "github.com/magabrotheeeer/shop-backend/internal/services/analytics"
	authservice "github.com/magabrotheeeer/shop-backend/internal/services/auth"
	cartservice "github.com/magabrotheeeer/shop-backend/internal/services/cart"
	catalogservice "github.com/magabrotheeeer/shop-backend/internal/services/catalog"
	contactservice "github.com/magabrotheeeer/shop-backend/internal/services/contact"
	orderservice "github.com/magabrotheeeer/shop-backend/internal/services/order"
	resetservice "github.com/magabrotheeeer/shop-backend/internal/services/passwordreset"
	paymentservice "github.com/magabrotheeeer/shop-backend/internal/services/payment"
	userservice "github.com/magabrotheeeer/shop-backend/internal/services/user"
	wishlistservice "github.com/magabrotheeeer/shop-backend/internal/services/wishlist"
)

// Services объединяет бизнес-логику, необходимую для регистрации маршрутов.
type Services struct {
	Auth     *authservice.AuthService
	Catalog  *catalogservice.CatalogService
	Cart     *cartservice.CartService
	Wishlist *wishlistservice.WishlistService
	Order    *orderservice.OrderService
	User     *userservice.UserService
	Payment  *paymentservice.PaymentService
	Reset    *resetservice.ResetService
	Contact  *contactservice.ContactService
	Analytic *analyticsservice.AnalyticsService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, svc.Auth).ServeHTTP)

		r.Get("/products", productlist.New(logger, svc.Catalog).ServeHTTP)
		r.Get("/products/top-selling", topselling.New(logger, svc.Catalog).ServeHTTP)
		r.Get("/products/{id}", productread.New(logger, svc.Catalog).ServeHTTP)
		r.Get("/categories", categorylist.New(logger, svc.Catalog).ServeHTTP)

		r.Post("/contacts", contactcreate.New(logger, svc.Contact).ServeHTTP)

		r.Post("/password-reset/otp", requestotp.New(logger, svc.Reset).ServeHTTP)
		r.Post("/password-reset/otp/verify", verifyotp.New(logger, svc.Reset).ServeHTTP)
		r.Post("/password-reset/token", requesttoken.New(logger, svc.Reset).ServeHTTP)
		r.Post("/password-reset/token/verify", verifytoken.New(logger, svc.Reset).ServeHTTP)

		// Подтверждение оплаты приходит от клиента после редиректа шлюза
		r.Post("/payments/verify", paymentverify.New(logger, svc.Payment).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.UserStatusMiddleware(svc.User, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/cart", cartlist.New(logger, svc.Cart).ServeHTTP)
			r.Post("/cart", cartadd.New(logger, svc.Cart).ServeHTTP)
			r.Put("/cart/{id}", cartupdate.New(logger, svc.Cart).ServeHTTP)
			r.Delete("/cart/{id}", cartremove.New(logger, svc.Cart).ServeHTTP)

			r.Get("/wishlist", wishlistlist.New(logger, svc.Wishlist).ServeHTTP)
			r.Post("/wishlist", wishlistadd.New(logger, svc.Wishlist).ServeHTTP)
			r.Delete("/wishlist/{id}", wishlistremove.New(logger, svc.Wishlist).ServeHTTP)

			r.Post("/orders", checkout.New(logger, svc.Order).ServeHTTP)
			r.Get("/orders", orderlist.New(logger, svc.Order).ServeHTTP)
			r.Get("/orders/{id}", orderread.New(logger, svc.Order).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, svc.Payment).ServeHTTP)
		})

		// Административная группа
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.UserStatusMiddleware(svc.User, logger))
			r.Use(middlewarectx.StaffMiddleware(logger))

			r.Post("/admin/products", productcreate.New(logger, svc.Catalog).ServeHTTP)
			r.Put("/admin/products/{id}", productupdate.New(logger, svc.Catalog).ServeHTTP)
			r.Delete("/admin/products/{id}", productremove.New(logger, svc.Catalog).ServeHTTP)

			r.Put("/admin/orders/{id}/status", updatestatus.New(logger, svc.Order).ServeHTTP)
			r.Delete("/admin/orders/{id}", remove.New(logger, svc.Order).ServeHTTP)

			r.Get("/admin/users", adminuserlist.New(logger, svc.User).ServeHTTP)
			r.Get("/admin/users/{uid}", adminuserget.New(logger, svc.User).ServeHTTP)
			r.Put("/admin/users/{uid}", adminuserupdate.New(logger, svc.User).ServeHTTP)
			r.Delete("/admin/users/{uid}", adminuserremove.New(logger, svc.User).ServeHTTP)

			r.Get("/admin/analytics", summary.New(logger, svc.Analytic).ServeHTTP)

			r.Get("/admin/contacts", contactlist.New(logger, svc.Contact).ServeHTTP)
			r.Put("/admin/contacts/{id}", contactupdate.New(logger, svc.Contact).ServeHTTP)
			r.Delete("/admin/contacts/{id}", contactremove.New(logger, svc.Contact).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
