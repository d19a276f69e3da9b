package shopbackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/shop-backend/internal/cache"
	"github.com/magabrotheeeer/shop-backend/internal/config"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/shop-backend/internal/migrations"
	"github.com/magabrotheeeer/shop-backend/internal/paymentprovider"
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
	"github.com/magabrotheeeer/shop-backend/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер магазина и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: хранилище, кеш, брокер, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.ConnectionString, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, cfg.RefreshTTL)
	gateway := paymentprovider.NewClient(cfg.PaymentGateway.KeyID, cfg.PaymentGateway.KeySecret, cfg.PaymentGateway.APIURL)

	svc := Services{
		Auth:     authservice.NewAuthService(db, jwtMaker),
		Catalog:  catalogservice.NewCatalogService(db, cacheRedis, logger),
		Cart:     cartservice.NewCartService(db, logger),
		Wishlist: wishlistservice.NewWishlistService(db, logger),
		Order:    orderservice.NewOrderService(db, publisher, logger),
		User:     userservice.NewUserService(db, logger),
		Payment:  paymentservice.NewPaymentService(db, gateway, cfg.PaymentGateway.Currency, logger),
		Reset:    resetservice.NewResetService(db, publisher, logger),
		Contact:  contactservice.NewContactService(db, logger),
		Analytic: analyticsservice.NewAnalyticsService(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, svc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает сервер и блокируется до его остановки либо отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		if closeErr := a.cache.Db.Close(); closeErr != nil {
			a.logger.Error("failed to close redis client", slog.Any("err", closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
