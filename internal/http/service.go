package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/chicken-vending/internal/calculator"
	"github.com/tuanvumaihuynh/chicken-vending/internal/config"
	"github.com/tuanvumaihuynh/chicken-vending/internal/http/metric"
	"github.com/tuanvumaihuynh/chicken-vending/internal/http/middleware"
	"github.com/tuanvumaihuynh/chicken-vending/internal/http/swagger"
	"github.com/tuanvumaihuynh/chicken-vending/internal/service"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator

	healthChecker  db.HealthChecker
	productSvc     service.ProductService
	purchaseSvc    service.PurchaseService
	transactionSvc service.TransactionService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	validator validator.Validator,
	healthChecker db.HealthChecker,
	productSvc service.ProductService,
	purchaseSvc service.PurchaseService,
	transactionSvc service.TransactionService,
) *Service {
	return &Service{
		cfg:            cfg,
		logger:         log.With(slog.String("service", "http")),
		metrics:        metric.New(),
		validator:      validator,
		healthChecker:  healthChecker,
		productSvc:     productSvc,
		purchaseSvc:    purchaseSvc,
		transactionSvc: transactionSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Handler())
}

// Handler returns the fully wired router.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", srv.Addr))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.CorrelationID(),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.Cors(s.cfg.CorsOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.Get("/health", s.handle(s.Health))
	r.Get("/health/ready", s.handle(s.Ready))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handle(s.ListProducts))
		r.Post("/", s.handle(s.CreateProduct))
		r.Put("/", s.handle(s.UpdateProduct))
		r.Get("/{product_id}", s.handle(s.GetProduct))
		r.Delete("/{product_id}", s.handle(s.DeleteProduct))
	})

	r.Post("/buy", s.handle(s.BuyProduct))

	r.Get("/transactions", s.handle(s.ListTransactions))
	r.Get("/transactions/{transaction_id}", s.handle(s.GetTransaction))

	r.Post("/calculate", s.handle(s.Calculate))
	r.Get("/add", s.handle(s.binaryOperation(calculator.OperationAdd)))
	r.Get("/subtract", s.handle(s.binaryOperation(calculator.OperationSubtract)))
	r.Get("/multiply", s.handle(s.binaryOperation(calculator.OperationMultiply)))
	r.Get("/divide", s.handle(s.binaryOperation(calculator.OperationDivide)))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}
