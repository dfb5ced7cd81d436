package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/config"
	"github.com/quantara/tradesim/internal/database"
	"github.com/quantara/tradesim/internal/events"
	"github.com/quantara/tradesim/internal/locking"
	"github.com/quantara/tradesim/internal/modules/catalog"
	"github.com/quantara/tradesim/internal/modules/orders"
	"github.com/quantara/tradesim/internal/modules/portfolio"
	"github.com/quantara/tradesim/internal/modules/trading"
)

// Config holds server configuration
type Config struct {
	Port      int
	Log       zerolog.Logger
	DB        *database.DB
	Config    *config.Config
	Locks     *locking.Manager
	Events    *events.Manager
	Portfolio *portfolio.Service
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	db        *database.DB
	cfg       *config.Config
	locks     *locking.Manager
	events    *events.Manager
	portfolio *portfolio.Service
	startedAt time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		db:        cfg.DB,
		cfg:       cfg.Config,
		locks:     cfg.Locks,
		events:    cfg.Events,
		portfolio: cfg.Portfolio,
		startedAt: time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})
	})

	s.setupTradingRoutes()
}

// setupTradingRoutes wires the order-intake and portfolio modules
func (s *Server) setupTradingRoutes() {
	conn := s.db.Conn()

	catalogRepo := catalog.NewRepository(conn, s.log)
	orderRepo := orders.NewRepository(conn, s.log)
	tradeRepo := trading.NewTradeRepository(conn, s.log)
	positionRepo := portfolio.NewPositionRepository(conn, s.log)

	validator := orders.NewValidator(catalogRepo, s.log)
	orderService := orders.NewService(
		s.db,
		validator,
		orderRepo,
		tradeRepo,
		positionRepo,
		s.locks,
		s.events,
		s.log,
	)

	catalogHandlers := catalog.NewHandlers(catalogRepo, s.log)
	orderHandlers := orders.NewHandlers(orderService, s.log)
	tradingHandlers := trading.NewHandlers(tradeRepo, s.log)
	portfolioHandlers := portfolio.NewHandlers(s.portfolio, s.log)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/instruments", catalogHandlers.HandleListInstruments)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandlers.HandlePlaceOrder)
			r.Get("/{orderID}", orderHandlers.HandleGetOrder)
		})

		r.Get("/trades", tradingHandlers.HandleListTrades)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandlers.HandleGetPortfolio)
			r.Get("/summary", portfolioHandlers.HandleGetSummary)
		})
	})
}

// loggingMiddleware logs each request with timing
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the chi router (used by tests)
func (s *Server) Router() *chi.Mux {
	return s.router
}
