package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"canpulse/internal/config"
	apierrors "canpulse/internal/errors"
	"canpulse/internal/files"
	"canpulse/internal/infrastructure"
	custommw "canpulse/internal/middleware"
	"canpulse/internal/reference"
	"canpulse/internal/scraper"
	"canpulse/internal/services"
	handlers "canpulse/internal/transport/http"
	"canpulse/internal/viz"
	ws "canpulse/internal/websocket"
	"canpulse/internal/workflow"
	"canpulse/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	WebSocketHub  *ws.Hub
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	ErrorHandler  *apierrors.ErrorHandler
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Store    *files.Store
	Scrape   *services.ScrapeService
	Workflow *services.WorkflowService
	Viz      *services.VizService
	Summary  *services.SummaryService
	Health   *services.HealthService
}

// NewApplication wires the services, the status feed and the router for cfg.
// The caller owns logger initialization.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  handlers.NewErrorHandler(logger, cfg.Logging.Development),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	hub := ws.NewHub(a.Logger)
	a.WebSocketHub = hub

	store := files.NewStore(a.Paths, a.Logger)

	engine := scraper.NewEngine(
		scraper.NewChromeFetcher(a.Config.Scraper, a.Logger),
		scraper.NewParser(a.Config.Scraper.FixtureSelector),
		a.Logger,
	)
	generator := viz.NewGenerator(store, viz.OptionsFrom(a.Config.Viz), a.Logger)

	a.Services = &ServiceContainer{
		Store: store,
		Scrape: services.NewScrapeService(engine, store, services.ScrapeOptions{
			URL:            a.Config.Scraper.URL,
			TicketsUpdated: reference.DefaultTicketsUpdated,
		}, a.Metrics, hub, a.Logger),
		Workflow: services.NewWorkflowService(workflow.NewSession(), store, a.Metrics, hub, a.Logger),
		Viz:      services.NewVizService(generator, store, a.Metrics, hub, a.Logger),
		Summary:  services.NewSummaryService(store, a.Logger),
		Health:   services.NewHealthService(store, hub, a.Logger),
	}
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	eh := a.ErrorHandler

	// Safe for the websocket upgrade: neither wraps the ResponseWriter
	r.Use(custommw.RequestID)
	r.Use(chimw.RealIP)

	r.NotFound(eh.NotFound)
	r.MethodNotAllowed(eh.MethodNotAllowed)

	r.Method(http.MethodGet, "/ws", handlers.NewWebSocketHandler(a.WebSocketHub, a.Config.Security.AllowedOrigins, a.Logger))
	r.Method(http.MethodGet, "/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, eh))

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer → CORS → RateLimit → Timeout
		r.Use(custommw.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(eh))
		r.Use(custommw.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(cors.Handler(a.corsOptions()))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
				eh,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	validator := custommw.NewValidator()
	eh := a.ErrorHandler
	svc := a.Services

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Group(func(r chi.Router) {
			r.Use(custommw.Timeout(a.Config.Server.ReadTimeout))

			health := handlers.NewHealthHandler(svc.Health, a.Logger)
			r.Mount("/health", health.Routes())
			r.Get("/version", health.Version)

			r.Mount("/data", handlers.NewDataHandler(svc.Summary, validator, a.Logger, eh).Routes())
		})

		// Browser extraction, uploads and view generation can run long
		r.Group(func(r chi.Router) {
			r.Use(custommw.Timeout(a.Config.Server.OperationTimeout))

			r.Mount("/scrape", handlers.NewScrapeHandler(svc.Scrape, validator, a.Logger, eh).Routes())
			r.Mount("/workflow", handlers.NewWorkflowHandler(svc.Workflow, validator,
				a.Config.Server.MaxUploadBytes, a.Logger, eh).Routes())
			r.Mount("/viz", handlers.NewVizHandler(svc.Viz, a.Logger, eh).Routes())
		})
	})
}

func (a *Application) corsOptions() cors.Options {
	origins := a.Config.Security.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Addr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully. A cancelled context is a clean exit.
func (a *Application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, listener)
}

// Serve runs the application on an existing listener
func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	a.WebSocketHub.Start()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", listener.Addr().String()),
		slog.String("data_dir", a.Paths.DataDir))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	a.WebSocketHub.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
