package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/tenant-atlas/pkg/handlers"
	"github.com/de-tools/tenant-atlas/pkg/handlers/calculation"
	"github.com/de-tools/tenant-atlas/pkg/handlers/posts"
	"github.com/de-tools/tenant-atlas/pkg/handlers/stations"
	tenantatlasmiddleware "github.com/de-tools/tenant-atlas/pkg/server/middleware"
	"github.com/de-tools/tenant-atlas/pkg/services/calculator"
	"github.com/de-tools/tenant-atlas/pkg/services/config"
	"github.com/de-tools/tenant-atlas/pkg/services/listing"
	"github.com/de-tools/tenant-atlas/pkg/store/post"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Listings   listing.Explorer
	Calculator calculator.Service
	Presets    config.PresetRegistry
	Posts      post.Store
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter wires every API route under /api/v1.
func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	stationHandler := stations.NewHandler(deps.Listings)
	calcHandler := calculation.NewHandler(deps.Calculator, deps.Presets)
	postHandler := posts.NewHandler(deps.Posts)

	router := chi.NewRouter()

	router.Use(tenantatlasmiddleware.CorrelationID)
	router.Use(tenantatlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/stations", stationHandler.ListStations)
		r.Get("/stations/{station}", stationHandler.GetStation)

		r.Get("/tenants", stationHandler.ListTenants)
		r.Get("/tenants/{id}", stationHandler.GetTenant)
		r.Get("/tenants/{id}/calculation", calcHandler.Calculate)
		r.Post("/tenants/{id}/calculation", calcHandler.Calculate)

		r.Get("/presets", calcHandler.ListPresets)

		r.Get("/posts", postHandler.List)
		r.Post("/posts", postHandler.Create)
		r.Get("/posts/{id}", postHandler.Get)
		r.Put("/posts/{id}", postHandler.Update)
		r.Delete("/posts/{id}", postHandler.Delete)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until the process receives SIGINT or SIGTERM, then drains
// outstanding requests.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
