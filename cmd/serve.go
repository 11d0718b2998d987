package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/surface-labs/surface-layers/internal/api"
	"github.com/surface-labs/surface-layers/internal/thermal"
	"github.com/surface-labs/surface-layers/pkg/imagery"
	"github.com/surface-labs/surface-layers/pkg/overpass"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the surface layers HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fetcher := overpass.NewClient(overpass.Options{
			Endpoints: cfg.Overpass.Endpoints,
			Timeout:   time.Duration(cfg.Overpass.TimeoutSecs) * time.Second,
		})

		var imageryOpts []imagery.Option
		tokens, err := imagery.TokenSource(ctx, cfg.Imagery.CredentialsFile, cfg.Imagery.Scope)
		if err != nil {
			if !eris.Is(err, imagery.ErrNoCredentials) {
				return err
			}
			// The layer endpoints still work without imagery credentials;
			// only surface-temperature requests will fail.
			zap.L().Warn("no imagery credentials found, surface temperature disabled")
		} else {
			imageryOpts = append(imageryOpts, imagery.WithTokenSource(tokens))
		}
		sampler := thermal.NewSampler(imagery.NewClient(cfg.Imagery.BaseURL, imageryOpts...))

		handler := api.NewHandler(fetcher, sampler)
		router := newRouter(handler, cfg.Server.AllowedOrigins, cfg.Server.StaticDir)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter wires the API routes, CORS, and static SPA serving.
func newRouter(handler *api.Handler, allowedOrigins []string, staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(api.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Post("/api/generate-layers", handler.GenerateLayers)
	r.Post("/api/surface-temperature", handler.SurfaceTemperature)

	// Built frontend, when present, is served with client-side-routing
	// fallback: unknown non-API paths get index.html.
	r.NotFound(spaHandler(staticDir))

	return r
}

// spaHandler serves files from the built frontend directory, falling back to
// index.html for client-side routes. API paths always 404 as JSON.
func spaHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.Error(w, `{"detail":"API endpoint not found"}`, http.StatusNotFound)
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			http.ServeFile(w, r, requested)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.Error(w, `{"detail":"Frontend not built"}`, http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, index)
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
