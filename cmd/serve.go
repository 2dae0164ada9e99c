package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/venue-finder/internal/export"
	"github.com/sells-group/venue-finder/internal/resolver"
	"github.com/sells-group/venue-finder/internal/venue"
)

// requestIDHeader carries the per-request id in both directions.
const requestIDHeader = "X-Request-ID"

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the venue lookup HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd)
		defer stop()

		res, err := initResolver(cfg, "serve")
		if err != nil {
			return err
		}

		router := buildRouter(res, cfg.Fetch.DefaultLimit)
		return startServer(ctx, router, resolvePort(servePort, cfg.Server.Port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort prefers the flag over the configured port.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// startServer serves h on port until ctx is canceled, then shuts down
// gracefully.
func startServer(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- eris.Wrap(err, "server listen")
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server shutdown")
	}
	return <-errCh
}

// buildRouter wires the HTTP API over src. Pipeline lookups never fail: a
// request either gets a (possibly empty) venue array or a 400 for missing
// parameters.
func buildRouter(src resolver.Fetcher, defaultLimit int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/venues", func(w http.ResponseWriter, req *http.Request) {
		city := req.URL.Query().Get("city")
		if city == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "city is required"})
			return
		}
		writeJSON(w, http.StatusOK, src.FetchVenues(req.Context(), city, queryLimit(req, defaultLimit)))
	})

	r.Get("/venues.geojson", func(w http.ResponseWriter, req *http.Request) {
		city := req.URL.Query().Get("city")
		if city == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "city is required"})
			return
		}
		vs := src.FetchVenues(req.Context(), city, queryLimit(req, defaultLimit))
		w.Header().Set("Content-Type", "application/geo+json")
		if err := export.WriteGeoJSON(w, vs); err != nil {
			zap.L().Error("write geojson", zap.Error(err))
		}
	})

	r.Get("/venues/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query().Get("q")
		if q == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q is required"})
			return
		}
		writeJSON(w, http.StatusOK, src.SearchVenues(req.Context(), q, queryLimit(req, defaultLimit)))
	})

	r.Get("/venues/sample", func(w http.ResponseWriter, req *http.Request) {
		c := venue.Criteria{
			Term: req.URL.Query().Get("term"),
			City: req.URL.Query().Get("city"),
		}
		writeJSON(w, http.StatusOK, venue.Filter(venue.Sample(), c))
	})

	return r
}

// queryLimit reads the "limit" parameter, ignoring non-positive or
// malformed values.
func queryLimit(req *http.Request, fallback int) int {
	if n, err := strconv.Atoi(req.URL.Query().Get("limit")); err == nil && n > 0 {
		return n
	}
	return fallback
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		zap.L().Info("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write json response", zap.Error(err))
	}
}
