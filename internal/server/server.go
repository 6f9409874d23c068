// Package server exposes aggregated search over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"printfind/internal/formatter"
	"printfind/internal/model"
	"printfind/internal/output"
)

// Searcher is the aggregation the server delegates to.
type Searcher interface {
	Aggregate(ctx context.Context, query string) *model.SearchResponse
	Sources() []model.Source
}

var contentTypes = map[string]string{
	"json":     "application/json",
	"text":     "text/plain; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"html":     "text/html; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
}

// Handler builds the router. Every search request runs one aggregation
// bounded by timeout.
func Handler(s Searcher, timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/sources", func(w http.ResponseWriter, _ *http.Request) {
			type sourceInfo struct {
				Source model.Source `json:"source"`
				Name   string       `json:"name"`
			}
			srcs := s.Sources()
			out := make([]sourceInfo, 0, len(srcs))
			for _, src := range srcs {
				out = append(out, sourceInfo{Source: src, Name: src.DisplayName()})
			}
			writeJSON(w, http.StatusOK, out)
		})

		r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
			q := strings.TrimSpace(req.URL.Query().Get("q"))
			if q == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q is required"})
				return
			}
			format := req.URL.Query().Get("format")
			if format == "" {
				format = "json"
			}
			if !formatter.Valid(format) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported format: " + format})
				return
			}

			ctx := req.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			resp := s.Aggregate(ctx, q)
			body, err := formatter.Format(output.NewResponseContent(resp), format)
			if err != nil {
				zap.L().Error("format search response", zap.String("format", format), zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to render response"})
				return
			}
			w.Header().Set("Content-Type", contentTypes[format])
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(body))
		})
	})

	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write json response", zap.Error(err))
	}
}
