package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kalambet/autopro/internal/catalog"
	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/preferences"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/session"
	"github.com/kalambet/autopro/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// EntryLister lists what the local store holds.
type EntryLister interface {
	Entries() ([]storage.Entry, error)
}

type AppDeps struct {
	Catalog     *catalog.Catalog
	Session     *session.Manager
	Preferences *preferences.Store
	// Storage backs GET /storage. The route is absent when nil.
	Storage EntryLister
	// DefaultSort applies to used-car searches that name no sort key.
	DefaultSort search.SortKey
}

// NewAppHandler returns the JSON API. Account routes require a signed-in
// session; everything else is public.
func NewAppHandler(deps AppDeps) http.Handler {
	if deps.DefaultSort == "" {
		deps.DefaultSort = search.DefaultSort
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", handleHealth)
	if deps.Storage != nil {
		r.Get("/storage", handleStorageEntries(deps))
	}

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/models", handleListModels(deps))
		r.Get("/models/{id}", handleGetModel(deps))
		r.Get("/trims", handleListTrims(deps))
		r.Get("/powertrains", handleListPowertrains(deps))
		r.Get("/exteriors", handleListExteriors(deps))
		r.Get("/accessories", handleListAccessories(deps))
		r.Get("/filter-options", handleFilterOptions(deps))
	})

	r.Get("/used-cars", handleSearchUsedCars(deps))
	r.Get("/used-cars/{id}", handleGetUsedCar(deps))

	r.Post("/configurator/quote", handleQuote(deps))

	r.Post("/auth/login", handleLogin(deps))
	r.Post("/auth/register", handleRegister(deps))
	r.Post("/auth/logout", handleLogout(deps))

	r.Route("/account", func(r chi.Router) {
		r.Use(RequireSession(deps.Session))

		r.Get("/", handleGetAccount(deps))
		r.Delete("/", handleDeleteAccount(deps))
		r.Get("/configurations", handleListConfigurations(deps))
		r.Post("/configurations", handleSaveConfiguration(deps))
		r.Delete("/configurations/{id}", handleDeleteConfiguration(deps))
		r.Get("/filters", handleListFilters(deps))
		r.Post("/filters", handleSaveFilter(deps))
		r.Delete("/filters/{id}", handleDeleteFilter(deps))
		r.Get("/orders", handleListOrders(deps))
		r.Get("/export", handleExport(deps))
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/language", handleGetLanguage(deps))
		r.Put("/language", handleSetLanguage(deps))
		r.Get("/consent", handleGetConsent(deps))
		r.Put("/consent", handleSetConsent(deps))
		r.Post("/consent/accept-all", handleAcceptAll(deps))
		r.Post("/consent/reject-all", handleRejectAll(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleStorageEntries(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := deps.Storage.Entries()
		if err != nil {
			failWith(w, err)
			return
		}
		if entries == nil {
			entries = []storage.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

// failWith maps a domain error onto the error envelope.
func failWith(w http.ResponseWriter, err error) {
	var (
		searchErr *search.ValidationError
		configErr *configurator.ValidationError
		formErr   *session.ValidationError
		prefErr   *preferences.ValidationError
	)
	switch {
	case errors.As(err, &searchErr), errors.As(err, &configErr), errors.As(err, &formErr), errors.As(err, &prefErr):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	case errors.Is(err, configurator.ErrStepIncomplete):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "configuration incomplete: %v", err)
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrNotAuthenticated):
		httpError(w, http.StatusUnauthorized, "authentication_error", "%v", err)
	case errors.Is(err, session.ErrBusy):
		httpError(w, http.StatusConflict, "conflict", "%v", err)
	case errors.Is(err, session.ErrNotFound):
		httpError(w, http.StatusNotFound, "not_found", "%v", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpError(w, http.StatusServiceUnavailable, "api_error", "request cancelled: %v", err)
	default:
		slog.Error("request failed", "error", err)
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}
