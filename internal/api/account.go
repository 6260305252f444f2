package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/session"
)

// Account is the body of GET /account.
type Account struct {
	User           session.User                 `json:"user"`
	Configurations []session.SavedConfiguration `json:"configurations"`
	Filters        []session.SavedFilter        `json:"filters"`
	Orders         []session.Order              `json:"orders"`
}

func handleGetAccount(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := deps.Session.User()
		if !ok {
			failWith(w, session.ErrNotAuthenticated)
			return
		}
		writeJSON(w, http.StatusOK, Account{
			User:           user,
			Configurations: deps.Session.Configurations(),
			Filters:        deps.Session.Filters(),
			Orders:         deps.Session.Orders(),
		})
	}
}

func handleDeleteAccount(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Session.DeleteAccount(); err != nil {
			failWith(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListConfigurations(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Session.Configurations())
	}
}

// handleSaveConfiguration walks the posted selection through the wizard and
// stores its summary. Only selections that reach the summary step are saved.
func handleSaveConfiguration(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ids configurator.SelectionIDs
		if !decodeBody(w, r, &ids) {
			return
		}
		wiz, err := configurator.Walk(deps.Catalog, ids)
		if err != nil {
			failWith(w, err)
			return
		}
		saved, err := deps.Session.AddConfiguration(wiz.Summary())
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func handleDeleteConfiguration(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Session.DeleteConfiguration(chi.URLParam(r, "id")); err != nil {
			failWith(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListFilters(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Session.Filters())
	}
}

type SaveFilterRequest struct {
	Name    string       `json:"name"`
	Filters search.Query `json:"filters"`
}

func handleSaveFilter(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveFilterRequest
		if !decodeBody(w, r, &req) {
			return
		}
		saved, err := deps.Session.AddFilter(req.Filters, req.Name)
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func handleDeleteFilter(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Session.DeleteFilter(chi.URLParam(r, "id")); err != nil {
			failWith(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListOrders(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Session.Orders())
	}
}

// handleExport sends the account data as an indented JSON download.
func handleExport(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exp, err := deps.Session.Export()
		if err != nil {
			failWith(w, err)
			return
		}
		data, err := json.MarshalIndent(exp, "", "  ")
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to encode export: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", session.ExportFilename(exp.ExportedAt)))
		w.Write(data)
	}
}
