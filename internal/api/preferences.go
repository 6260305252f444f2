package api

import (
	"net/http"

	"github.com/kalambet/autopro/internal/preferences"
)

type LanguageResponse struct {
	Language  preferences.Language   `json:"language"`
	Supported []preferences.Language `json:"supported"`
}

type ConsentResponse struct {
	Consent preferences.Consent `json:"consent"`
	Decided bool                `json:"decided"`
}

func handleGetLanguage(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := deps.Preferences.Language()
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusOK, LanguageResponse{Language: l, Supported: preferences.Languages()})
	}
}

func handleSetLanguage(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Code string `json:"code"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		l, err := deps.Preferences.SetLanguage(req.Code)
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusOK, LanguageResponse{Language: l, Supported: preferences.Languages()})
	}
}

func handleGetConsent(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, decided, err := deps.Preferences.Consent()
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ConsentResponse{Consent: c, Decided: decided})
	}
}

func handleSetConsent(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req preferences.Consent
		if !decodeBody(w, r, &req) {
			return
		}
		writeConsent(w, func() (preferences.Consent, error) { return deps.Preferences.SetConsent(req) })
	}
}

func handleAcceptAll(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeConsent(w, deps.Preferences.AcceptAll)
	}
}

func handleRejectAll(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeConsent(w, deps.Preferences.RejectAll)
	}
}

func writeConsent(w http.ResponseWriter, set func() (preferences.Consent, error)) {
	c, err := set()
	if err != nil {
		failWith(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConsentResponse{Consent: c, Decided: true})
}
