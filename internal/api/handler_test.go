package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/kalambet/autopro/internal/catalog"
	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/preferences"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/session"
	"github.com/kalambet/autopro/internal/storage"
)

func setupAppHandler(t *testing.T) (http.Handler, *session.Manager, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sessions := session.NewManager(store, 0)

	handler := NewAppHandler(AppDeps{
		Catalog:     catalog.Default(),
		Session:     sessions,
		Preferences: preferences.New(store),
		Storage:     store,
	})
	return handler, sessions, store
}

func doReq(h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rr.Code, want, rr.Body.String())
	}
}

func expectErrorType(t *testing.T, rr *httptest.ResponseRecorder, code int, errType string) {
	t.Helper()
	expectStatus(t, rr, code)
	var body struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Error.Type != errType {
		t.Errorf("error type = %q, want %q (message %q)", body.Error.Type, errType, body.Error.Message)
	}
}

func login(t *testing.T, h http.Handler) {
	t.Helper()
	rr := doReq(h, http.MethodPost, "/auth/login", `{"email":"max@example.com","password":"pw"}`)
	expectStatus(t, rr, http.StatusOK)
}

func TestHealth(t *testing.T) {
	h, _, _ := setupAppHandler(t)
	rr := doReq(h, http.MethodGet, "/health", "")
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestCatalogEndpoints(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	tests := []struct {
		path string
		want int
	}{
		{"/catalog/models", 3},
		{"/catalog/trims", 4},
		{"/catalog/powertrains", 5},
		{"/catalog/exteriors", 6},
		{"/catalog/accessories", 8},
	}
	for _, tc := range tests {
		rr := doReq(h, http.MethodGet, tc.path, "")
		expectStatus(t, rr, http.StatusOK)
		items := decode[[]json.RawMessage](t, rr)
		if len(items) != tc.want {
			t.Errorf("%s returned %d items, want %d", tc.path, len(items), tc.want)
		}
	}

	rr := doReq(h, http.MethodGet, "/catalog/filter-options", "")
	expectStatus(t, rr, http.StatusOK)
	opts := decode[catalog.FilterOptions](t, rr)
	if len(opts.Makes) == 0 {
		t.Error("filter options have no makes")
	}

	rr = doReq(h, http.MethodGet, "/catalog/models/apex-suv", "")
	expectStatus(t, rr, http.StatusOK)
	if m := decode[catalog.CarModel](t, rr); m.BasePrice != 54990 {
		t.Errorf("BasePrice = %d", m.BasePrice)
	}

	rr = doReq(h, http.MethodGet, "/catalog/models/nope", "")
	expectErrorType(t, rr, http.StatusNotFound, "not_found")
}

func TestSearchUsedCars(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	rr := doReq(h, http.MethodGet, "/used-cars?make=BMW&minPrice=60000&maxPrice=70000", "")
	expectStatus(t, rr, http.StatusOK)
	resp := decode[SearchResponse](t, rr)
	if resp.Total != 1 || len(resp.Results) != 1 || resp.Results[0].ID != "uc-001" {
		t.Fatalf("results = %+v", resp.Results)
	}
	if !resp.Active {
		t.Error("Active = false with structured filters")
	}
	if resp.Stats.Count != 1 || resp.Stats.Lowest != resp.Results[0].Price {
		t.Errorf("Stats = %+v", resp.Stats)
	}
	if resp.Query.SortBy != search.DefaultSort {
		t.Errorf("SortBy = %q, want default", resp.Query.SortBy)
	}
}

func TestSearchUsedCars_AllSortedAndEmpty(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	rr := doReq(h, http.MethodGet, "/used-cars?sort=priceAsc", "")
	expectStatus(t, rr, http.StatusOK)
	resp := decode[SearchResponse](t, rr)
	if resp.Total != 12 || resp.Active {
		t.Fatalf("Total = %d, Active = %v", resp.Total, resp.Active)
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].Price < resp.Results[i-1].Price {
			t.Fatalf("results not sorted by price at %d", i)
		}
	}

	rr = doReq(h, http.MethodGet, "/used-cars?q=nonexistent", "")
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"results":[]`) {
		t.Errorf("empty search should return an empty array: %s", rr.Body.String())
	}
}

func TestSearchUsedCars_InvalidQuery(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	for _, q := range []string{
		"minPrice=cheap",
		"sort=random",
		"minYear=2022&maxYear=2020",
		"maxMileage=-5",
	} {
		rr := doReq(h, http.MethodGet, "/used-cars?"+q, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rr.Code)
		}
	}
}

func TestGetUsedCar(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	rr := doReq(h, http.MethodGet, "/used-cars/uc-001", "")
	expectStatus(t, rr, http.StatusOK)
	if car := decode[catalog.UsedCar](t, rr); car.ID != "uc-001" {
		t.Errorf("ID = %q", car.ID)
	}

	rr = doReq(h, http.MethodGet, "/used-cars/uc-999", "")
	expectErrorType(t, rr, http.StatusNotFound, "not_found")
}

func TestQuote(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	body := `{"model":"apex-suv","trim":"luxury","powertrain":"hybrid-250","exterior":"racing-red","accessories":["tow-bar","roof-rails"]}`
	rr := doReq(h, http.MethodPost, "/configurator/quote", body)
	expectStatus(t, rr, http.StatusOK)
	q := decode[configurator.Quote](t, rr)
	if q.Total != 75530 || !q.Complete {
		t.Errorf("quote = %+v", q)
	}

	rr = doReq(h, http.MethodPost, "/configurator/quote", `{"model":"apex-suv"}`)
	expectStatus(t, rr, http.StatusOK)
	q = decode[configurator.Quote](t, rr)
	if q.Total != 54990 || q.Complete || len(q.Missing) != 3 {
		t.Errorf("partial quote = %+v", q)
	}

	rr = doReq(h, http.MethodPost, "/configurator/quote", `{"model":"warp-drive"}`)
	expectErrorType(t, rr, http.StatusBadRequest, "invalid_request_error")

	rr = doReq(h, http.MethodPost, "/configurator/quote", `{not json`)
	expectErrorType(t, rr, http.StatusBadRequest, "invalid_request_error")
}

func TestAccountRequiresSession(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/account"},
		{http.MethodDelete, "/account"},
		{http.MethodGet, "/account/configurations"},
		{http.MethodPost, "/account/filters"},
		{http.MethodGet, "/account/orders"},
		{http.MethodGet, "/account/export"},
	} {
		rr := doReq(h, tc.method, tc.path, "{}")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, rr.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	h, _, store := setupAppHandler(t)

	rr := doReq(h, http.MethodPost, "/auth/login", `{"email":"","password":"pw"}`)
	expectErrorType(t, rr, http.StatusUnauthorized, "authentication_error")

	rr = doReq(h, http.MethodPost, "/auth/login", `{"email":"max@example.com","password":"pw"}`)
	expectStatus(t, rr, http.StatusOK)
	if u := decode[session.User](t, rr); u.Email != "max@example.com" {
		t.Errorf("user = %+v", u)
	}

	rr = doReq(h, http.MethodGet, "/account", "")
	expectStatus(t, rr, http.StatusOK)
	acct := decode[Account](t, rr)
	if len(acct.Configurations) != 1 || len(acct.Orders) != 1 || acct.Filters == nil {
		t.Errorf("account = %+v", acct)
	}

	if _, err := store.Get(session.KeyUser); err != nil {
		t.Errorf("user not persisted: %v", err)
	}
}

func TestRegister(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	rr := doReq(h, http.MethodPost, "/auth/register", `{"name":"Anna","email":"anna@example.com","password":"a","confirmPassword":"b"}`)
	expectErrorType(t, rr, http.StatusBadRequest, "invalid_request_error")

	rr = doReq(h, http.MethodPost, "/auth/register", `{"name":"Anna","email":"anna@example.com","password":"a","confirmPassword":"a"}`)
	expectStatus(t, rr, http.StatusCreated)
	u := decode[session.User](t, rr)
	if !strings.HasPrefix(u.ID, "user-") || u.Name != "Anna" {
		t.Errorf("user = %+v", u)
	}

	rr = doReq(h, http.MethodGet, "/account/orders", "")
	expectStatus(t, rr, http.StatusOK)
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("orders = %s, want []", rr.Body.String())
	}
}

func TestStorageEntries(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	rr := doReq(h, http.MethodGet, "/storage", "")
	expectStatus(t, rr, http.StatusOK)
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("empty store = %s, want []", rr.Body.String())
	}

	login(t, h)
	rr = doReq(h, http.MethodGet, "/storage", "")
	expectStatus(t, rr, http.StatusOK)
	entries := decode[[]storage.Entry](t, rr)
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	want := []string{session.KeyConfigurations, session.KeyFilters, session.KeyOrders, session.KeyUser}
	if !slices.Equal(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}

	bare := NewAppHandler(AppDeps{Catalog: catalog.Default()})
	if rr := doReq(bare, http.MethodGet, "/storage", ""); rr.Code != http.StatusNotFound {
		t.Errorf("without a store status = %d, want 404", rr.Code)
	}
}

func TestSaveConfiguration(t *testing.T) {
	h, _, _ := setupAppHandler(t)
	login(t, h)

	rr := doReq(h, http.MethodPost, "/account/configurations", `{"model":"apex-suv","powertrain":"hybrid-250"}`)
	errBody := rr.Body.String()
	expectErrorType(t, rr, http.StatusBadRequest, "invalid_request_error")
	if !strings.Contains(errBody, "trim: step selection required") {
		t.Errorf("body = %s, want the first missing step", errBody)
	}

	body := `{"model":"velocity-sedan","trim":"sport","powertrain":"electric-300","exterior":"sunset-orange","accessories":["cargo-net"]}`
	rr = doReq(h, http.MethodPost, "/account/configurations", body)
	expectStatus(t, rr, http.StatusCreated)
	saved := decode[session.SavedConfiguration](t, rr)
	wantTotal := 42990 + 7500 + 12000 + 1400 + 120
	if saved.TotalPrice != wantTotal || saved.Model != "VELOCITY Sedan" {
		t.Errorf("saved = %+v, want total %d", saved, wantTotal)
	}

	rr = doReq(h, http.MethodGet, "/account/configurations", "")
	expectStatus(t, rr, http.StatusOK)
	if list := decode[[]session.SavedConfiguration](t, rr); len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	rr = doReq(h, http.MethodDelete, "/account/configurations/"+saved.ID, "")
	expectStatus(t, rr, http.StatusNoContent)

	rr = doReq(h, http.MethodDelete, "/account/configurations/"+saved.ID, "")
	expectErrorType(t, rr, http.StatusNotFound, "not_found")
}

func TestSavedFilters(t *testing.T) {
	h, _, _ := setupAppHandler(t)
	login(t, h)

	rr := doReq(h, http.MethodPost, "/account/filters", `{"name":"Cheap BMW","filters":{"make":"BMW","maxPrice":50000,"sortBy":"priceAsc"}}`)
	expectStatus(t, rr, http.StatusCreated)
	f := decode[session.SavedFilter](t, rr)
	if f.Name != "Cheap BMW" || f.Filters.Make != "BMW" || f.Filters.SortBy != search.SortPriceAsc {
		t.Errorf("filter = %+v", f)
	}

	rr = doReq(h, http.MethodPost, "/account/filters", `{"filters":{"sortBy":"sideways"}}`)
	expectErrorType(t, rr, http.StatusBadRequest, "invalid_request_error")

	rr = doReq(h, http.MethodGet, "/account/filters", "")
	expectStatus(t, rr, http.StatusOK)
	if list := decode[[]session.SavedFilter](t, rr); len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}

	rr = doReq(h, http.MethodDelete, "/account/filters/"+f.ID, "")
	expectStatus(t, rr, http.StatusNoContent)
	rr = doReq(h, http.MethodDelete, "/account/filters/"+f.ID, "")
	expectStatus(t, rr, http.StatusNotFound)
}

func TestExport(t *testing.T) {
	h, _, _ := setupAppHandler(t)
	login(t, h)

	rr := doReq(h, http.MethodGet, "/account/export", "")
	expectStatus(t, rr, http.StatusOK)

	cd := rr.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, "autopro-data-export-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	exp := decode[session.Export](t, rr)
	if exp.User == nil || exp.User.Email != "max@example.com" || len(exp.Orders) != 1 {
		t.Errorf("export = %+v", exp)
	}
	if !strings.Contains(cd, session.ExportFilename(exp.ExportedAt)) {
		t.Errorf("filename in %q does not match exportedAt %v", cd, exp.ExportedAt)
	}
}

func TestLogoutAndDeleteAccount(t *testing.T) {
	h, sessions, store := setupAppHandler(t)
	login(t, h)

	rr := doReq(h, http.MethodPost, "/auth/logout", "")
	expectStatus(t, rr, http.StatusNoContent)
	if sessions.Authenticated() {
		t.Error("still authenticated after logout")
	}
	rr = doReq(h, http.MethodGet, "/account", "")
	expectStatus(t, rr, http.StatusUnauthorized)

	login(t, h)
	rr = doReq(h, http.MethodDelete, "/account", "")
	expectStatus(t, rr, http.StatusNoContent)
	if _, err := store.Get(session.KeyConfigurations); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("configurations key survived account deletion: %v", err)
	}
}

func TestLanguagePreference(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	rr := doReq(h, http.MethodGet, "/preferences/language", "")
	expectStatus(t, rr, http.StatusOK)
	resp := decode[LanguageResponse](t, rr)
	if resp.Language.Code != "en" || len(resp.Supported) != 3 {
		t.Errorf("language = %+v", resp)
	}

	rr = doReq(h, http.MethodPut, "/preferences/language", `{"code":"bg"}`)
	expectStatus(t, rr, http.StatusOK)

	rr = doReq(h, http.MethodGet, "/preferences/language", "")
	if resp := decode[LanguageResponse](t, rr); resp.Language.Code != "bg" {
		t.Errorf("language = %q, want bg", resp.Language.Code)
	}

	rr = doReq(h, http.MethodPut, "/preferences/language", `{"code":"klingon"}`)
	expectErrorType(t, rr, http.StatusBadRequest, "invalid_request_error")
}

func TestConsentPreference(t *testing.T) {
	h, _, _ := setupAppHandler(t)

	rr := doReq(h, http.MethodGet, "/preferences/consent", "")
	expectStatus(t, rr, http.StatusOK)
	resp := decode[ConsentResponse](t, rr)
	if resp.Decided || !resp.Consent.Necessary {
		t.Errorf("initial consent = %+v", resp)
	}

	rr = doReq(h, http.MethodPut, "/preferences/consent", `{"necessary":false,"analytics":true}`)
	expectStatus(t, rr, http.StatusOK)
	resp = decode[ConsentResponse](t, rr)
	if !resp.Consent.Necessary || !resp.Consent.Analytics || resp.Consent.Marketing || !resp.Decided {
		t.Errorf("consent = %+v", resp)
	}

	rr = doReq(h, http.MethodPost, "/preferences/consent/accept-all", "")
	expectStatus(t, rr, http.StatusOK)
	if resp := decode[ConsentResponse](t, rr); !resp.Consent.Marketing {
		t.Errorf("accept-all = %+v", resp)
	}

	rr = doReq(h, http.MethodPost, "/preferences/consent/reject-all", "")
	expectStatus(t, rr, http.StatusOK)
	if resp := decode[ConsentResponse](t, rr); resp.Consent.Analytics || resp.Consent.Marketing || !resp.Consent.Necessary {
		t.Errorf("reject-all = %+v", resp)
	}
}

func TestFailWithStatusMapping(t *testing.T) {
	tests := []struct {
		err     error
		code    int
		errType string
	}{
		{&search.ValidationError{Field: "sortBy", Message: "x"}, http.StatusBadRequest, "invalid_request_error"},
		{&configurator.ValidationError{Field: "model", Message: "x"}, http.StatusBadRequest, "invalid_request_error"},
		{&session.ValidationError{Field: "name", Message: "x"}, http.StatusBadRequest, "invalid_request_error"},
		{&preferences.ValidationError{Field: "language", Message: "x"}, http.StatusBadRequest, "invalid_request_error"},
		{session.ErrInvalidCredentials, http.StatusUnauthorized, "authentication_error"},
		{session.ErrNotAuthenticated, http.StatusUnauthorized, "authentication_error"},
		{session.ErrBusy, http.StatusConflict, "conflict"},
		{fmt.Errorf("filter %q: %w", "f", session.ErrNotFound), http.StatusNotFound, "not_found"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "api_error"},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		failWith(rr, tc.err)
		expectErrorType(t, rr, tc.code, tc.errType)
	}
}
