package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/autopro/internal/catalog"
	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/search"
)

func handleListModels(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Catalog.Models())
	}
}

func handleGetModel(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := deps.Catalog.Model(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "not_found", "model not found")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func handleListTrims(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Catalog.Trims())
	}
}

func handleListPowertrains(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Catalog.Powertrains())
	}
}

func handleListExteriors(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Catalog.Exteriors())
	}
}

func handleListAccessories(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Catalog.Accessories())
	}
}

func handleFilterOptions(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Catalog.FilterOptions())
	}
}

// SearchResponse is the body of GET /used-cars.
type SearchResponse struct {
	Results []catalog.UsedCar `json:"results"`
	Total   int               `json:"total"`
	Stats   search.Stats      `json:"stats"`
	Active  bool              `json:"active"`
	Query   search.Query      `json:"query"`
}

func handleSearchUsedCars(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r.URL.Query())
		if err != nil {
			failWith(w, err)
			return
		}
		if q.SortBy == "" {
			q.SortBy = deps.DefaultSort
		}
		resp, err := runSearch(deps.Catalog, q)
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// runSearch validates q and evaluates it against the catalog listings.
func runSearch(cat *catalog.Catalog, q search.Query) (SearchResponse, error) {
	if err := q.Validate(); err != nil {
		return SearchResponse{}, err
	}
	results := search.Apply(cat.UsedCars(), q)
	return SearchResponse{
		Results: results,
		Total:   len(results),
		Stats:   search.Summarize(results),
		Active:  q.Active(),
		Query:   q,
	}, nil
}

func handleGetUsedCar(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		car, ok := deps.Catalog.UsedCar(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "not_found", "listing not found")
			return
		}
		writeJSON(w, http.StatusOK, car)
	}
}

// parseQuery reads a used-car filter from URL parameters. Numeric bounds must
// be integers; absent parameters stay unset.
func parseQuery(v url.Values) (search.Query, error) {
	q := search.Query{
		Text:         v.Get("q"),
		Make:         v.Get("make"),
		BodyType:     v.Get("bodyType"),
		Fuel:         v.Get("fuel"),
		Transmission: v.Get("transmission"),
		Drivetrain:   v.Get("drivetrain"),
		Location:     v.Get("location"),
	}

	if s := v.Get("sort"); s != "" {
		key, err := search.ParseSortKey(s)
		if err != nil {
			return search.Query{}, err
		}
		q.SortBy = key
	}

	bounds := []struct {
		name string
		dst  *int
	}{
		{"minPrice", &q.MinPrice},
		{"maxPrice", &q.MaxPrice},
		{"minYear", &q.MinYear},
		{"maxYear", &q.MaxYear},
		{"minMileage", &q.MinMileage},
		{"maxMileage", &q.MaxMileage},
	}
	for _, b := range bounds {
		s := v.Get(b.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return search.Query{}, &search.ValidationError{Field: b.name, Message: "must be an integer"}
		}
		*b.dst = n
	}
	return q, nil
}

func handleQuote(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ids configurator.SelectionIDs
		if !decodeBody(w, r, &ids) {
			return
		}
		sel, err := configurator.Resolve(deps.Catalog, ids)
		if err != nil {
			failWith(w, err)
			return
		}
		writeJSON(w, http.StatusOK, configurator.NewQuote(sel))
	}
}
