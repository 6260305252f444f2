package search

import (
	"fmt"
	"strings"

	"github.com/kalambet/autopro/internal/catalog"
)

// SortKey selects the ordering of a result set.
type SortKey string

const (
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortYearDesc   SortKey = "yearDesc"
	SortMileageAsc SortKey = "mileageAsc"
)

// DefaultSort is used when a query carries no sort key.
const DefaultSort = SortYearDesc

// SortKeys lists every supported sort key.
func SortKeys() []SortKey {
	return []SortKey{SortYearDesc, SortPriceAsc, SortPriceDesc, SortMileageAsc}
}

// ParseSortKey validates s. The empty string maps to DefaultSort.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return DefaultSort, nil
	}
	for _, k := range SortKeys() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", &ValidationError{Field: "sortBy", Message: fmt.Sprintf("unknown sort key %q", s)}
}

// Query is a used-car filter. String fields left empty and numeric bounds left
// at zero impose no constraint.
type Query struct {
	Text         string `json:"searchQuery,omitempty"`
	Make         string `json:"make,omitempty"`
	BodyType     string `json:"bodyType,omitempty"`
	Fuel         string `json:"fuel,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Drivetrain   string `json:"drivetrain,omitempty"`
	Location     string `json:"location,omitempty"`

	MinPrice   int `json:"minPrice,omitempty"`
	MaxPrice   int `json:"maxPrice,omitempty"`
	MinYear    int `json:"minYear,omitempty"`
	MaxYear    int `json:"maxYear,omitempty"`
	MinMileage int `json:"minMileage,omitempty"`
	MaxMileage int `json:"maxMileage,omitempty"`

	SortBy SortKey `json:"sortBy,omitempty"`
}

// ValidationError reports a malformed query field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the sort key and that no bound is negative or inverted.
func (q Query) Validate() error {
	if _, err := ParseSortKey(string(q.SortBy)); err != nil {
		return err
	}
	bounds := []struct {
		name     string
		min, max int
	}{
		{"price", q.MinPrice, q.MaxPrice},
		{"year", q.MinYear, q.MaxYear},
		{"mileage", q.MinMileage, q.MaxMileage},
	}
	for _, b := range bounds {
		if b.min < 0 || b.max < 0 {
			return &ValidationError{Field: b.name, Message: "bounds must not be negative"}
		}
		if b.min > 0 && b.max > 0 && b.min > b.max {
			return &ValidationError{Field: b.name, Message: fmt.Sprintf("min %d exceeds max %d", b.min, b.max)}
		}
	}
	return nil
}

// Active reports whether any structured predicate is set. Free text and the
// sort key do not count.
func (q Query) Active() bool {
	return q.Make != "" || q.BodyType != "" || q.Fuel != "" || q.Transmission != "" ||
		q.Drivetrain != "" || q.Location != "" ||
		q.MinPrice != 0 || q.MaxPrice != 0 || q.MinYear != 0 || q.MaxYear != 0 ||
		q.MinMileage != 0 || q.MaxMileage != 0
}

// Matches reports whether car satisfies every populated predicate of q.
func (q Query) Matches(car catalog.UsedCar) bool {
	if q.Text != "" {
		text := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(car.Make), text) &&
			!strings.Contains(strings.ToLower(car.Model), text) {
			return false
		}
	}

	if !matchExact(q.Make, car.Make) ||
		!matchExact(q.BodyType, car.BodyType) ||
		!matchExact(q.Fuel, car.Fuel) ||
		!matchExact(q.Transmission, car.Transmission) ||
		!matchExact(q.Drivetrain, car.Drivetrain) ||
		!matchExact(q.Location, car.Location) {
		return false
	}

	return inRange(car.Price, q.MinPrice, q.MaxPrice) &&
		inRange(car.Year, q.MinYear, q.MaxYear) &&
		inRange(car.Mileage, q.MinMileage, q.MaxMileage)
}

func matchExact(want, got string) bool {
	return want == "" || want == got
}

// inRange treats a zero bound as open. Both bounds are inclusive.
func inRange(v, lo, hi int) bool {
	if lo != 0 && v < lo {
		return false
	}
	if hi != 0 && v > hi {
		return false
	}
	return true
}
