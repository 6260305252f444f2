// Package search filters and orders used-car listings.
package search

import (
	"cmp"
	"slices"

	"github.com/kalambet/autopro/internal/catalog"
)

// Apply returns the listings that satisfy q, ordered by q.SortBy. The input is
// not modified. The result is never nil, so an empty match set can be told
// apart from a query that has not run yet.
func Apply(listings []catalog.UsedCar, q Query) []catalog.UsedCar {
	result := make([]catalog.UsedCar, 0, len(listings))
	for _, car := range listings {
		if q.Matches(car) {
			result = append(result, car)
		}
	}
	slices.SortStableFunc(result, comparator(q.SortBy))
	return result
}

func comparator(key SortKey) func(a, b catalog.UsedCar) int {
	switch key {
	case SortPriceAsc:
		return func(a, b catalog.UsedCar) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b catalog.UsedCar) int { return cmp.Compare(b.Price, a.Price) }
	case SortMileageAsc:
		return func(a, b catalog.UsedCar) int { return cmp.Compare(a.Mileage, b.Mileage) }
	default:
		return func(a, b catalog.UsedCar) int { return cmp.Compare(b.Year, a.Year) }
	}
}

// Stats summarises the prices of a result set.
type Stats struct {
	Count   int `json:"count"`
	Lowest  int `json:"lowest,omitempty"`
	Median  int `json:"median,omitempty"`
	Highest int `json:"highest,omitempty"`
}

// Summarize computes price statistics for listings. For an even count the
// median is the upper of the two middle prices.
func Summarize(listings []catalog.UsedCar) Stats {
	if len(listings) == 0 {
		return Stats{}
	}
	prices := make([]int, len(listings))
	for i, l := range listings {
		prices[i] = l.Price
	}
	slices.Sort(prices)
	return Stats{
		Count:   len(prices),
		Lowest:  prices[0],
		Median:  prices[len(prices)/2],
		Highest: prices[len(prices)-1],
	}
}
