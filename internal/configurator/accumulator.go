// Package configurator prices new-car configurations and drives the guided
// selection flow.
package configurator

import (
	"fmt"
	"slices"

	"github.com/kalambet/autopro/internal/catalog"
)

// Selection is a possibly partial configuration. Nil parts are not chosen yet.
type Selection struct {
	Model       *catalog.CarModel
	Trim        *catalog.Trim
	Powertrain  *catalog.Powertrain
	Exterior    *catalog.ExteriorPackage
	Accessories []catalog.Accessory
}

// Total is the base price plus every selected option price. Missing parts
// contribute zero.
func (s Selection) Total() int {
	total := 0
	if s.Model != nil {
		total += s.Model.BasePrice
	}
	if s.Trim != nil {
		total += s.Trim.Price
	}
	if s.Powertrain != nil {
		total += s.Powertrain.Price
	}
	if s.Exterior != nil {
		total += s.Exterior.Price
	}
	for _, a := range s.Accessories {
		total += a.Price
	}
	return total
}

// Complete reports whether model, trim, powertrain and exterior are chosen.
// Accessories are optional.
func (s Selection) Complete() bool {
	return len(s.Missing()) == 0
}

// Missing lists the required steps that have no selection yet, in flow order.
func (s Selection) Missing() []Step {
	var missing []Step
	if s.Model == nil {
		missing = append(missing, StepModel)
	}
	if s.Trim == nil {
		missing = append(missing, StepTrim)
	}
	if s.Powertrain == nil {
		missing = append(missing, StepPowertrain)
	}
	if s.Exterior == nil {
		missing = append(missing, StepExterior)
	}
	return missing
}

// HasAccessory reports whether the accessory with id is selected.
func (s Selection) HasAccessory(id string) bool {
	return slices.ContainsFunc(s.Accessories, func(a catalog.Accessory) bool { return a.ID == id })
}

// ToggleAccessory adds a if it is not selected and removes it otherwise.
// Copies of s that share its accessory slice are left untouched.
func (s *Selection) ToggleAccessory(a catalog.Accessory) {
	if s.HasAccessory(a.ID) {
		s.Accessories = slices.DeleteFunc(slices.Clone(s.Accessories), func(x catalog.Accessory) bool { return x.ID == a.ID })
		return
	}
	s.Accessories = append(slices.Clip(s.Accessories), a)
}

// SelectionIDs identifies a selection by catalog IDs. Empty IDs are unset.
type SelectionIDs struct {
	Model       string   `json:"model"`
	Trim        string   `json:"trim"`
	Powertrain  string   `json:"powertrain"`
	Exterior    string   `json:"exterior"`
	Accessories []string `json:"accessories"`
}

// ValidationError reports a selection that references an unknown option.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Resolve looks up every ID in cat. Duplicate accessory IDs are selected once.
func Resolve(cat *catalog.Catalog, ids SelectionIDs) (Selection, error) {
	var s Selection

	if ids.Model != "" {
		m, ok := cat.Model(ids.Model)
		if !ok {
			return Selection{}, unknown("model", ids.Model)
		}
		s.Model = &m
	}
	if ids.Trim != "" {
		t, ok := cat.Trim(ids.Trim)
		if !ok {
			return Selection{}, unknown("trim", ids.Trim)
		}
		s.Trim = &t
	}
	if ids.Powertrain != "" {
		p, ok := cat.Powertrain(ids.Powertrain)
		if !ok {
			return Selection{}, unknown("powertrain", ids.Powertrain)
		}
		s.Powertrain = &p
	}
	if ids.Exterior != "" {
		e, ok := cat.Exterior(ids.Exterior)
		if !ok {
			return Selection{}, unknown("exterior", ids.Exterior)
		}
		s.Exterior = &e
	}
	for _, id := range ids.Accessories {
		a, ok := cat.Accessory(id)
		if !ok {
			return Selection{}, unknown("accessory", id)
		}
		if !s.HasAccessory(id) {
			s.Accessories = append(s.Accessories, a)
		}
	}
	return s, nil
}

func unknown(field, id string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("unknown id %q", id)}
}

// LineItem is one priced component of a quote.
type LineItem struct {
	Kind  string `json:"kind"` // "model", "trim", "powertrain", "exterior", "accessory"
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Quote is the priced breakdown of a selection.
type Quote struct {
	Lines    []LineItem `json:"lines"`
	Total    int        `json:"total"`
	Complete bool       `json:"complete"`
	Missing  []Step     `json:"missing,omitempty"`
}

// NewQuote prices s. Total always equals the sum of the line prices.
func NewQuote(s Selection) Quote {
	lines := []LineItem{}
	if s.Model != nil {
		lines = append(lines, LineItem{Kind: "model", ID: s.Model.ID, Name: s.Model.Name, Price: s.Model.BasePrice})
	}
	if s.Trim != nil {
		lines = append(lines, LineItem{Kind: "trim", ID: s.Trim.ID, Name: s.Trim.Name, Price: s.Trim.Price})
	}
	if s.Powertrain != nil {
		lines = append(lines, LineItem{Kind: "powertrain", ID: s.Powertrain.ID, Name: s.Powertrain.Name, Price: s.Powertrain.Price})
	}
	if s.Exterior != nil {
		lines = append(lines, LineItem{Kind: "exterior", ID: s.Exterior.ID, Name: s.Exterior.Name, Price: s.Exterior.Price})
	}
	for _, a := range s.Accessories {
		lines = append(lines, LineItem{Kind: "accessory", ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return Quote{
		Lines:    lines,
		Total:    s.Total(),
		Complete: s.Complete(),
		Missing:  s.Missing(),
	}
}

// Summary is the name-level description of a complete selection, the shape
// saved into a user's account.
type Summary struct {
	Model       string   `json:"model"`
	Trim        string   `json:"trim"`
	Powertrain  string   `json:"powertrain"`
	Exterior    string   `json:"exterior"`
	Accessories []string `json:"accessories"`
	TotalPrice  int      `json:"totalPrice"`
}

// Summarize describes s by display names. Missing parts are empty strings.
func Summarize(s Selection) Summary {
	sum := Summary{Accessories: []string{}, TotalPrice: s.Total()}
	if s.Model != nil {
		sum.Model = s.Model.Name
	}
	if s.Trim != nil {
		sum.Trim = s.Trim.Name
	}
	if s.Powertrain != nil {
		sum.Powertrain = s.Powertrain.Name
	}
	if s.Exterior != nil {
		sum.Exterior = s.Exterior.Name
	}
	for _, a := range s.Accessories {
		sum.Accessories = append(sum.Accessories, a.Name)
	}
	return sum
}
