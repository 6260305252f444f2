package configurator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kalambet/autopro/internal/catalog"
)

// Step is one stage of the guided configuration flow.
type Step string

const (
	StepModel       Step = "model"
	StepTrim        Step = "trim"
	StepPowertrain  Step = "powertrain"
	StepExterior    Step = "exterior"
	StepAccessories Step = "accessories"
	StepSummary     Step = "summary"
)

var steps = []Step{StepModel, StepTrim, StepPowertrain, StepExterior, StepAccessories, StepSummary}

// Steps returns the flow in order.
func Steps() []Step { return slices.Clone(steps) }

// ErrStepIncomplete is returned when moving forward from a step whose
// required selection is missing.
var ErrStepIncomplete = errors.New("step selection required")

// ErrStepLocked is returned when jumping to a step that has not been reached.
var ErrStepLocked = errors.New("step not reached yet")

// Wizard tracks the current step and selection of one configuration session.
// It is not safe for concurrent use.
type Wizard struct {
	current   int
	selection Selection
}

func NewWizard() *Wizard {
	return &Wizard{}
}

func (w *Wizard) Current() Step { return steps[w.current] }

func (w *Wizard) Selection() Selection {
	s := w.selection
	s.Accessories = slices.Clone(s.Accessories)
	return s
}

func (w *Wizard) SelectModel(m catalog.CarModel) { w.selection.Model = &m }
func (w *Wizard) SelectTrim(t catalog.Trim) { w.selection.Trim = &t }
func (w *Wizard) SelectPowertrain(p catalog.Powertrain) { w.selection.Powertrain = &p }
func (w *Wizard) SelectExterior(e catalog.ExteriorPackage) { w.selection.Exterior = &e }
func (w *Wizard) ToggleAccessory(a catalog.Accessory) { w.selection.ToggleAccessory(a) }

// CanProceed reports whether the current step has its required selection.
func (w *Wizard) CanProceed() bool {
	switch w.Current() {
	case StepModel:
		return w.selection.Model != nil
	case StepTrim:
		return w.selection.Trim != nil
	case StepPowertrain:
		return w.selection.Powertrain != nil
	case StepExterior:
		return w.selection.Exterior != nil
	default:
		return true
	}
}

// Next advances one step. On the summary step it is a no-op.
func (w *Wizard) Next() error {
	if !w.CanProceed() {
		return fmt.Errorf("%s: %w", w.Current(), ErrStepIncomplete)
	}
	if w.current < len(steps)-1 {
		w.current++
	}
	return nil
}

// Prev moves back one step. On the first step it is a no-op.
func (w *Wizard) Prev() {
	if w.current > 0 {
		w.current--
	}
}

// GoTo jumps back to an already completed step or stays on the current one.
func (w *Wizard) GoTo(s Step) error {
	i := slices.Index(steps, s)
	if i < 0 {
		return fmt.Errorf("unknown step %q", s)
	}
	if i > w.current {
		return fmt.Errorf("%s: %w", s, ErrStepLocked)
	}
	w.current = i
	return nil
}

// Quote prices the current selection.
func (w *Wizard) Quote() Quote { return NewQuote(w.selection) }

// Summary describes the current selection for saving.
func (w *Wizard) Summary() Summary { return Summarize(w.selection) }

// Walk resolves ids and replays them through a new wizard in step order.
// It stops on the first step without a selection and returns
// ErrStepIncomplete for it. A complete selection ends on StepSummary.
func Walk(cat *catalog.Catalog, ids SelectionIDs) (*Wizard, error) {
	sel, err := Resolve(cat, ids)
	if err != nil {
		return nil, err
	}
	w := NewWizard()
	for w.Current() != StepSummary {
		switch w.Current() {
		case StepModel:
			if sel.Model != nil {
				w.SelectModel(*sel.Model)
			}
		case StepTrim:
			if sel.Trim != nil {
				w.SelectTrim(*sel.Trim)
			}
		case StepPowertrain:
			if sel.Powertrain != nil {
				w.SelectPowertrain(*sel.Powertrain)
			}
		case StepExterior:
			if sel.Exterior != nil {
				w.SelectExterior(*sel.Exterior)
			}
		case StepAccessories:
			for _, a := range sel.Accessories {
				w.ToggleAccessory(a)
			}
		}
		if err := w.Next(); err != nil {
			return w, err
		}
	}
	return w, nil
}
