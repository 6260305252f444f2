package catalog

import "slices"

// Catalog is the read-only vehicle catalog. All accessors return copies, so a
// Catalog can be shared freely between goroutines.
type Catalog struct {
	models      []CarModel
	trims       []Trim
	powertrains []Powertrain
	exteriors   []ExteriorPackage
	accessories []Accessory
	usedCars    []UsedCar
	options     FilterOptions
}

// Contents groups the records a Catalog is built from.
type Contents struct {
	Models      []CarModel
	Trims       []Trim
	Powertrains []Powertrain
	Exteriors   []ExteriorPackage
	Accessories []Accessory
	UsedCars    []UsedCar
	Options     FilterOptions
}

// New builds a Catalog from c. The input is copied.
func New(c Contents) *Catalog {
	return &Catalog{
		models:      slices.Clone(c.Models),
		trims:       cloneTrims(c.Trims),
		powertrains: slices.Clone(c.Powertrains),
		exteriors:   slices.Clone(c.Exteriors),
		accessories: slices.Clone(c.Accessories),
		usedCars:    cloneUsedCars(c.UsedCars),
		options:     cloneOptions(c.Options),
	}
}

// Default returns the dealership's built-in catalog.
func Default() *Catalog {
	return New(Contents{
		Models:      carModels,
		Trims:       trims,
		Powertrains: powertrains,
		Exteriors:   exteriorPackages,
		Accessories: accessories,
		UsedCars:    usedCars,
		Options:     filterOptions,
	})
}

func (c *Catalog) Models() []CarModel { return slices.Clone(c.models) }
func (c *Catalog) Trims() []Trim { return cloneTrims(c.trims) }
func (c *Catalog) Powertrains() []Powertrain { return slices.Clone(c.powertrains) }
func (c *Catalog) Exteriors() []ExteriorPackage { return slices.Clone(c.exteriors) }
func (c *Catalog) Accessories() []Accessory { return slices.Clone(c.accessories) }
func (c *Catalog) UsedCars() []UsedCar { return cloneUsedCars(c.usedCars) }
func (c *Catalog) FilterOptions() FilterOptions { return cloneOptions(c.options) }

func (c *Catalog) Model(id string) (CarModel, bool) {
	i := slices.IndexFunc(c.models, func(m CarModel) bool { return m.ID == id })
	if i < 0 {
		return CarModel{}, false
	}
	return c.models[i], true
}

func (c *Catalog) Trim(id string) (Trim, bool) {
	i := slices.IndexFunc(c.trims, func(t Trim) bool { return t.ID == id })
	if i < 0 {
		return Trim{}, false
	}
	t := c.trims[i]
	t.Features = slices.Clone(t.Features)
	return t, true
}

func (c *Catalog) Powertrain(id string) (Powertrain, bool) {
	i := slices.IndexFunc(c.powertrains, func(p Powertrain) bool { return p.ID == id })
	if i < 0 {
		return Powertrain{}, false
	}
	return c.powertrains[i], true
}

func (c *Catalog) Exterior(id string) (ExteriorPackage, bool) {
	i := slices.IndexFunc(c.exteriors, func(e ExteriorPackage) bool { return e.ID == id })
	if i < 0 {
		return ExteriorPackage{}, false
	}
	return c.exteriors[i], true
}

func (c *Catalog) Accessory(id string) (Accessory, bool) {
	i := slices.IndexFunc(c.accessories, func(a Accessory) bool { return a.ID == id })
	if i < 0 {
		return Accessory{}, false
	}
	return c.accessories[i], true
}

func (c *Catalog) UsedCar(id string) (UsedCar, bool) {
	i := slices.IndexFunc(c.usedCars, func(u UsedCar) bool { return u.ID == id })
	if i < 0 {
		return UsedCar{}, false
	}
	u := c.usedCars[i]
	u.Features = slices.Clone(u.Features)
	return u, true
}

func cloneTrims(in []Trim) []Trim {
	out := slices.Clone(in)
	for i := range out {
		out[i].Features = slices.Clone(out[i].Features)
	}
	return out
}

func cloneUsedCars(in []UsedCar) []UsedCar {
	out := slices.Clone(in)
	for i := range out {
		out[i].Features = slices.Clone(out[i].Features)
	}
	return out
}

func cloneOptions(o FilterOptions) FilterOptions {
	o.Makes = slices.Clone(o.Makes)
	o.FuelTypes = slices.Clone(o.FuelTypes)
	o.Transmissions = slices.Clone(o.Transmissions)
	o.Drivetrains = slices.Clone(o.Drivetrains)
	o.BodyTypes = slices.Clone(o.BodyTypes)
	o.Locations = slices.Clone(o.Locations)
	return o
}
