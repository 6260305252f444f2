package catalog

// CarModel is a new-car model offered in the configurator.
type CarModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"` // "suv", "sedan", "combi"
	BasePrice   int    `json:"basePrice"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type Trim struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Features []string `json:"features"`
}

type Powertrain struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"` // "petrol", "diesel", "hybrid", "electric"
	Power           string `json:"power"`
	Price           int    `json:"price"`
	FuelConsumption string `json:"fuelConsumption"`
}

type ExteriorPackage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"` // hex
	ColorCode string `json:"colorCode"`
	Price     int    `json:"price"`
	WheelSize string `json:"wheelSize"`
}

type Accessory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
}

// UsedCar is a used-car listing. Prices are whole euros.
type UsedCar struct {
	ID           string   `json:"id"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Mileage      int      `json:"mileage"`
	Price        int      `json:"price"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	Drivetrain   string   `json:"drivetrain"`
	BodyType     string   `json:"bodyType"`
	Location     string   `json:"location"`
	Image        string   `json:"image"`
	Features     []string `json:"features"`
	Color        string   `json:"color"`
}

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions lists the values the used-car browser offers for each filter.
type FilterOptions struct {
	Makes         []string `json:"makes"`
	FuelTypes     []string `json:"fuelTypes"`
	Transmissions []string `json:"transmissions"`
	Drivetrains   []string `json:"drivetrains"`
	BodyTypes     []string `json:"bodyTypes"`
	Locations     []string `json:"locations"`
	YearRange     Range    `json:"yearRange"`
	PriceRange    Range    `json:"priceRange"`
	MileageRange  Range    `json:"mileageRange"`
}
