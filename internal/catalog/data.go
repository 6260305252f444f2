package catalog

var carModels = []CarModel{
	{
		ID:          "apex-suv",
		Name:        "APEX SUV",
		Category:    "suv",
		BasePrice:   54990,
		Image:       "https://images.unsplash.com/photo-1519641471654-76ce0107ad1b?w=800",
		Description: "Commanding presence meets refined luxury in our flagship SUV.",
	},
	{
		ID:          "velocity-sedan",
		Name:        "VELOCITY Sedan",
		Category:    "sedan",
		BasePrice:   42990,
		Image:       "https://images.unsplash.com/photo-1555215695-3004980ad54e?w=800",
		Description: "The perfect fusion of elegance and performance.",
	},
	{
		ID:          "touring-combi",
		Name:        "TOURING Combi",
		Category:    "combi",
		BasePrice:   47990,
		Image:       "https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=800",
		Description: "Versatility redefined with premium comfort and space.",
	},
}

var trims = []Trim{
	{ID: "comfort", Name: "Comfort", Price: 0, Features: []string{`17" Alloy Wheels`, "Cloth Seats", "Manual Climate Control", `8" Touchscreen`}},
	{ID: "elegance", Name: "Elegance", Price: 4500, Features: []string{`18" Alloy Wheels`, "Leather Seats", "Dual-Zone Climate", `10" Touchscreen`, "LED Headlights"}},
	{ID: "sport", Name: "Sport", Price: 7500, Features: []string{`19" Sport Wheels`, "Sport Seats", "Sport Suspension", "Panoramic Roof", "Premium Sound"}},
	{ID: "luxury", Name: "Luxury", Price: 12000, Features: []string{`20" Premium Wheels`, "Nappa Leather", "Massage Seats", "Head-Up Display", "Matrix LED", "Air Suspension"}},
}

var powertrains = []Powertrain{
	{ID: "petrol-150", Name: "1.5T Petrol", Type: "petrol", Power: "150 HP", Price: 0, FuelConsumption: "6.8 L/100km"},
	{ID: "petrol-200", Name: "2.0T Petrol", Type: "petrol", Power: "200 HP", Price: 3500, FuelConsumption: "7.5 L/100km"},
	{ID: "diesel-180", Name: "2.0 Diesel", Type: "diesel", Power: "180 HP", Price: 2500, FuelConsumption: "5.2 L/100km"},
	{ID: "hybrid-250", Name: "Hybrid", Type: "hybrid", Power: "250 HP", Price: 6000, FuelConsumption: "4.1 L/100km"},
	{ID: "electric-300", Name: "Full Electric", Type: "electric", Power: "300 HP", Price: 12000, FuelConsumption: "18 kWh/100km"},
}

var exteriorPackages = []ExteriorPackage{
	{ID: "arctic-white", Name: "Arctic White", Color: "#F5F5F5", ColorCode: "AW", Price: 0, WheelSize: "Standard"},
	{ID: "obsidian-black", Name: "Obsidian Black", Color: "#1A1A1A", ColorCode: "OB", Price: 850, WheelSize: "Standard"},
	{ID: "meteor-grey", Name: "Meteor Grey", Color: "#4A4A4A", ColorCode: "MG", Price: 650, WheelSize: "Standard"},
	{ID: "racing-red", Name: "Racing Red", Color: "#E53935", ColorCode: "RR", Price: 1200, WheelSize: "Sport"},
	{ID: "ocean-blue", Name: "Ocean Blue", Color: "#1565C0", ColorCode: "OBL", Price: 950, WheelSize: "Standard"},
	{ID: "sunset-orange", Name: "Sunset Orange", Color: "#FF6D00", ColorCode: "SO", Price: 1400, WheelSize: "Sport"},
}

var accessories = []Accessory{
	{ID: "tow-bar", Name: "Tow Bar Package", Price: 890, Category: "Exterior"},
	{ID: "roof-rails", Name: "Roof Rails", Price: 450, Category: "Exterior"},
	{ID: "winter-pack", Name: "Winter Package", Price: 1200, Category: "Comfort"},
	{ID: "parking-sensors", Name: "Parking Sensors", Price: 650, Category: "Safety"},
	{ID: "dash-cam", Name: "Integrated Dash Cam", Price: 390, Category: "Safety"},
	{ID: "wireless-charging", Name: "Wireless Phone Charger", Price: 280, Category: "Technology"},
	{ID: "premium-mats", Name: "Premium Floor Mats", Price: 220, Category: "Interior"},
	{ID: "cargo-net", Name: "Cargo Net System", Price: 120, Category: "Interior"},
}

var usedCars = []UsedCar{
	{
		ID: "uc-001", Make: "BMW", Model: "X5 xDrive40i", Year: 2022, Mileage: 28500, Price: 62900,
		Fuel: "Petrol", Transmission: "Automatic", Drivetrain: "AWD", BodyType: "SUV", Location: "Berlin",
		Image:    "https://images.unsplash.com/photo-1555215695-3004980ad54e?w=600",
		Features: []string{"Panoramic Roof", "Leather Interior", "Navigation", "Harman Kardon Sound"},
		Color:    "Alpine White",
	},
	{
		ID: "uc-002", Make: "Mercedes-Benz", Model: "E 300 AMG Line", Year: 2021, Mileage: 42000, Price: 48500,
		Fuel: "Petrol", Transmission: "Automatic", Drivetrain: "RWD", BodyType: "Sedan", Location: "Munich",
		Image:    "https://images.unsplash.com/photo-1618843479313-40f8afb4b4d8?w=600",
		Features: []string{"AMG Styling", "MBUX", "LED Matrix Lights", "Ambient Lighting"},
		Color:    "Obsidian Black",
	},
	{
		ID: "uc-003", Make: "Audi", Model: "A6 Avant 45 TFSI", Year: 2023, Mileage: 15200, Price: 55900,
		Fuel: "Petrol", Transmission: "Automatic", Drivetrain: "Quattro", BodyType: "Combi", Location: "Berlin",
		Image:    "https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?w=600",
		Features: []string{"Virtual Cockpit", "Bang & Olufsen", "Matrix LED", "Adaptive Cruise"},
		Color:    "Glacier White",
	},
	{
		ID: "uc-004", Make: "Volkswagen", Model: "Tiguan R-Line", Year: 2022, Mileage: 35800, Price: 38900,
		Fuel: "Diesel", Transmission: "Automatic", Drivetrain: "4Motion", BodyType: "SUV", Location: "Hamburg",
		Image:    "https://images.unsplash.com/photo-1549317661-bd32c8ce0db2?w=600",
		Features: []string{"R-Line Package", "Digital Cockpit", "Park Assist", "Heated Seats"},
		Color:    "Deep Black Pearl",
	},
	{
		ID: "uc-005", Make: "BMW", Model: "330i M Sport", Year: 2021, Mileage: 52000, Price: 42500,
		Fuel: "Petrol", Transmission: "Automatic", Drivetrain: "RWD", BodyType: "Sedan", Location: "Frankfurt",
		Image:    "https://images.unsplash.com/photo-1580273916550-e323be2ae537?w=600",
		Features: []string{"M Sport Package", "Live Cockpit Pro", "HiFi Sound", "Sport Suspension"},
		Color:    "Mineral Grey",
	},
	{
		ID: "uc-006", Make: "Mercedes-Benz", Model: "GLC 300 4MATIC", Year: 2023, Mileage: 18700, Price: 58900,
		Fuel: "Petrol", Transmission: "Automatic", Drivetrain: "AWD", BodyType: "SUV", Location: "Munich",
		Image:    "https://images.unsplash.com/photo-1606611013016-969c19ba27bb?w=600",
		Features: []string{"Burmester Sound", "MBUX", "Multibeam LED", "Air Suspension"},
		Color:    "Selenite Grey",
	},
	{
		ID: "uc-007", Make: "Audi", Model: "Q7 55 TFSI", Year: 2022, Mileage: 31200, Price: 72500,
		Fuel: "Petrol", Transmission: "Automatic", Drivetrain: "Quattro", BodyType: "SUV", Location: "Stuttgart",
		Image:    "https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?w=600",
		Features: []string{"S Line", "Virtual Cockpit Plus", "Air Suspension", "7 Seats"},
		Color:    "Mythos Black",
	},
	{
		ID: "uc-008", Make: "Volkswagen", Model: "Passat Variant", Year: 2021, Mileage: 65000, Price: 28900,
		Fuel: "Diesel", Transmission: "Automatic", Drivetrain: "FWD", BodyType: "Combi", Location: "Berlin",
		Image:    "https://images.unsplash.com/photo-1549317661-bd32c8ce0db2?w=600",
		Features: []string{"Business Package", "Navigation Pro", "LED Plus", "Ergo Seats"},
		Color:    "Oryx White",
	},
	{
		ID: "uc-009", Make: "BMW", Model: "iX3 Impressive", Year: 2023, Mileage: 12500, Price: 54900,
		Fuel: "Electric", Transmission: "Automatic", Drivetrain: "RWD", BodyType: "SUV", Location: "Frankfurt",
		Image:    "https://images.unsplash.com/photo-1617814076367-b759c7d7e738?w=600",
		Features: []string{"Connected Package", "Driving Assistant Pro", "Curved Display", "Heat Pump"},
		Color:    "Mineral White",
	},
	{
		ID: "uc-010", Make: "Mercedes-Benz", Model: "C 200 Estate", Year: 2022, Mileage: 38500, Price: 44900,
		Fuel: "Petrol", Transmission: "Automatic", Drivetrain: "RWD", BodyType: "Combi", Location: "Hamburg",
		Image:    "https://images.unsplash.com/photo-1618843479313-40f8afb4b4d8?w=600",
		Features: []string{"Avantgarde Line", "MBUX", "Digital Light", "Easy Pack Tailgate"},
		Color:    "Polar White",
	},
	{
		ID: "uc-011", Make: "Audi", Model: "A4 40 TDI", Year: 2021, Mileage: 55000, Price: 34500,
		Fuel: "Diesel", Transmission: "Automatic", Drivetrain: "Quattro", BodyType: "Sedan", Location: "Stuttgart",
		Image:    "https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?w=600",
		Features: []string{"Sport Line", "MMI Plus", "LED Headlights", "Park Assist"},
		Color:    "Navarra Blue",
	},
	{
		ID: "uc-012", Make: "Volkswagen", Model: "ID.4 Pro Performance", Year: 2023, Mileage: 8500, Price: 42900,
		Fuel: "Electric", Transmission: "Automatic", Drivetrain: "RWD", BodyType: "SUV", Location: "Berlin",
		Image:    "https://images.unsplash.com/photo-1617814076367-b759c7d7e738?w=600",
		Features: []string{"ID.Light", "Travel Assist", "AR Head-Up Display", "Heat Pump"},
		Color:    "Moonstone Grey",
	},
}

var filterOptions = FilterOptions{
	Makes:         []string{"BMW", "Mercedes-Benz", "Audi", "Volkswagen"},
	FuelTypes:     []string{"Petrol", "Diesel", "Hybrid", "Electric"},
	Transmissions: []string{"Automatic", "Manual"},
	Drivetrains:   []string{"FWD", "RWD", "AWD", "4Motion", "Quattro"},
	BodyTypes:     []string{"SUV", "Sedan", "Combi"},
	Locations:     []string{"Berlin", "Munich", "Hamburg", "Frankfurt", "Stuttgart"},
	YearRange:     Range{Min: 2019, Max: 2024},
	PriceRange:    Range{Min: 20000, Max: 100000},
	MileageRange:  Range{Min: 0, Max: 100000},
}
