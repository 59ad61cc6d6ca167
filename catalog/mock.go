package catalog

import "github.com/carsawa/site/listing"

// MockDealers and MockCars are the starter inventory loaded by cmd/seed.
func MockDealers() []listing.Dealer {
	return []listing.Dealer{
		{
			ID:             "premium-motors",
			Name:           "Premium Motors",
			Location:       "Nairobi",
			WhatsAppNumber: "254791001601",
			ProfileImage:   "https://placehold.co/100x100?text=Premium+Motors",
			Verified:       true,
		},
		{
			ID:             "autoxpress",
			Name:           "AutoXpress",
			Location:       "Mombasa",
			WhatsAppNumber: "254722000111",
			ProfileImage:   "https://placehold.co/100x100?text=AutoXpress",
			Verified:       true,
		},
		{
			ID:             "car-city",
			Name:           "Car City",
			Location:       "Kisumu",
			WhatsAppNumber: "254733000222",
			ProfileImage:   "https://placehold.co/100x100?text=Car+City",
		},
	}
}

func MockCars() []listing.Listing {
	return []listing.Listing{
		{
			ID: "1", Make: "Toyota", Model: "Land Cruiser", Year: 2024, Price: 15_000_000,
			Transmission: "Automatic", FuelType: "Diesel", EngineSize: "3500 CC", BodyType: "SUV",
			Condition: "Brand New", Color: "Precious White Pearl",
			Description: "Legendary off-road capability with modern luxury and the latest safety tech.",
			ImageURL:    "https://placehold.co/600x400?text=Land+Cruiser",
			Features:    []string{"Multi-Terrain Select", "Crawl Control", "JBL Premium Audio", "Leather Seats", "Sunroof", "360° Camera"},
			Status:      listing.StatusAvailable, DealerID: "premium-motors",
		},
		{
			ID: "2", Make: "Mercedes-Benz", Model: "C200", Year: 2024, Price: 8_500_000,
			Transmission: "Automatic", FuelType: "Petrol", EngineSize: "2000 CC", BodyType: "Sedan",
			Condition: "Brand New", Color: "Obsidian Black",
			Description: "Compact executive saloon with a refined cabin and cutting-edge technology.",
			ImageURL:    "https://placehold.co/600x400?text=Mercedes+C200",
			Features:    []string{"MBUX Infotainment", "Ambient Lighting", "Parking Assist", "LED Headlights"},
			Status:      listing.StatusAvailable, DealerID: "autoxpress",
		},
		{
			ID: "3", Make: "BMW", Model: "X5", Year: 2024, Price: 12_000_000,
			Transmission: "Automatic", FuelType: "Diesel", EngineSize: "3000 CC", BodyType: "SUV",
			Condition: "Brand New", Color: "Alpine White",
			Description: "Sports activity vehicle with commanding performance and a luxurious interior.",
			ImageURL:    "https://placehold.co/600x400?text=BMW+X5",
			Features:    []string{"Panoramic Roof", "Heads-Up Display", "Harman Kardon Audio", "Adaptive Suspension"},
			Status:      listing.StatusAvailable, DealerID: "car-city",
		},
		{
			ID: "4", Make: "Toyota", Model: "Hilux", Year: 2023, Price: 6_500_000,
			Transmission: "Manual", FuelType: "Diesel", EngineSize: "2800 CC", BodyType: "Pickup",
			Condition: "Brand New", Color: "Super White",
			Description: "The unbreakable workhorse, ready for the farm and the city.",
			ImageURL:    "https://placehold.co/600x400?text=Toyota+Hilux",
			Features:    []string{"4x4", "Diff Lock", "Tow Bar", "Bed Liner"},
			Status:      listing.StatusAvailable, DealerID: "premium-motors",
		},
		{
			ID: "5", Make: "Suzuki", Model: "Vitara", Year: 2024, Price: 4_200_000,
			Transmission: "Automatic", FuelType: "Petrol", EngineSize: "1600 CC", BodyType: "SUV",
			Condition: "Brand New", Color: "Bright Red",
			Description: "Nimble compact SUV with great fuel economy.",
			ImageURL:    "https://placehold.co/600x400?text=Suzuki+Vitara",
			Features:    []string{"Apple CarPlay", "Reverse Camera", "Cruise Control"},
			Status:      listing.StatusAvailable, DealerID: "car-city",
		},
		{
			ID: "6", Make: "BMW", Model: "X5", Year: 2022, Price: 7_000_000, Mileage: 28_600,
			Transmission: "Automatic", FuelType: "Petrol", EngineSize: "3000 CC", BodyType: "SUV",
			Condition: "Used", Color: "Carbon Black",
			Description: "Well kept, full service history.",
			ImageURL:    "https://placehold.co/600x400?text=BMW+X5",
			Status:      listing.StatusAvailable, DealerID: "car-city",
		},
		{
			ID: "7", Make: "Suzuki", Model: "Vitara", Year: 2023, Price: 8_000_000, Mileage: 15_200,
			Transmission: "Manual", FuelType: "Petrol", EngineSize: "1600 CC", BodyType: "SUV",
			Condition: "Used", Color: "Silver",
			Description: "Single owner, low mileage.",
			ImageURL:    "https://placehold.co/600x400?text=Suzuki+Vitara",
			Status:      listing.StatusAvailable, DealerID: "autoxpress",
		},
		{
			ID: "8", Make: "Toyota", Model: "Hilux", Year: 2022, Price: 700_000, Mileage: 42_300,
			Transmission: "Manual", FuelType: "Diesel", EngineSize: "2800 CC", BodyType: "Pickup",
			Condition: "Used", Color: "Grey",
			Description: "Hard working pickup.",
			ImageURL:    "https://placehold.co/600x400?text=Toyota+Hilux",
			Status:      listing.StatusSold, DealerID: "premium-motors",
		},
		{
			ID: "9", Make: "Mercedes-Benz", Model: "C200", Year: 2021, Price: 600_000, Mileage: 55_200,
			Transmission: "Automatic", FuelType: "Petrol", EngineSize: "2000 CC", BodyType: "Sedan",
			Condition: "Used", Color: "Silver",
			Description: "Comfortable daily driver.",
			ImageURL:    "https://placehold.co/600x400?text=Mercedes+C200",
			Status:      listing.StatusSold, DealerID: "autoxpress",
		},
		{
			ID: "10", Make: "Toyota", Model: "Land Cruiser", Year: 2023, Price: 10_000_000, Mileage: 12_500,
			Transmission: "Automatic", FuelType: "Diesel", EngineSize: "3500 CC", BodyType: "SUV",
			Condition: "Used", Color: "Black",
			Description: "Nearly new, dealer maintained.",
			ImageURL:    "https://placehold.co/600x400?text=Land+Cruiser",
			Status:      listing.StatusAvailable, DealerID: "premium-motors",
		},
	}
}
