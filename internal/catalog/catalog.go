package catalog

import "strings"

// Flight is a single entry in the flights catalog.
type Flight struct {
	ID            string  `json:"id"`
	Airline       string  `json:"airline"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Price         float64 `json:"price"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	DurationHours float64 `json:"duration_hours"`
	Stops         int     `json:"stops"`
	Class         string  `json:"class"`
}

// Accommodation is a single entry in the accommodations catalog.
type Accommodation struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	City          string   `json:"city"`
	PricePerNight float64  `json:"price_per_night"`
	Rating        float64  `json:"rating"`
	Location      string   `json:"location"`
	Amenities     []string `json:"amenities"`
}

// Attraction is a single entry in the attractions catalog.
type Attraction struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	City          string  `json:"city"`
	Category      string  `json:"category"`
	Cost          float64 `json:"cost"`
	DurationHours float64 `json:"duration_hours"`
	Description   string  `json:"description"`
}

// FilterFlights returns the flights matching the given criteria.
// Empty origin/destination match everything; maxPrice < 0 disables
// the price cap. City comparison is case-insensitive.
func FilterFlights(flights []Flight, origin, destination string, maxPrice float64) []Flight {
	var out []Flight
	for _, f := range flights {
		if origin != "" && !strings.EqualFold(f.Origin, origin) {
			continue
		}
		if destination != "" && !strings.EqualFold(f.Destination, destination) {
			continue
		}
		if maxPrice >= 0 && f.Price > maxPrice {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterAccommodations returns the accommodations in city priced at or
// below maxPerNight. maxPerNight < 0 disables the cap.
func FilterAccommodations(accommodations []Accommodation, city string, maxPerNight float64) []Accommodation {
	var out []Accommodation
	for _, a := range accommodations {
		if city != "" && !strings.EqualFold(a.City, city) {
			continue
		}
		if maxPerNight >= 0 && a.PricePerNight > maxPerNight {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterAttractions returns the attractions in city, optionally
// restricted to a category (Culture, Nature, Landmark, Food).
func FilterAttractions(attractions []Attraction, city, category string) []Attraction {
	var out []Attraction
	for _, a := range attractions {
		if city != "" && !strings.EqualFold(a.City, city) {
			continue
		}
		if category != "" && !strings.EqualFold(a.Category, category) {
			continue
		}
		out = append(out, a)
	}
	return out
}
