// Package airbnb provides a deterministic demo accommodation catalog and
// the MCP tool handlers that search it. The catalog stands in for the
// external Airbnb tool server so the system runs self-contained.
package airbnb

import (
	"strings"

	"github.com/google/uuid"
)

// Listing is one accommodation in the demo catalog.
type Listing struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	URL           string  `json:"url"`
	PricePerNight int     `json:"price_per_night"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	Beds          int     `json:"beds"`
	MaxGuests     int     `json:"max_guests"`
}

var templates = []struct {
	name      string
	beds      int
	maxGuests int
	basePrice int
}{
	{"Cozy studio near downtown", 1, 2, 85},
	{"Sunny two-bedroom apartment", 2, 4, 140},
	{"Modern loft with skyline view", 1, 3, 165},
	{"Quiet garden cottage", 2, 4, 120},
	{"Spacious family house", 4, 8, 230},
	{"Designer flat by the park", 2, 4, 175},
}

// Catalog returns the demo listings for a location. IDs are UUIDv5 values
// derived from the location and listing name, so the same location always
// yields the same catalog, with per-location variation in price, rating,
// and review counts.
func Catalog(location string) []Listing {
	loc := strings.TrimSpace(location)
	key := strings.ToLower(loc)

	listings := make([]Listing, 0, len(templates))
	for _, t := range templates {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("airbnb:"+key+":"+t.name))
		listings = append(listings, Listing{
			ID:            id.String(),
			Name:          t.name,
			Location:      loc,
			URL:           "https://www.airbnb.com/rooms/" + id.String(),
			PricePerNight: t.basePrice + int(id[0])%40,
			Rating:        3.8 + float64(int(id[1])%12)/10,
			Reviews:       12 + int(id[2])%240,
			Beds:          t.beds,
			MaxGuests:     t.maxGuests,
		})
	}
	return listings
}
