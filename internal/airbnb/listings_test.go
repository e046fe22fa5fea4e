package airbnb

import (
	"reflect"
	"testing"
)

func TestCatalog_Deterministic(t *testing.T) {
	first := Catalog("LA, CA")
	second := Catalog("LA, CA")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("catalog changed between calls for the same location")
	}
	if len(first) == 0 {
		t.Fatalf("catalog is empty")
	}
}

func TestCatalog_VariesByLocation(t *testing.T) {
	la := Catalog("LA, CA")
	austin := Catalog("Austin, TX")

	if la[0].ID == austin[0].ID {
		t.Errorf("listing IDs should differ across locations, both are %s", la[0].ID)
	}
}

func TestCatalog_NormalizesLocation(t *testing.T) {
	plain := Catalog("LA, CA")
	padded := Catalog("  la, ca  ")

	for i := range plain {
		if plain[i].ID != padded[i].ID {
			t.Errorf("listing %d: ID %s != %s, location should be normalized", i, plain[i].ID, padded[i].ID)
		}
	}
}

func TestCatalog_Fields(t *testing.T) {
	for _, l := range Catalog("Lisbon") {
		if l.ID == "" || l.Name == "" || l.URL == "" {
			t.Errorf("listing has empty identity fields: %+v", l)
		}
		if l.PricePerNight <= 0 {
			t.Errorf("%s: price = %d, want positive", l.Name, l.PricePerNight)
		}
		if l.Rating < 3.5 || l.Rating > 5 {
			t.Errorf("%s: rating = %.1f, want between 3.5 and 5", l.Name, l.Rating)
		}
		if l.MaxGuests < l.Beds {
			t.Errorf("%s: sleeps %d with %d beds", l.Name, l.MaxGuests, l.Beds)
		}
	}
}
