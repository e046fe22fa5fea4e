package airbnbagent

import (
	"strings"
	"testing"
)

func TestParseSearch(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want searchParams
	}{
		{
			name: "full query",
			in:   "Please find a room in LA, CA, 2025-04-15 to 2025-04-18, 2 adults",
			want: searchParams{location: "LA, CA", checkin: "2025-04-15", checkout: "2025-04-18", adults: 2},
		},
		{
			name: "city state only",
			in:   "stay in New York, NY",
			want: searchParams{location: "New York, NY"},
		},
		{
			name: "location without state code",
			in:   "find a place in Lisbon",
			want: searchParams{location: "Lisbon"},
		},
		{
			name: "guests without dates",
			in:   "a comfy room in Austin, TX for 4 guests",
			want: searchParams{location: "Austin, TX", adults: 4},
		},
		{
			name: "single date",
			in:   "room in Denver, CO from 2025-07-01",
			want: searchParams{location: "Denver, CO", checkin: "2025-07-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSearch(tt.in)
			if err != nil {
				t.Fatalf("parseSearch(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseSearch(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSearch_NoLocation(t *testing.T) {
	_, err := parseSearch("find me something nice")
	if err == nil {
		t.Fatal("expected error for a query without a location")
	}
	if !strings.Contains(err.Error(), "specify one") {
		t.Errorf("error %q should explain the expected format", err)
	}
}

func TestParseSearch_InvalidDateSkipped(t *testing.T) {
	got, err := parseSearch("room in Boston, MA on 2025-13-45")
	if err != nil {
		t.Fatalf("parseSearch failed: %v", err)
	}
	if got.checkin != "" {
		t.Errorf("checkin = %q, want empty for an impossible date", got.checkin)
	}
}

func TestToolArgs_OmitsEmptyFields(t *testing.T) {
	args := searchParams{location: "LA, CA"}.toolArgs()

	if args["location"] != "LA, CA" {
		t.Errorf("location = %v, want LA, CA", args["location"])
	}
	if _, ok := args["checkin"]; ok {
		t.Error("checkin should be omitted when not parsed")
	}
	if _, ok := args["adults"]; ok {
		t.Error("adults should be omitted when not parsed")
	}
}
