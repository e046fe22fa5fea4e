package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newNWSStub serves /points and /forecast like api.weather.gov, returning
// the given periods.
func newNWSStub(t *testing.T, periods []Period) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/points/"):
			json.NewEncoder(w).Encode(map[string]any{
				"properties": map[string]any{
					"forecast": server.URL + "/forecast",
				},
			})
		case r.URL.Path == "/forecast":
			json.NewEncoder(w).Encode(map[string]any{
				"properties": map[string]any{
					"periods": periods,
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestForecast(t *testing.T) {
	periods := []Period{
		{Name: "Tonight", Temperature: 61, TemperatureUnit: "F", WindSpeed: "5 mph", WindDirection: "SW", ShortForecast: "Clear", DetailedForecast: "Clear skies overnight."},
		{Name: "Tuesday", Temperature: 75, TemperatureUnit: "F", WindSpeed: "10 mph", WindDirection: "W", ShortForecast: "Sunny", DetailedForecast: "Sunny all day."},
	}
	server := newNWSStub(t, periods)

	client := NewClient(Config{BaseURL: server.URL})
	got, err := client.Forecast(context.Background(), 34.05, -118.24)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if !strings.Contains(got, "Tonight") {
		t.Errorf("forecast missing first period name:\n%s", got)
	}
	if !strings.Contains(got, "Temperature: 61°F") {
		t.Errorf("forecast missing temperature:\n%s", got)
	}
	if !strings.Contains(got, "Wind: 5 mph SW") {
		t.Errorf("forecast missing wind:\n%s", got)
	}
	if !strings.Contains(got, "\n---\n") {
		t.Errorf("forecast periods not separated:\n%s", got)
	}
}

func TestForecast_PointPathFormat(t *testing.T) {
	var gotPath string
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/points/") {
			gotPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]any{
				"properties": map[string]any{"forecast": server.URL + "/forecast"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"properties": map[string]any{"periods": []Period{{Name: "Tonight"}}},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if _, err := client.Forecast(context.Background(), 34.05, -118.24); err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	// Coordinates are formatted to four decimal places.
	if gotPath != "/points/34.0500,-118.2400" {
		t.Errorf("points path = %q, want %q", gotPath, "/points/34.0500,-118.2400")
	}
}

func TestForecast_InvalidCoordinates(t *testing.T) {
	client := NewClient(Config{})

	tests := []struct {
		lat, lon float64
	}{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	for _, tt := range tests {
		if _, err := client.Forecast(context.Background(), tt.lat, tt.lon); err == nil {
			t.Errorf("Forecast(%v, %v) expected error", tt.lat, tt.lon)
		}
	}
}

func TestForecast_TruncatesToFivePeriods(t *testing.T) {
	periods := make([]Period, 7)
	for i := range periods {
		periods[i] = Period{Name: fmt.Sprintf("Period %d", i+1), TemperatureUnit: "F"}
	}
	server := newNWSStub(t, periods)

	client := NewClient(Config{BaseURL: server.URL})
	got, err := client.Forecast(context.Background(), 40.0, -100.0)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	if !strings.Contains(got, "Period 5") {
		t.Errorf("forecast missing fifth period:\n%s", got)
	}
	if strings.Contains(got, "Period 6") {
		t.Errorf("forecast includes sixth period:\n%s", got)
	}
	if n := strings.Count(got, "\n---\n"); n != 4 {
		t.Errorf("separator count = %d, want 4", n)
	}
}

func TestForecast_NoPeriods(t *testing.T) {
	server := newNWSStub(t, nil)

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Forecast(context.Background(), 40.0, -100.0)
	if err == nil {
		t.Fatal("expected error for empty forecast")
	}
}

func TestForecast_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Forecast(context.Background(), 40.0, -100.0)
	if err == nil {
		t.Fatal("expected error for upstream failure")
	}
	if !strings.Contains(err.Error(), "gridpoint") {
		t.Errorf("err = %v, want gridpoint failure", err)
	}
}

func TestGeocode(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `[{"lat":"34.0536909","lon":"-118.242766","display_name":"Los Angeles"}]`)
	}))
	defer server.Close()

	client := NewClient(Config{GeocodeURL: server.URL})
	latitude, longitude, err := client.Geocode(context.Background(), "Los Angeles, CA, USA")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}

	if gotQuery != "Los Angeles, CA, USA" {
		t.Errorf("query = %q, want %q", gotQuery, "Los Angeles, CA, USA")
	}
	if latitude < 34.0 || latitude > 34.1 {
		t.Errorf("latitude = %v, want ~34.05", latitude)
	}
	if longitude > -118.2 || longitude < -118.3 {
		t.Errorf("longitude = %v, want ~-118.24", longitude)
	}
}

func TestGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewClient(Config{GeocodeURL: server.URL})
	_, _, err := client.Geocode(context.Background(), "Nowhereville, ZZ, USA")
	if err == nil {
		t.Fatal("expected error for unknown place")
	}
	if !strings.Contains(err.Error(), "could not find coordinates") {
		t.Errorf("err = %v, want coordinates failure", err)
	}
}

func TestForecastByCity(t *testing.T) {
	nws := newNWSStub(t, []Period{{Name: "Tonight", Temperature: 61, TemperatureUnit: "F"}})

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Los Angeles, CA, USA" {
			t.Errorf("geocode query = %q, want %q", got, "Los Angeles, CA, USA")
		}
		fmt.Fprint(w, `[{"lat":"34.05","lon":"-118.24"}]`)
	}))
	defer geo.Close()

	client := NewClient(Config{BaseURL: nws.URL, GeocodeURL: geo.URL})
	got, err := client.ForecastByCity(context.Background(), "Los Angeles", "CA")
	if err != nil {
		t.Fatalf("ForecastByCity failed: %v", err)
	}
	if !strings.Contains(got, "Tonight") {
		t.Errorf("forecast missing period:\n%s", got)
	}
}
