// Package weather fetches forecasts from the National Weather Service
// API and geocodes US cities through Nominatim.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	userAgent          = "weather-agent"
	requestTimeout     = 40 * time.Second
	maxForecastPeriods = 5

	defaultBaseURL    = "https://api.weather.gov"
	defaultGeocodeURL = "https://nominatim.openstreetmap.org"
)

// Config controls the upstream endpoints, mainly so tests can point the
// client at local servers.
type Config struct {
	BaseURL    string `yaml:"base_url"`
	GeocodeURL string `yaml:"geocode_url"`
}

// Client talks to the NWS forecast API and the Nominatim geocoder.
type Client struct {
	baseURL    string
	geocodeURL string
	httpClient *http.Client
}

// NewClient creates a weather client. Empty config fields fall back to
// the public NWS and Nominatim endpoints.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = defaultGeocodeURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		geocodeURL: strings.TrimSuffix(cfg.GeocodeURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Period is one entry of an NWS forecast.
type Period struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []Period `json:"periods"`
	} `json:"properties"`
}

type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Forecast returns a formatted multi-period forecast for the given
// coordinates. At most the first five periods are included.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (string, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return "", fmt.Errorf("invalid latitude or longitude: %.4f, %.4f", latitude, longitude)
	}

	pointURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, latitude, longitude)

	var points pointsResponse
	if err := c.getJSON(ctx, pointURL, &points); err != nil {
		return "", fmt.Errorf("failed to retrieve gridpoint information: %w", err)
	}

	forecastURL := points.Properties.Forecast
	if forecastURL == "" {
		return "", fmt.Errorf("no forecast endpoint for %.4f, %.4f", latitude, longitude)
	}

	var forecast forecastResponse
	if err := c.getJSON(ctx, forecastURL, &forecast); err != nil {
		return "", fmt.Errorf("failed to retrieve forecast data: %w", err)
	}

	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		return "", fmt.Errorf("no forecast periods found for this location")
	}
	if len(periods) > maxForecastPeriods {
		periods = periods[:maxForecastPeriods]
	}

	formatted := make([]string, 0, len(periods))
	for _, p := range periods {
		formatted = append(formatted, formatPeriod(p))
	}
	return strings.Join(formatted, "\n---\n"), nil
}

// ForecastByCity geocodes a US city and state, then fetches the forecast
// for the resulting coordinates.
func (c *Client) ForecastByCity(ctx context.Context, city, state string) (string, error) {
	latitude, longitude, err := c.Geocode(ctx, fmt.Sprintf("%s, %s, USA", city, state))
	if err != nil {
		return "", err
	}
	return c.Forecast(ctx, latitude, longitude)
}

// Geocode resolves a free-form place query to coordinates using the
// Nominatim search API.
func (c *Client) Geocode(ctx context.Context, query string) (float64, float64, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.geocodeURL, url.QueryEscape(query))

	var results []geocodeResult
	if err := c.getJSON(ctx, searchURL, &results); err != nil {
		return 0, 0, fmt.Errorf("geocoding failed: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("could not find coordinates for %q", query)
	}

	latitude, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse geocoded latitude: %w", err)
	}
	longitude, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse geocoded longitude: %w", err)
	}
	return latitude, longitude, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func formatPeriod(p Period) string {
	unit := p.TemperatureUnit
	if unit == "" {
		unit = "F"
	}
	detailed := strings.TrimSpace(p.DetailedForecast)
	if detailed == "" {
		detailed = "No detailed forecast provided."
	}
	return fmt.Sprintf("%s:\n  Temperature: %d°%s\n  Wind: %s %s\n  Short Forecast: %s\n  Detailed Forecast: %s",
		p.Name, p.Temperature, unit, p.WindSpeed, p.WindDirection, p.ShortForecast, detailed)
}
