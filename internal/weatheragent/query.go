package weatheragent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// coordsPattern matches an explicit "lat,lon" pair. Both numbers need a
// decimal point so date fragments like "15, 2025" do not match.
var coordsPattern = regexp.MustCompile(`(-?\d+\.\d+)\s*,\s*(-?\d+\.\d+)`)

// cityStatePattern matches "City, ST" with a two-letter uppercase state
// code. Every city word must start uppercase, so leading sentence text
// ("find a room in LA, CA") is not swallowed into the city name.
var cityStatePattern = regexp.MustCompile(`([A-Z][a-zA-Z.'-]*(?:\s+[A-Z][a-zA-Z.'-]*)*)\s*,\s*([A-Z]{2})\b`)

// location is a parsed forecast target.
type location struct {
	lat, lon float64
	city     string
	state    string
	coords   bool
}

// parseLocation extracts a forecast target from a free-text query. An
// explicit coordinate pair wins over a "City, ST" pair.
func parseLocation(query string) (location, error) {
	if m := coordsPattern.FindStringSubmatch(query); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lon, lonErr := strconv.ParseFloat(m[2], 64)
		if latErr == nil && lonErr == nil {
			return location{lat: lat, lon: lon, coords: true}, nil
		}
	}

	if m := cityStatePattern.FindStringSubmatch(query); m != nil {
		return location{city: strings.TrimSpace(m[1]), state: m[2]}, nil
	}

	return location{}, fmt.Errorf("could not find a location in %q: specify a city and state (e.g., \"Dallas, TX\") or coordinates (e.g., \"32.78, -96.80\")", query)
}
