package airbnbagent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// cityStatePattern matches "City, ST" with a two-letter uppercase
	// state code; every city word must start uppercase.
	cityStatePattern = regexp.MustCompile(`([A-Z][a-zA-Z.'-]*(?:\s+[A-Z][a-zA-Z.'-]*)*)\s*,\s*([A-Z]{2})\b`)

	datePattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
)

// searchParams is a parsed accommodation search.
type searchParams struct {
	location string
	checkin  string
	checkout string
	adults   int
}

// toolArgs renders the search as airbnb_search arguments, leaving out
// fields the query did not carry.
func (p searchParams) toolArgs() map[string]any {
	args := map[string]any{"location": p.location}
	if p.checkin != "" {
		args["checkin"] = p.checkin
	}
	if p.checkout != "" {
		args["checkout"] = p.checkout
	}
	if p.adults > 0 {
		args["adults"] = p.adults
	}
	return args
}

// parseSearch extracts search parameters from a free-text query. The
// location is required; dates (YYYY-MM-DD, first is check-in, second is
// check-out) and a guest count ("2 adults") are optional.
func parseSearch(query string) (searchParams, error) {
	var p searchParams

	if m := cityStatePattern.FindStringSubmatch(query); m != nil {
		p.location = strings.TrimSpace(m[1]) + ", " + m[2]
	} else if loc := extractAfterIn(query); loc != "" {
		p.location = loc
	}
	if p.location == "" {
		return p, fmt.Errorf("could not find a location in %q: specify one like \"LA, CA\"", query)
	}

	for _, d := range datePattern.FindAllString(query, 2) {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			continue
		}
		if p.checkin == "" {
			p.checkin = d
		} else {
			p.checkout = d
		}
	}

	p.adults = extractGuests(query)
	return p, nil
}

// extractAfterIn pulls the phrase following "in" up to the next
// punctuation, for locations without a state code ("a room in Lisbon").
func extractAfterIn(query string) string {
	lower := strings.ToLower(query)
	idx := strings.Index(lower, " in ")
	if idx == -1 {
		return ""
	}
	rest := strings.TrimSpace(query[idx+len(" in "):])
	if cut := strings.IndexAny(rest, ",.!?\n"); cut != -1 {
		rest = rest[:cut]
	}
	return strings.TrimSpace(rest)
}

// extractGuests finds a count followed by a guest word ("2 adults").
func extractGuests(query string) int {
	words := strings.Fields(strings.ToLower(query))
	for i, w := range words {
		switch strings.Trim(w, ",.!?") {
		case "adult", "adults", "guest", "guests", "people", "person":
			if i == 0 {
				continue
			}
			if n, err := strconv.Atoi(strings.Trim(words[i-1], ",.!?")); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}
