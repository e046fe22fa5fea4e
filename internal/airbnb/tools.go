package airbnb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server serves the demo catalog over MCP. It remembers every listing it
// has returned so listing details can be looked up by id afterwards.
type Server struct {
	mu   sync.Mutex
	byID map[string]Listing
}

func NewServer() *Server {
	return &Server{byID: make(map[string]Listing)}
}

// RegisterTools declares the catalog's tools on an MCP server.
func RegisterTools(mcpServer *server.MCPServer, catalog *Server) {
	mcpServer.AddTool(
		mcp.NewTool("airbnb_search",
			mcp.WithDescription("Search for Airbnb accommodations that sleep the requested party and are available between check-in and checkout dates. Returns listings with name, nightly price, rating, booking URL, and a listing id for detail lookups."),
			mcp.WithString("location", mcp.Required(), mcp.Description("City and state or region to search in (e.g., 'LA, CA')")),
			mcp.WithString("checkin", mcp.Description("Check-in date in YYYY-MM-DD format")),
			mcp.WithString("checkout", mcp.Description("Checkout date in YYYY-MM-DD format")),
			mcp.WithNumber("adults", mcp.Description("Number of adults (default: 1)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		catalog.Search(),
	)

	mcpServer.AddTool(
		mcp.NewTool("airbnb_listing_details",
			mcp.WithDescription("Return details for one listing from an earlier airbnb_search result: beds, guest capacity, rating, and the total price when stay dates are given."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Listing id from an airbnb_search result")),
			mcp.WithString("checkin", mcp.Description("Check-in date in YYYY-MM-DD format")),
			mcp.WithString("checkout", mcp.Description("Checkout date in YYYY-MM-DD format")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		catalog.ListingDetails(),
	)
}

// Search handles the airbnb_search tool: it returns the demo listings for
// a location that sleep the requested number of adults.
func (s *Server) Search() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		location, err := reqString(req, "location")
		if err != nil {
			logTool("airbnb_search", "", time.Since(start), err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		checkin := req.GetString("checkin", "")
		checkout := req.GetString("checkout", "")
		adults := req.GetInt("adults", 1)

		if _, err := parseStay(checkin, checkout); err != nil {
			logTool("airbnb_search", location, time.Since(start), err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		var matches []Listing
		for _, l := range Catalog(location) {
			if l.MaxGuests >= adults {
				matches = append(matches, l)
			}
		}
		s.remember(matches)

		logTool("airbnb_search", location, time.Since(start), nil)
		return mcp.NewToolResultText(formatSearch(location, checkin, checkout, adults, matches)), nil
	}
}

// ListingDetails handles the airbnb_listing_details tool. The id must come
// from an earlier airbnb_search result.
func (s *Server) ListingDetails() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		id, err := reqString(req, "id")
		if err != nil {
			logTool("airbnb_listing_details", "", time.Since(start), err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		checkin := req.GetString("checkin", "")
		checkout := req.GetString("checkout", "")

		nights, err := parseStay(checkin, checkout)
		if err != nil {
			logTool("airbnb_listing_details", id, time.Since(start), err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		listing, ok := s.lookup(id)
		if !ok {
			err := fmt.Errorf("unknown listing id %q: search for listings first", id)
			logTool("airbnb_listing_details", id, time.Since(start), err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		logTool("airbnb_listing_details", id, time.Since(start), nil)
		return mcp.NewToolResultText(formatDetails(listing, checkin, checkout, nights)), nil
	}
}

func (s *Server) remember(listings []Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range listings {
		s.byID[l.ID] = l
	}
}

func (s *Server) lookup(id string) (Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byID[id]
	return l, ok
}

// parseStay validates the optional stay dates and returns the number of
// nights when both are present.
func parseStay(checkin, checkout string) (int, error) {
	var in, out time.Time
	var err error
	if checkin != "" {
		if in, err = time.Parse("2006-01-02", checkin); err != nil {
			return 0, fmt.Errorf("invalid checkin date %q: use YYYY-MM-DD", checkin)
		}
	}
	if checkout != "" {
		if out, err = time.Parse("2006-01-02", checkout); err != nil {
			return 0, fmt.Errorf("invalid checkout date %q: use YYYY-MM-DD", checkout)
		}
	}
	if checkin == "" || checkout == "" {
		return 0, nil
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights <= 0 {
		return 0, fmt.Errorf("checkout %s must be after checkin %s", checkout, checkin)
	}
	return nights, nil
}

func formatSearch(location, checkin, checkout string, adults int, listings []Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d places in %s", len(listings), location)
	if checkin != "" && checkout != "" {
		fmt.Fprintf(&b, " (%s to %s)", checkin, checkout)
	}
	fmt.Fprintf(&b, " for %d adults:\n", adults)

	for i, l := range listings {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, l.Name)
		fmt.Fprintf(&b, "   $%d/night, rated %.1f (%d reviews), sleeps %d\n",
			l.PricePerNight, l.Rating, l.Reviews, l.MaxGuests)
		fmt.Fprintf(&b, "   %s\n", l.URL)
		fmt.Fprintf(&b, "   id: %s\n", l.ID)
	}
	if len(listings) == 0 {
		b.WriteString("\nTry fewer guests or another location.\n")
	}
	return b.String()
}

func formatDetails(l Listing, checkin, checkout string, nights int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s\n", l.Name, l.Location)
	fmt.Fprintf(&b, "$%d per night, rated %.1f from %d reviews\n", l.PricePerNight, l.Rating, l.Reviews)
	fmt.Fprintf(&b, "%d beds, sleeps up to %d guests\n", l.Beds, l.MaxGuests)
	if nights > 0 {
		fmt.Fprintf(&b, "Stay %s to %s: %d nights, $%d total\n", checkin, checkout, nights, nights*l.PricePerNight)
	}
	fmt.Fprintf(&b, "Book at %s\n", l.URL)
	return b.String()
}

func reqString(req mcp.CallToolRequest, key string) (string, error) {
	v := req.GetString(key, "")
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func logTool(tool, target string, dur time.Duration, err error) {
	if err != nil {
		slog.Warn("tool call failed", "tool", tool, "target", target, "duration", dur, "error", err)
		return
	}
	slog.Info("tool call", "tool", tool, "target", target, "duration", dur)
}
