package optimize

import (
	"net/url"
	"strings"
	"time"

	"errand-runner/internal/models"
)

// DirectionsBaseURL is the Google Maps URLs directions endpoint.
const DirectionsBaseURL = "https://www.google.com/maps/dir/?api=1"

// DirectionsLink is a generated navigation link and when it was made.
type DirectionsLink struct {
	URL         string
	GeneratedAt time.Time
}

// ReorderWaypoints returns waypoints in provider order: out[i] = waypoints[order[i]].
// With fewer than two waypoints, or no order, the input is returned as-is.
func ReorderWaypoints(waypoints []models.PathLocation, order []int) []models.PathLocation {
	if len(waypoints) < 2 || len(order) == 0 {
		return waypoints
	}
	out := make([]models.PathLocation, len(order))
	for i, idx := range order {
		out[i] = waypoints[idx]
	}
	return out
}

// BuildDirectionsURL composes the deep link. Waypoints must already be in
// visiting order; multiple waypoints are pipe-joined.
func BuildDirectionsURL(origin, destination models.PathLocation, waypoints []models.PathLocation, now time.Time) DirectionsLink {
	var b strings.Builder
	b.WriteString(DirectionsBaseURL)
	writeParam(&b, "origin", encode(origin.Address))
	writeParam(&b, "origin_place_id", encode(origin.GooglePlaceID))
	writeParam(&b, "destination", encode(destination.Address))
	writeParam(&b, "destination_place_id", encode(destination.GooglePlaceID))

	if len(waypoints) > 0 {
		addresses := make([]string, len(waypoints))
		placeIDs := make([]string, len(waypoints))
		for i, wp := range waypoints {
			addresses[i] = encode(wp.Address)
			placeIDs[i] = encode(wp.GooglePlaceID)
		}
		writeParam(&b, "waypoints", strings.Join(addresses, "|"))
		writeParam(&b, "waypoint_place_ids", strings.Join(placeIDs, "|"))
	}

	return DirectionsLink{URL: b.String(), GeneratedAt: now}
}

func writeParam(b *strings.Builder, name, value string) {
	b.WriteByte('&')
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)
}

// encode percent-encodes s for a query value, using %20 for spaces.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
