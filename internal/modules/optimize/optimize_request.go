package optimize

import (
	"net/http"
	"strings"

	"errand-runner/pkg/maps"
)

// BuildRouteRequest shapes a computeRoutes call for c: driving, traffic aware,
// a single route, no avoidances, US English, imperial units. Intermediates are
// sent when there is at least one waypoint; waypoint order optimization (and
// its response field) only when there are two or more.
func BuildRouteRequest(c ClassifiedPath, apiKey string) maps.RouteRequest {
	body := maps.ComputeRoutesRequest{
		Origin:                   maps.Waypoint{PlaceID: c.Origin.GooglePlaceID},
		Destination:              maps.Waypoint{PlaceID: c.Destination.GooglePlaceID},
		TravelMode:               maps.TravelModeDrive,
		RoutingPreference:        maps.RoutingTrafficAware,
		ComputeAlternativeRoutes: false,
		RouteModifiers: maps.RouteModifiers{
			AvoidTolls:    false,
			AvoidHighways: false,
			AvoidFerries:  false,
		},
		LanguageCode: maps.LanguageEnglishUS,
		Units:        maps.UnitsImperial,
	}

	fields := []string{maps.FieldDuration, maps.FieldDistanceMeters}

	if len(c.Waypoints) > 0 {
		body.Intermediates = make([]maps.Waypoint, len(c.Waypoints))
		for i, wp := range c.Waypoints {
			body.Intermediates[i] = maps.Waypoint{PlaceID: wp.GooglePlaceID}
		}
	}
	if len(c.Waypoints) > 1 {
		body.OptimizeWaypointOrder = true
		fields = append(fields, maps.FieldOptimizedWaypointIndex)
	}

	header := http.Header{}
	header.Set(maps.HeaderAPIKey, apiKey)
	header.Set(maps.HeaderFieldMask, strings.Join(fields, ","))

	return maps.RouteRequest{Body: body, Header: header}
}
