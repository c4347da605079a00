package optimize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"errand-runner/internal/models"
	"errand-runner/pkg/maps"
)

// ValidateRouteResponse decodes raw and checks that every field the pipeline
// reads is there. Each failure is a models.ErrExternalService naming the field.
func ValidateRouteResponse(raw []byte, waypointCount int) (*maps.ComputeRoutesResponse, error) {
	var resp maps.ComputeRoutesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed routes response: %v", models.ErrExternalService, err)
	}

	if len(resp.Routes) == 0 {
		return nil, fmt.Errorf("%w: routes missing or empty", models.ErrExternalService)
	}
	route := resp.Routes[0]
	if route.Duration == nil {
		return nil, fmt.Errorf("%w: routes[0].duration missing", models.ErrExternalService)
	}
	if route.DistanceMeters == nil {
		return nil, fmt.Errorf("%w: routes[0].distanceMeters missing", models.ErrExternalService)
	}

	if waypointCount > 1 {
		idx := route.OptimizedIntermediateWaypointIndex
		if idx == nil {
			return nil, fmt.Errorf("%w: routes[0].optimizedIntermediateWaypointIndex missing", models.ErrExternalService)
		}
		if len(idx) != waypointCount {
			return nil, fmt.Errorf("%w: routes[0].optimizedIntermediateWaypointIndex has %d entries, want %d",
				models.ErrExternalService, len(idx), waypointCount)
		}
		seen := make([]bool, waypointCount)
		for _, i := range idx {
			if i < 0 || i >= waypointCount {
				return nil, fmt.Errorf("%w: routes[0].optimizedIntermediateWaypointIndex has out of range index %d",
					models.ErrExternalService, i)
			}
			if seen[i] {
				return nil, fmt.Errorf("%w: routes[0].optimizedIntermediateWaypointIndex has duplicate index %d",
					models.ErrExternalService, i)
			}
			seen[i] = true
		}
	}

	return &resp, nil
}

// ParseRouteResponse extracts drive time, distance and, for more than one
// waypoint, the optimized index order. resp must have passed ValidateRouteResponse.
func ParseRouteResponse(resp *maps.ComputeRoutesResponse, waypointCount int) (models.RouteSummary, error) {
	route := resp.Routes[0]

	seconds, err := parseDuration(*route.Duration)
	if err != nil {
		return models.RouteSummary{}, fmt.Errorf("%w: routes[0].duration %q: %v", models.ErrExternalService, *route.Duration, err)
	}

	summary := models.RouteSummary{
		DriveTimeSeconds: seconds,
		DistanceMeters:   *route.DistanceMeters,
	}
	if waypointCount > 1 {
		summary.OptimizedWaypointIndex = append([]int(nil), route.OptimizedIntermediateWaypointIndex...)
	}
	return summary, nil
}

// parseDuration turns the provider's "734s" into 734.
func parseDuration(d string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(d, "s"), 64)
}
