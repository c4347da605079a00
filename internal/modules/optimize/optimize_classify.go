// Package optimize turns a user's path into an optimized driving route:
// it classifies the path's locations, asks the routing provider for a
// visiting order, builds a directions link and persists/caches the result.
package optimize

import (
	"errand-runner/internal/models"
)

// Validation messages, one per violated rule.
const (
	msgMissingOrigin        = "Path must have an origin location"
	msgMissingDestination   = "Path must have a destination location"
	msgTooFewLocations      = "Path must have at least two unique locations"
	msgDuplicateOrigin      = "Path must have only one origin location"
	msgDuplicateDestination = "Path must have only one destination location"
)

// ClassifiedPath is the per-call view of a path's locations split by role.
// It is built fresh for every optimization and never persisted.
type ClassifiedPath struct {
	Origin      *models.PathLocation
	Destination *models.PathLocation

	// Waypoints keeps the stored order; the provider's optimized indices refer to it.
	Waypoints []models.PathLocation

	// UniqueLocationIDs lists each location id once, in first-seen order.
	UniqueLocationIDs []int64

	originCount      int
	destinationCount int
}

// Classify splits locations into origin, destination and waypoints in a single pass.
// Anything not tagged origin or destination is a waypoint. A repeated origin or
// destination replaces the earlier one here and is rejected by Validate.
func Classify(locations []models.PathLocation) ClassifiedPath {
	var c ClassifiedPath
	seen := make(map[int64]struct{}, len(locations))

	for i := range locations {
		loc := locations[i]
		switch loc.Position {
		case models.PositionOrigin:
			c.Origin = &loc
			c.originCount++
		case models.PositionDestination:
			c.Destination = &loc
			c.destinationCount++
		default:
			c.Waypoints = append(c.Waypoints, loc)
		}

		if _, ok := seen[loc.ID]; !ok {
			seen[loc.ID] = struct{}{}
			c.UniqueLocationIDs = append(c.UniqueLocationIDs, loc.ID)
		}
	}

	return c
}

// Validate checks every structural rule and reports all violations at once.
func (c ClassifiedPath) Validate() error {
	var messages []string

	if c.Origin == nil {
		messages = append(messages, msgMissingOrigin)
	}
	if c.Destination == nil {
		messages = append(messages, msgMissingDestination)
	}
	if len(c.UniqueLocationIDs) < 2 {
		messages = append(messages, msgTooFewLocations)
	}
	if c.originCount > 1 {
		messages = append(messages, msgDuplicateOrigin)
	}
	if c.destinationCount > 1 {
		messages = append(messages, msgDuplicateDestination)
	}

	if len(messages) > 0 {
		return &models.ValidationError{Messages: messages}
	}
	return nil
}
