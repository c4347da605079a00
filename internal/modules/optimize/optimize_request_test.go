package optimize

import (
	"testing"

	"errand-runner/internal/models"
	"errand-runner/pkg/maps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classified(waypoints ...models.PathLocation) ClassifiedPath {
	locations := []models.PathLocation{
		loc(1, "place_O", "1 Origin Rd", models.PositionOrigin),
		loc(2, "place_D", "2 Destination Ave", models.PositionDestination),
	}
	return Classify(append(locations, waypoints...))
}

func TestCacheKeyIsDeterministic(t *testing.T) {
	c := classified(
		loc(3, "place_W1", "W1", models.PositionWaypoint),
		loc(4, "place_W2", "W2", models.PositionWaypoint),
	)
	first := CacheKey(10, 7, c)
	second := CacheKey(10, 7, c)
	assert.Equal(t, first, second)
	assert.Equal(t, "10:7:place_O:place_D:place_W1:place_W2", first)
}

func TestCacheKeyKeepsWaypointOrder(t *testing.T) {
	a := classified(
		loc(3, "place_W1", "W1", models.PositionWaypoint),
		loc(4, "place_W2", "W2", models.PositionWaypoint),
	)
	b := classified(
		loc(4, "place_W2", "W2", models.PositionWaypoint),
		loc(3, "place_W1", "W1", models.PositionWaypoint),
	)
	assert.NotEqual(t, CacheKey(10, 7, a), CacheKey(10, 7, b))
}

func TestCacheKeyChangesWithLocations(t *testing.T) {
	a := classified()
	b := classified(loc(3, "place_W1", "W1", models.PositionWaypoint))
	assert.Equal(t, "10:7:place_O:place_D", CacheKey(10, 7, a))
	assert.NotEqual(t, CacheKey(10, 7, a), CacheKey(10, 7, b))
	assert.NotEqual(t, CacheKey(10, 7, a), CacheKey(10, 8, a))
}

func TestBuildRouteRequestNoWaypoints(t *testing.T) {
	req := BuildRouteRequest(classified(), "key-1")

	assert.Equal(t, "place_O", req.Body.Origin.PlaceID)
	assert.Equal(t, "place_D", req.Body.Destination.PlaceID)
	assert.Nil(t, req.Body.Intermediates)
	assert.False(t, req.Body.OptimizeWaypointOrder)
	assert.Equal(t, maps.TravelModeDrive, req.Body.TravelMode)
	assert.Equal(t, maps.RoutingTrafficAware, req.Body.RoutingPreference)
	assert.False(t, req.Body.ComputeAlternativeRoutes)
	assert.Equal(t, maps.RouteModifiers{}, req.Body.RouteModifiers)
	assert.Equal(t, maps.LanguageEnglishUS, req.Body.LanguageCode)
	assert.Equal(t, maps.UnitsImperial, req.Body.Units)

	assert.Equal(t, "key-1", req.Header.Get(maps.HeaderAPIKey))
	assert.Equal(t, "routes.duration,routes.distanceMeters", req.Header.Get(maps.HeaderFieldMask))
}

func TestBuildRouteRequestOneWaypoint(t *testing.T) {
	req := BuildRouteRequest(classified(loc(3, "place_W1", "W1", models.PositionWaypoint)), "key-1")

	require.Len(t, req.Body.Intermediates, 1)
	assert.Equal(t, "place_W1", req.Body.Intermediates[0].PlaceID)
	assert.False(t, req.Body.OptimizeWaypointOrder)
	assert.Equal(t, "routes.duration,routes.distanceMeters", req.Header.Get(maps.HeaderFieldMask))
}

func TestBuildRouteRequestManyWaypoints(t *testing.T) {
	req := BuildRouteRequest(classified(
		loc(3, "place_W1", "W1", models.PositionWaypoint),
		loc(4, "place_W2", "W2", models.PositionWaypoint),
		loc(5, "place_W3", "W3", models.PositionWaypoint),
	), "key-1")

	require.Len(t, req.Body.Intermediates, 3)
	assert.Equal(t, []maps.Waypoint{{PlaceID: "place_W1"}, {PlaceID: "place_W2"}, {PlaceID: "place_W3"}}, req.Body.Intermediates)
	assert.True(t, req.Body.OptimizeWaypointOrder)
	assert.Equal(t,
		"routes.duration,routes.distanceMeters,routes.optimizedIntermediateWaypointIndex",
		req.Header.Get(maps.HeaderFieldMask))
}
