package models

// RouteSummary is what the pipeline keeps from a routing provider response.
type RouteSummary struct {
	DriveTimeSeconds float64
	DistanceMeters   int64

	// OptimizedWaypointIndex is set only when more than one waypoint was sent.
	// Values are 0-based positions into the waypoint list as it was sent.
	OptimizedWaypointIndex []int
}
