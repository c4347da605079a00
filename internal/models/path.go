package models

import "time"

// Path is a named errand run owned by a user. The four route fields are
// written only by a successful optimization and cleared on any location change.
type Path struct {
	ID               int64      `json:"id" db:"id"`
	UserID           int64      `json:"user_id" db:"user_id"`
	Name             *string    `json:"name" db:"name"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	DirectionsURL    *string    `json:"directions_url" db:"directions_url"`
	DriveTimeSeconds *float64   `json:"drive_time_seconds" db:"drive_time_seconds"`
	DistanceMeters   *int64     `json:"distance_meters" db:"distance_meters"`
	URLGeneratedAt   *time.Time `json:"url_generated_at" db:"url_generated_at"`
}

// PathWithLocations is a path together with its ordered locations.
type PathWithLocations struct {
	Path
	Locations []PathLocation `json:"locations"`
}

// PathRouteFields are the optimization outputs persisted onto a path.
type PathRouteFields struct {
	DirectionsURL    string
	DriveTimeSeconds float64
	DistanceMeters   int64
	URLGeneratedAt   time.Time
}

type CreatePathRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
}

type UpdatePathRequest struct {
	Name *string `json:"name" validate:"required,max=255"`
}

type SharePathRequest struct {
	Email string `json:"email" validate:"required,email"`
}
