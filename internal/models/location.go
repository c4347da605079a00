package models

import "time"

// Position is the role a location plays within a path.
type Position string

const (
	PositionOrigin      Position = "origin"
	PositionDestination Position = "destination"
	PositionWaypoint    Position = "waypoint"
)

// Valid reports whether p is one of the three known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionOrigin, PositionDestination, PositionWaypoint:
		return true
	}
	return false
}

// Location is a user-owned address. (UserID, GooglePlaceID) is unique.
type Location struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Address       string    `json:"address" db:"address"`
	Name          string    `json:"name" db:"name"`
	GooglePlaceID string    `json:"google_place_id" db:"google_place_id"`
	LastUsed      time.Time `json:"last_used" db:"last_used"`
}

// PathLocation is a location as it appears in a specific path.
type PathLocation struct {
	Location
	Position Position `json:"position" db:"position"`
}

// UpsertLocationRequest is the body for creating (or refreshing) a location.
type UpsertLocationRequest struct {
	Address       string `json:"address" validate:"required"`
	GooglePlaceID string `json:"google_place_id" validate:"required"`
	Name          string `json:"name"`
}

// AddPathLocationRequest is the body for attaching a location to a path.
type AddPathLocationRequest struct {
	Position      Position `json:"position" validate:"required,oneof=origin destination waypoint"`
	Address       string   `json:"address" validate:"required"`
	GooglePlaceID string   `json:"google_place_id" validate:"required"`
	Name          string   `json:"name"`
}

// RemovePathLocationRequest is the body for detaching a location from a path.
type RemovePathLocationRequest struct {
	LocationID int64    `json:"location_id" validate:"required,gt=0"`
	Position   Position `json:"position" validate:"required,oneof=origin destination waypoint"`
}
