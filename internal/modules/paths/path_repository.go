package paths

import (
	"context"
	"errors"
	"fmt"

	"errand-runner/internal/db"
	"errand-runner/internal/models"
	"errand-runner/internal/modules/locations"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrPathNotFound is returned when a path is missing or owned by someone else.
	ErrPathNotFound = models.NewError(models.ErrNotFound, "Path not found")

	// ErrLocationNotInPath is returned when removing a location the path does not hold.
	ErrLocationNotInPath = models.NewError(models.ErrNotFound, "Location not found in path")

	// ErrWaypointIsEndpoint is returned when a waypoint is already the path's origin or destination.
	ErrWaypointIsEndpoint = models.NewError(models.ErrBadRequest, "Location already exists as origin or destination")

	// ErrEndpointInPath is returned when an origin or destination is already in the path at another position.
	ErrEndpointInPath = models.NewError(models.ErrBadRequest, "Location already exists in path")
)

const pathColumns = `id, user_id, name, created_at, directions_url, drive_time_seconds, distance_meters, url_generated_at`

// clearRouteQuery drops the optimization outputs after the location set changed.
const clearRouteQuery = `
	UPDATE paths
	SET directions_url = NULL, drive_time_seconds = NULL, distance_meters = NULL, url_generated_at = NULL
	WHERE id = $1`

// RepositoryInterface defines the contract for path storage.
type RepositoryInterface interface {
	Create(ctx context.Context, userID int64, name *string) (*models.Path, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Path, error)
	FindByID(ctx context.Context, userID, pathID int64) (*models.Path, error)
	UpdateName(ctx context.Context, userID, pathID int64, name *string) (*models.Path, error)
	Delete(ctx context.Context, userID, pathID int64) error

	GetWithLocations(ctx context.Context, userID, pathID int64) (*models.PathWithLocations, error)
	AddLocation(ctx context.Context, userID, pathID int64, req models.AddPathLocationRequest) (*models.PathWithLocations, error)
	RemoveLocation(ctx context.Context, userID, pathID int64, req models.RemovePathLocationRequest) (*models.PathWithLocations, error)
	UpdateRoute(ctx context.Context, userID, pathID int64, fields models.PathRouteFields) (*models.Path, error)
}

// Repository implements RepositoryInterface.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new path repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

func scanPath(row pgx.Row) (*models.Path, error) {
	var p models.Path
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.CreatedAt,
		&p.DirectionsURL,
		&p.DriveTimeSeconds,
		&p.DistanceMeters,
		&p.URLGeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPathNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, userID int64, name *string) (*models.Path, error) {
	query := `INSERT INTO paths (user_id, name) VALUES ($1, $2) RETURNING ` + pathColumns

	p, err := scanPath(r.db.QueryRow(ctx, query, userID, name))
	if err != nil {
		return nil, fmt.Errorf("repository.CreatePath: %w", err)
	}
	return p, nil
}

// ListByUserID returns the user's paths, newest first.
func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]models.Path, error) {
	query := `SELECT ` + pathColumns + ` FROM paths WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListPaths.Query: %w", err)
	}
	defer rows.Close()

	paths := []models.Path{}
	for rows.Next() {
		p, err := scanPath(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListPaths.Scan: %w", err)
		}
		paths = append(paths, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListPaths.Rows: %w", err)
	}
	return paths, nil
}

func (r *Repository) FindByID(ctx context.Context, userID, pathID int64) (*models.Path, error) {
	return findPath(ctx, r.db, userID, pathID, false)
}

// findPath loads an owned path. With forUpdate the row is locked until the
// surrounding transaction ends.
func findPath(ctx context.Context, q db.Querier, userID, pathID int64, forUpdate bool) (*models.Path, error) {
	query := `SELECT ` + pathColumns + ` FROM paths WHERE id = $1 AND user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p, err := scanPath(q.QueryRow(ctx, query, pathID, userID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.FindPath: %w", err)
	}
	return p, nil
}

func (r *Repository) UpdateName(ctx context.Context, userID, pathID int64, name *string) (*models.Path, error) {
	query := `UPDATE paths SET name = $1 WHERE id = $2 AND user_id = $3 RETURNING ` + pathColumns

	p, err := scanPath(r.db.QueryRow(ctx, query, name, pathID, userID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.UpdatePathName: %w", err)
	}
	return p, nil
}

// Delete removes the path and, by cascade, its location memberships.
func (r *Repository) Delete(ctx context.Context, userID, pathID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM paths WHERE id = $1 AND user_id = $2`, pathID, userID)
	if err != nil {
		return fmt.Errorf("repository.DeletePath: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPathNotFound
	}
	return nil
}

// GetWithLocations loads the path and its locations ordered origin first,
// then waypoints in insertion order, then destination.
func (r *Repository) GetWithLocations(ctx context.Context, userID, pathID int64) (*models.PathWithLocations, error) {
	p, err := r.FindByID(ctx, userID, pathID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT l.id, l.user_id, l.address, l.name, l.google_place_id, l.last_used, pl.position
		FROM paths_locations pl
		JOIN locations l ON l.id = pl.location_id
		WHERE pl.path_id = $1
		ORDER BY CASE pl.position WHEN 'origin' THEN 0 WHEN 'waypoint' THEN 1 ELSE 2 END, pl.id`

	rows, err := r.db.Query(ctx, query, pathID)
	if err != nil {
		return nil, fmt.Errorf("repository.GetPathLocations.Query: %w", err)
	}
	defer rows.Close()

	out := &models.PathWithLocations{Path: *p, Locations: []models.PathLocation{}}
	for rows.Next() {
		var pl models.PathLocation
		err := rows.Scan(&pl.ID, &pl.UserID, &pl.Address, &pl.Name, &pl.GooglePlaceID, &pl.LastUsed, &pl.Position)
		if err != nil {
			return nil, fmt.Errorf("repository.GetPathLocations.Scan: %w", err)
		}
		out.Locations = append(out.Locations, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.GetPathLocations.Rows: %w", err)
	}
	return out, nil
}

// AddLocation saves the location and attaches it at req.Position in one
// transaction. An origin or destination replaces the current one. A location
// holds at most one position in a path.
func (r *Repository) AddLocation(ctx context.Context, userID, pathID int64, req models.AddPathLocationRequest) (*models.PathWithLocations, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := findPath(ctx, tx, userID, pathID, true); err != nil {
			return err
		}

		loc, err := locations.NewRepository(tx).Upsert(ctx, userID, models.UpsertLocationRequest{
			Address:       req.Address,
			GooglePlaceID: req.GooglePlaceID,
			Name:          req.Name,
		})
		if err != nil {
			return err
		}

		if req.Position == models.PositionWaypoint {
			err = attachWaypoint(ctx, tx, pathID, loc.ID)
		} else {
			err = attachEndpoint(ctx, tx, pathID, loc.ID, req.Position)
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, clearRouteQuery, pathID); err != nil {
			return fmt.Errorf("repository.AddLocation.ClearRoute: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetWithLocations(ctx, userID, pathID)
}

func attachEndpoint(ctx context.Context, tx pgx.Tx, pathID, locationID int64, position models.Position) error {
	var elsewhere bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM paths_locations
			WHERE path_id = $1 AND location_id = $2 AND position <> $3
		)`, pathID, locationID, position).Scan(&elsewhere)
	if err != nil {
		return fmt.Errorf("repository.AddLocation.CheckInPath: %w", err)
	}
	if elsewhere {
		return ErrEndpointInPath
	}

	cmdTag, err := tx.Exec(ctx,
		`UPDATE paths_locations SET location_id = $1 WHERE path_id = $2 AND position = $3`,
		locationID, pathID, position)
	if err != nil {
		return fmt.Errorf("repository.AddLocation.ReplaceEndpoint: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO paths_locations (path_id, location_id, position) VALUES ($1, $2, $3)`,
		pathID, locationID, position)
	if err != nil {
		return fmt.Errorf("repository.AddLocation.InsertEndpoint: %w", err)
	}
	return nil
}

func attachWaypoint(ctx context.Context, tx pgx.Tx, pathID, locationID int64) error {
	var isEndpoint bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM paths_locations
			WHERE path_id = $1 AND location_id = $2 AND position IN ('origin', 'destination')
		)`, pathID, locationID).Scan(&isEndpoint)
	if err != nil {
		return fmt.Errorf("repository.AddLocation.CheckEndpoint: %w", err)
	}
	if isEndpoint {
		return ErrWaypointIsEndpoint
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO paths_locations (path_id, location_id, position)
		VALUES ($1, $2, 'waypoint')
		ON CONFLICT (path_id, location_id) DO NOTHING`, pathID, locationID)
	if err != nil {
		return fmt.Errorf("repository.AddLocation.InsertWaypoint: %w", err)
	}
	return nil
}

// RemoveLocation detaches one location/position pair from the path.
func (r *Repository) RemoveLocation(ctx context.Context, userID, pathID int64, req models.RemovePathLocationRequest) (*models.PathWithLocations, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := findPath(ctx, tx, userID, pathID, true); err != nil {
			return err
		}

		cmdTag, err := tx.Exec(ctx,
			`DELETE FROM paths_locations WHERE path_id = $1 AND location_id = $2 AND position = $3`,
			pathID, req.LocationID, req.Position)
		if err != nil {
			return fmt.Errorf("repository.RemoveLocation: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return ErrLocationNotInPath
		}

		if _, err := tx.Exec(ctx, clearRouteQuery, pathID); err != nil {
			return fmt.Errorf("repository.RemoveLocation.ClearRoute: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetWithLocations(ctx, userID, pathID)
}

// UpdateRoute stores the optimization outputs and returns the updated path.
func (r *Repository) UpdateRoute(ctx context.Context, userID, pathID int64, fields models.PathRouteFields) (*models.Path, error) {
	query := `
		UPDATE paths
		SET directions_url = $1, drive_time_seconds = $2, distance_meters = $3, url_generated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + pathColumns

	p, err := scanPath(r.db.QueryRow(ctx, query,
		fields.DirectionsURL, fields.DriveTimeSeconds, fields.DistanceMeters, fields.URLGeneratedAt, pathID, userID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.UpdateRoute: %w", err)
	}
	return p, nil
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (r *Repository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.Begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository.Commit: %w", err)
	}
	return nil
}
