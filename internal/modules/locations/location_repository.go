package locations

import (
	"context"
	"errors"
	"fmt"

	"errand-runner/internal/db"
	"errand-runner/internal/models"

	"github.com/jackc/pgx/v5"
)

// ErrLocationNotFound is returned when a location is missing or owned by someone else.
var ErrLocationNotFound = models.NewError(models.ErrNotFound, "Location not found")

const locationColumns = `id, user_id, address, name, google_place_id, last_used`

// RepositoryInterface defines the contract for location storage.
type RepositoryInterface interface {
	Upsert(ctx context.Context, userID int64, req models.UpsertLocationRequest) (*models.Location, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Location, error)
	FindByID(ctx context.Context, userID, locationID int64) (*models.Location, error)
	Delete(ctx context.Context, userID, locationID int64) error
}

// Repository implements RepositoryInterface on any Querier, including a pgx.Tx.
type Repository struct {
	db db.Querier
}

// NewRepository creates a new location repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

func scanLocation(row pgx.Row) (*models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.UserID, &l.Address, &l.Name, &l.GooglePlaceID, &l.LastUsed)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Upsert inserts the location or, when the user already saved this place,
// refreshes its address and name. Either way last_used is stamped now.
func (r *Repository) Upsert(ctx context.Context, userID int64, req models.UpsertLocationRequest) (*models.Location, error) {
	query := `
		INSERT INTO locations (user_id, address, name, google_place_id, last_used)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, google_place_id)
		DO UPDATE SET address = EXCLUDED.address, name = EXCLUDED.name, last_used = EXCLUDED.last_used
		RETURNING ` + locationColumns

	loc, err := scanLocation(r.db.QueryRow(ctx, query, userID, req.Address, req.Name, req.GooglePlaceID))
	if err != nil {
		return nil, fmt.Errorf("repository.UpsertLocation: %w", err)
	}
	return loc, nil
}

// ListByUserID returns the user's locations, most recently used first.
func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE user_id = $1 ORDER BY last_used DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListLocations.Query: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListLocations.Scan: %w", err)
		}
		locations = append(locations, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListLocations.Rows: %w", err)
	}
	return locations, nil
}

func (r *Repository) FindByID(ctx context.Context, userID, locationID int64) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1 AND user_id = $2`

	loc, err := scanLocation(r.db.QueryRow(ctx, query, locationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("repository.FindLocation: %w", err)
	}
	return loc, nil
}

// Delete removes the location; path memberships go with it. Paths that held
// the location lose their generated route in the same transaction.
func (r *Repository) Delete(ctx context.Context, userID, locationID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.DeleteLocation.Begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE paths
		SET directions_url = NULL, drive_time_seconds = NULL, distance_meters = NULL, url_generated_at = NULL
		WHERE user_id = $2 AND id IN (SELECT path_id FROM paths_locations WHERE location_id = $1)`,
		locationID, userID)
	if err != nil {
		return fmt.Errorf("repository.DeleteLocation.ClearRoutes: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND user_id = $2`, locationID, userID)
	if err != nil {
		return fmt.Errorf("repository.DeleteLocation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrLocationNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository.DeleteLocation.Commit: %w", err)
	}
	return nil
}
