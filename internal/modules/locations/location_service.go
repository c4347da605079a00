package locations

import (
	"context"
	"fmt"

	"errand-runner/internal/models"
)

// ServiceInterface defines the saved-location use cases.
type ServiceInterface interface {
	SaveLocation(ctx context.Context, userID int64, req models.UpsertLocationRequest) (*models.Location, error)
	ListLocations(ctx context.Context, userID int64) ([]models.Location, error)
	GetLocation(ctx context.Context, userID, locationID int64) (*models.Location, error)
	DeleteLocation(ctx context.Context, userID, locationID int64) error
}

type Service struct {
	repo RepositoryInterface
}

// NewService creates a new location service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) SaveLocation(ctx context.Context, userID int64, req models.UpsertLocationRequest) (*models.Location, error) {
	loc, err := s.repo.Upsert(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("service.SaveLocation: %w", err)
	}
	return loc, nil
}

func (s *Service) ListLocations(ctx context.Context, userID int64) ([]models.Location, error) {
	locs, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ListLocations: %w", err)
	}
	return locs, nil
}

func (s *Service) GetLocation(ctx context.Context, userID, locationID int64) (*models.Location, error) {
	loc, err := s.repo.FindByID(ctx, userID, locationID)
	if err != nil {
		return nil, fmt.Errorf("service.GetLocation: %w", err)
	}
	return loc, nil
}

func (s *Service) DeleteLocation(ctx context.Context, userID, locationID int64) error {
	if err := s.repo.Delete(ctx, userID, locationID); err != nil {
		return fmt.Errorf("service.DeleteLocation: %w", err)
	}
	return nil
}
