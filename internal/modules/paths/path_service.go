package paths

import (
	"context"
	"fmt"
	"math"

	"errand-runner/internal/models"
	emailSvc "errand-runner/pkg/email"

	"github.com/labstack/echo/v4"
)

// ErrRouteNotGenerated is returned when sharing a path that was never optimized
// or whose route was cleared by a location change.
var ErrRouteNotGenerated = models.NewError(models.ErrNoRoute, "Path has no generated route")

const shareSubject = "Your errand route"

// ServiceInterface defines the path use cases.
type ServiceInterface interface {
	CreatePath(ctx context.Context, userID int64, req models.CreatePathRequest) (*models.Path, error)
	ListPaths(ctx context.Context, userID int64) ([]models.Path, error)
	GetPath(ctx context.Context, userID, pathID int64) (*models.Path, error)
	UpdatePath(ctx context.Context, userID, pathID int64, req models.UpdatePathRequest) (*models.Path, error)
	DeletePath(ctx context.Context, userID, pathID int64) error

	GetPathLocations(ctx context.Context, userID, pathID int64) (*models.PathWithLocations, error)
	AddLocation(ctx context.Context, userID, pathID int64, req models.AddPathLocationRequest) (*models.PathWithLocations, error)
	RemoveLocation(ctx context.Context, userID, pathID int64, req models.RemovePathLocationRequest) (*models.PathWithLocations, error)

	ShareRoute(ctx context.Context, userID, pathID int64, req models.SharePathRequest) error
}

type Service struct {
	repo            RepositoryInterface
	emailer         emailSvc.ServiceInterface
	templateManager *emailSvc.TemplateManager
	logger          echo.Logger
}

// NewService creates a new path service. emailer may be nil, in which case
// ShareRoute reports an internal error.
func NewService(repo RepositoryInterface, emailer emailSvc.ServiceInterface, tm *emailSvc.TemplateManager, logger echo.Logger) *Service {
	return &Service{
		repo:            repo,
		emailer:         emailer,
		templateManager: tm,
		logger:          logger,
	}
}

func (s *Service) CreatePath(ctx context.Context, userID int64, req models.CreatePathRequest) (*models.Path, error) {
	p, err := s.repo.Create(ctx, userID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("service.CreatePath: %w", err)
	}
	return p, nil
}

func (s *Service) ListPaths(ctx context.Context, userID int64) ([]models.Path, error) {
	paths, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ListPaths: %w", err)
	}
	return paths, nil
}

func (s *Service) GetPath(ctx context.Context, userID, pathID int64) (*models.Path, error) {
	p, err := s.repo.FindByID(ctx, userID, pathID)
	if err != nil {
		return nil, fmt.Errorf("service.GetPath: %w", err)
	}
	return p, nil
}

func (s *Service) UpdatePath(ctx context.Context, userID, pathID int64, req models.UpdatePathRequest) (*models.Path, error) {
	p, err := s.repo.UpdateName(ctx, userID, pathID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("service.UpdatePath: %w", err)
	}
	return p, nil
}

func (s *Service) DeletePath(ctx context.Context, userID, pathID int64) error {
	if err := s.repo.Delete(ctx, userID, pathID); err != nil {
		return fmt.Errorf("service.DeletePath: %w", err)
	}
	return nil
}

func (s *Service) GetPathLocations(ctx context.Context, userID, pathID int64) (*models.PathWithLocations, error) {
	p, err := s.repo.GetWithLocations(ctx, userID, pathID)
	if err != nil {
		return nil, fmt.Errorf("service.GetPathLocations: %w", err)
	}
	return p, nil
}

func (s *Service) AddLocation(ctx context.Context, userID, pathID int64, req models.AddPathLocationRequest) (*models.PathWithLocations, error) {
	p, err := s.repo.AddLocation(ctx, userID, pathID, req)
	if err != nil {
		return nil, fmt.Errorf("service.AddLocation: %w", err)
	}
	s.logger.Infof("path user_id=%d path_id=%d: added place_id=%s as %s", userID, pathID, req.GooglePlaceID, req.Position)
	return p, nil
}

func (s *Service) RemoveLocation(ctx context.Context, userID, pathID int64, req models.RemovePathLocationRequest) (*models.PathWithLocations, error) {
	p, err := s.repo.RemoveLocation(ctx, userID, pathID, req)
	if err != nil {
		return nil, fmt.Errorf("service.RemoveLocation: %w", err)
	}
	s.logger.Infof("path user_id=%d path_id=%d: removed location_id=%d from %s", userID, pathID, req.LocationID, req.Position)
	return p, nil
}

// ShareRoute emails the path's stored directions link to req.Email.
func (s *Service) ShareRoute(ctx context.Context, userID, pathID int64, req models.SharePathRequest) error {
	p, err := s.repo.FindByID(ctx, userID, pathID)
	if err != nil {
		return fmt.Errorf("service.ShareRoute: %w", err)
	}
	if p.DirectionsURL == nil {
		return ErrRouteNotGenerated
	}
	if s.emailer == nil || s.templateManager == nil {
		return fmt.Errorf("service.ShareRoute: %w: email is not configured", models.ErrInternal)
	}

	data := shareData(p)
	htmlContent, err := s.templateManager.GenerateRouteShareEmailHTML(data)
	if err != nil {
		return fmt.Errorf("service.ShareRoute.Template: %w", err)
	}
	plainText := fmt.Sprintf("%s\n\nOpen your route in Google Maps: %s", data.PathName, data.Link)

	if err := s.emailer.SendEmail(ctx, req.Email, shareSubject, plainText, htmlContent); err != nil {
		s.logger.Errorf("path user_id=%d path_id=%d: share route: %v", userID, pathID, err)
		return fmt.Errorf("service.ShareRoute: %w", models.ErrExternalService)
	}
	return nil
}

func shareData(p *models.Path) emailSvc.RouteShareData {
	data := emailSvc.RouteShareData{PathName: "Errand route", Link: *p.DirectionsURL}
	if p.Name != nil && *p.Name != "" {
		data.PathName = *p.Name
	}
	if p.DriveTimeSeconds != nil {
		data.DriveTime = fmt.Sprintf("%d min", int(math.Round(*p.DriveTimeSeconds/60)))
	}
	if p.DistanceMeters != nil {
		data.Distance = fmt.Sprintf("%.1f mi", float64(*p.DistanceMeters)/metersPerMile)
	}
	return data
}

const metersPerMile = 1609.344
