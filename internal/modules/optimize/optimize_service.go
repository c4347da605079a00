package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"errand-runner/internal/models"
	"errand-runner/pkg/maps"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"
)

// PathRepository is the slice of path storage the pipeline needs. Both methods
// return models.ErrNotFound when the path is missing or not owned by userID.
type PathRepository interface {
	GetWithLocations(ctx context.Context, userID, pathID int64) (*models.PathWithLocations, error)
	UpdateRoute(ctx context.Context, userID, pathID int64, fields models.PathRouteFields) (*models.Path, error)
}

// RouteProvider computes a route and returns the provider's raw JSON body.
type RouteProvider interface {
	ComputeRoutes(ctx context.Context, req maps.RouteRequest) ([]byte, error)
}

// ServiceInterface defines the route optimization use case.
type ServiceInterface interface {
	CalculateRoute(ctx context.Context, userID, pathID int64) (*Result, error)
}

// Result is the serialized updated path. On a cache hit Path is the cached
// value byte for byte.
type Result struct {
	Path   json.RawMessage
	Cached bool
}

// Service runs the optimization pipeline.
type Service struct {
	paths    PathRepository
	cache    CacheStore
	provider RouteProvider
	apiKey   string
	cacheTTL time.Duration
	logger   echo.Logger
	now      func() time.Time

	// inflight collapses concurrent calls for the same user/path into one run.
	inflight singleflight.Group
}

// NewService wires the pipeline to its collaborators.
func NewService(paths PathRepository, cache CacheStore, provider RouteProvider, apiKey string, cacheTTL time.Duration, logger echo.Logger) *Service {
	return &Service{
		paths:    paths,
		cache:    cache,
		provider: provider,
		apiKey:   apiKey,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// CalculateRoute optimizes the path and returns the updated path as JSON.
// Once started, a run is not cancelled by the caller going away; concurrent
// calls for the same path share one run.
func (s *Service) CalculateRoute(ctx context.Context, userID, pathID int64) (*Result, error) {
	key := strconv.FormatInt(userID, 10) + "/" + strconv.FormatInt(pathID, 10)
	runCtx := context.WithoutCancel(ctx)

	v, err, _ := s.inflight.Do(key, func() (interface{}, error) {
		return s.run(runCtx, userID, pathID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (s *Service) run(ctx context.Context, userID, pathID int64) (*Result, error) {
	path, err := s.paths.GetWithLocations(ctx, userID, pathID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		s.logger.Errorf("optimize: load path user_id=%d path_id=%d: %v", userID, pathID, err)
		return nil, fmt.Errorf("%w: load path", models.ErrInternal)
	}

	classified := Classify(path.Locations)
	if err := classified.Validate(); err != nil {
		s.logger.Infof("optimize: path user_id=%d path_id=%d rejected: %v", userID, pathID, err)
		return nil, err
	}

	cacheKey := CacheKey(pathID, userID, classified)
	if path.DirectionsURL != nil {
		if cached, ok := s.lookupCached(ctx, cacheKey); ok {
			return &Result{Path: json.RawMessage(cached), Cached: true}, nil
		}
	}

	summary, err := s.computeRoute(ctx, classified)
	if err != nil {
		s.logger.Errorf("optimize: routes api user_id=%d path_id=%d key=%s: %v", userID, pathID, cacheKey, err)
		return nil, err
	}

	waypoints := ReorderWaypoints(classified.Waypoints, summary.OptimizedWaypointIndex)
	link := BuildDirectionsURL(*classified.Origin, *classified.Destination, waypoints, s.now())

	payload, err := s.persist(ctx, userID, pathID, cacheKey, summary, link)
	if err != nil {
		return nil, err
	}
	return &Result{Path: payload}, nil
}

// lookupCached reports a hit only for a successful read. Cache errors are
// logged and treated as a miss. Callers skip it once the path's route fields
// were cleared, since an entry written before the clear no longer matches the
// stored path.
func (s *Service) lookupCached(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	val, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warnf("optimize: cache get key=%s: %v", key, err)
		return "", false
	}
	return val, ok
}

// computeRoute builds the request, calls the provider once, then validates
// and parses the body. Every failure is a models.ErrExternalService.
func (s *Service) computeRoute(ctx context.Context, classified ClassifiedPath) (models.RouteSummary, error) {
	req := BuildRouteRequest(classified, s.apiKey)

	raw, err := s.provider.ComputeRoutes(ctx, req)
	if err != nil {
		s.logger.Errorf("optimize: routes api call failed: %v", err)
		return models.RouteSummary{}, models.ErrExternalService
	}

	resp, err := ValidateRouteResponse(raw, len(classified.Waypoints))
	if err != nil {
		return models.RouteSummary{}, err
	}
	return ParseRouteResponse(resp, len(classified.Waypoints))
}

// persist writes the route fields onto the path, then caches the serialized
// path. A failed cache write is logged; the path is already saved.
func (s *Service) persist(ctx context.Context, userID, pathID int64, cacheKey string, summary models.RouteSummary, link DirectionsLink) (json.RawMessage, error) {
	updated, err := s.paths.UpdateRoute(ctx, userID, pathID, models.PathRouteFields{
		DirectionsURL:    link.URL,
		DriveTimeSeconds: summary.DriveTimeSeconds,
		DistanceMeters:   summary.DistanceMeters,
		URLGeneratedAt:   link.GeneratedAt,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		s.logger.Errorf("optimize: save route user_id=%d path_id=%d: %v", userID, pathID, err)
		return nil, fmt.Errorf("%w: save route", models.ErrInternal)
	}

	payload, err := json.Marshal(updated)
	if err != nil {
		s.logger.Errorf("optimize: encode path user_id=%d path_id=%d: %v", userID, pathID, err)
		return nil, fmt.Errorf("%w: encode path", models.ErrInternal)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
			s.logger.Warnf("optimize: cache set key=%s: %v", cacheKey, err)
		}
	}
	return payload, nil
}
