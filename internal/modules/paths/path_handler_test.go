package paths

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"errand-runner/internal/models"
	"errand-runner/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	ServiceInterface
	addReq    models.AddPathLocationRequest
	removeReq models.RemovePathLocationRequest
	err       error
}

func (s *stubService) CreatePath(_ context.Context, userID int64, req models.CreatePathRequest) (*models.Path, error) {
	return &models.Path{ID: 10, UserID: userID, Name: req.Name}, s.err
}

func (s *stubService) GetPathLocations(_ context.Context, userID, pathID int64) (*models.PathWithLocations, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.PathWithLocations{Path: models.Path{ID: pathID, UserID: userID}, Locations: []models.PathLocation{}}, nil
}

func (s *stubService) AddLocation(_ context.Context, userID, pathID int64, req models.AddPathLocationRequest) (*models.PathWithLocations, error) {
	s.addReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.PathWithLocations{Path: models.Path{ID: pathID, UserID: userID}}, nil
}

func (s *stubService) RemoveLocation(_ context.Context, userID, pathID int64, req models.RemovePathLocationRequest) (*models.PathWithLocations, error) {
	s.removeReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.PathWithLocations{Path: models.Path{ID: pathID, UserID: userID}}, nil
}

func (s *stubService) ShareRoute(context.Context, int64, int64, models.SharePathRequest) error {
	return s.err
}

func newServer(svc ServiceInterface) *echo.Echo {
	e := echo.New()
	g := e.Group("/paths", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(utils.UserIDKey, int64(7))
			return next(c)
		}
	})
	RegisterRoutes(g, NewHandler(svc))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreatePathHandler(t *testing.T) {
	rec := do(newServer(&stubService{}), http.MethodPost, "/paths", `{"name":"Errands"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Errands"`)
	assert.Contains(t, rec.Body.String(), `"directions_url":null`)
}

func TestGetPathLocationsHandlerNotFound(t *testing.T) {
	rec := do(newServer(&stubService{err: ErrPathNotFound}), http.MethodGet, "/paths/10/locations", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Path not found","status":"NOT_FOUND"}`, rec.Body.String())
}

func TestAddLocationHandler(t *testing.T) {
	svc := &stubService{}
	rec := do(newServer(svc), http.MethodPost, "/paths/10/locations",
		`{"position":"waypoint","address":"1 Main St","google_place_id":"place_1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PositionWaypoint, svc.addReq.Position)
	assert.Equal(t, "place_1", svc.addReq.GooglePlaceID)
}

func TestAddLocationHandlerRejectsUnknownPosition(t *testing.T) {
	svc := &stubService{}
	rec := do(newServer(svc), http.MethodPost, "/paths/10/locations",
		`{"position":"stopover","address":"1 Main St","google_place_id":"place_1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.addReq.GooglePlaceID)
}

func TestAddLocationHandlerEndpointConflict(t *testing.T) {
	rec := do(newServer(&stubService{err: ErrWaypointIsEndpoint}), http.MethodPost, "/paths/10/locations",
		`{"position":"waypoint","address":"1 Main St","google_place_id":"place_1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Location already exists as origin or destination")
}

func TestRemoveLocationHandler(t *testing.T) {
	svc := &stubService{}
	rec := do(newServer(svc), http.MethodPatch, "/paths/10/locations", `{"location_id":3,"position":"origin"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.removeReq.LocationID)
	assert.Equal(t, models.PositionOrigin, svc.removeReq.Position)
}

func TestShareRouteHandler(t *testing.T) {
	rec := do(newServer(&stubService{}), http.MethodPost, "/paths/10/share", `{"email":"friend@example.com"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = do(newServer(&stubService{err: ErrRouteNotGenerated}), http.MethodPost, "/paths/10/share", `{"email":"friend@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Path has no generated route")

	rec = do(newServer(&stubService{}), http.MethodPost, "/paths/10/share", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPathHandlerBadID(t *testing.T) {
	rec := do(newServer(&stubService{}), http.MethodGet, "/paths/zero/locations", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
