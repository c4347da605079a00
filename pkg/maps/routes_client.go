// Package maps talks to the Google Routes API.
package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRoutesURL is the computeRoutes endpoint of the Google Routes API v2.
const DefaultRoutesURL = "https://routes.googleapis.com/directions/v2:computeRoutes"

const (
	HeaderAPIKey    = "X-Goog-Api-Key"
	HeaderFieldMask = "X-Goog-FieldMask"

	FieldDuration               = "routes.duration"
	FieldDistanceMeters         = "routes.distanceMeters"
	FieldOptimizedWaypointIndex = "routes.optimizedIntermediateWaypointIndex"
)

// Request body constants for computeRoutes.
const (
	TravelModeDrive     = "DRIVE"
	RoutingTrafficAware = "TRAFFIC_AWARE"
	LanguageEnglishUS   = "en-US"
	UnitsImperial       = "IMPERIAL"
)

// Waypoint references a place by its Google place id.
type Waypoint struct {
	PlaceID string `json:"placeId"`
}

type RouteModifiers struct {
	AvoidTolls    bool `json:"avoidTolls"`
	AvoidHighways bool `json:"avoidHighways"`
	AvoidFerries  bool `json:"avoidFerries"`
}

// ComputeRoutesRequest is the JSON body sent to computeRoutes.
type ComputeRoutesRequest struct {
	Origin                   Waypoint       `json:"origin"`
	Destination              Waypoint       `json:"destination"`
	Intermediates            []Waypoint     `json:"intermediates,omitempty"`
	TravelMode               string         `json:"travelMode"`
	RoutingPreference        string         `json:"routingPreference"`
	ComputeAlternativeRoutes bool           `json:"computeAlternativeRoutes"`
	RouteModifiers           RouteModifiers `json:"routeModifiers"`
	LanguageCode             string         `json:"languageCode"`
	Units                    string         `json:"units"`
	OptimizeWaypointOrder    bool           `json:"optimizeWaypointOrder,omitempty"`
}

// RouteRequest is a fully shaped call: body plus headers (api key, field mask).
type RouteRequest struct {
	Body   ComputeRoutesRequest
	Header http.Header
}

// ComputeRoutesResponse is the subset of the computeRoutes response the field
// mask asks for. Pointer fields stay nil when the provider omits them.
type ComputeRoutesResponse struct {
	Routes []Route `json:"routes"`
}

type Route struct {
	Duration                           *string `json:"duration"`
	DistanceMeters                     *int64  `json:"distanceMeters"`
	OptimizedIntermediateWaypointIndex []int   `json:"optimizedIntermediateWaypointIndex"`
}

// RequestError describes why a computeRoutes call failed.
type RequestError struct {
	StatusCode int
	Reason     string
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("routes api: HTTP %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("routes api: %s", e.Reason)
}

// RoutesClient posts requests to the Routes API and returns raw JSON bodies.
type RoutesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRoutesClient creates a client. An empty baseURL selects DefaultRoutesURL;
// timeout bounds the whole HTTP exchange and zero means no limit.
func NewRoutesClient(baseURL string, timeout time.Duration) *RoutesClient {
	if baseURL == "" {
		baseURL = DefaultRoutesURL
	}
	return &RoutesClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ComputeRoutes performs a single POST. It never retries.
func (c *RoutesClient) ComputeRoutes(ctx context.Context, req RouteRequest) ([]byte, error) {
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, &RequestError{Reason: "encode request: " + err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Reason: "build request: " + err.Error()}
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Reason: "read body: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Reason: string(body)}
	}

	return body, nil
}
