package maps

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRoutes_PostsBodyAndHeaders(t *testing.T) {
	var gotBody ComputeRoutesRequest
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotHeader = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes":[{"duration":"734s","distanceMeters":1200}]}`))
	}))
	defer server.Close()

	client := NewRoutesClient(server.URL, 0)
	header := http.Header{}
	header.Set(HeaderAPIKey, "key-123")
	header.Set(HeaderFieldMask, FieldDuration+","+FieldDistanceMeters)

	body, err := client.ComputeRoutes(context.Background(), RouteRequest{
		Body: ComputeRoutesRequest{
			Origin:      Waypoint{PlaceID: "place_O"},
			Destination: Waypoint{PlaceID: "place_D"},
			TravelMode:  TravelModeDrive,
		},
		Header: header,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"routes":[{"duration":"734s","distanceMeters":1200}]}`, string(body))

	assert.Equal(t, "key-123", gotHeader.Get(HeaderAPIKey))
	assert.Equal(t, "routes.duration,routes.distanceMeters", gotHeader.Get(HeaderFieldMask))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "place_O", gotBody.Origin.PlaceID)
	assert.Equal(t, "place_D", gotBody.Destination.PlaceID)
}

func TestComputeRoutes_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	client := NewRoutesClient(server.URL, 0)
	_, err := client.ComputeRoutes(context.Background(), RouteRequest{})
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
	assert.Contains(t, reqErr.Reason, "API key not valid")
}

func TestComputeRoutes_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewRoutesClient(url, 0)
	_, err := client.ComputeRoutes(context.Background(), RouteRequest{})
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Zero(t, reqErr.StatusCode)
}

func TestNewRoutesClient_DefaultURL(t *testing.T) {
	client := NewRoutesClient("", 0)
	assert.Equal(t, DefaultRoutesURL, client.baseURL)
}
