package e2e

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualEditFlow(t *testing.T) {
	resp := makeRequest(t, http.MethodPut, "/coordinates", ManualEditRequest{
		Latitude:  "37.77",
		Longitude: "-122.41",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var coordinate CoordinateResponse
	decodeResponse(t, resp, &coordinate)
	assert.Equal(t, "37.77", coordinate.FormattedLatitude)
	assert.Equal(t, "-122.41", coordinate.FormattedLongitude)

	resp = makeRequest(t, http.MethodGet, "/coordinates", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeResponse(t, resp, &coordinate)
	assert.Equal(t, 37.77, coordinate.Latitude)
	assert.Equal(t, -122.41, coordinate.Longitude)
}

func TestManualEditValidation(t *testing.T) {
	resp := makeRequest(t, http.MethodPut, "/coordinates", ManualEditRequest{
		Latitude:  "abc",
		Longitude: "10",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	decodeResponse(t, resp, &errResp)
	assert.Equal(t, "LOCATION_PARSE", errResp.Code)
	assert.Equal(t, "latitude", errResp.Field)

	resp = makeRequest(t, http.MethodPut, "/coordinates", ManualEditRequest{
		Latitude:  "95",
		Longitude: "10",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	decodeResponse(t, resp, &errResp)
	assert.Equal(t, "LOCATION_RANGE", errResp.Code)
}

func TestMockLocation(t *testing.T) {
	resp := makeRequest(t, http.MethodPost, "/coordinates/mock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var coordinate CoordinateResponse
	decodeResponse(t, resp, &coordinate)
	assert.Equal(t, "37.77", coordinate.FormattedLatitude)
	assert.Equal(t, "-122.42", coordinate.FormattedLongitude)
}

func TestRefreshFlow(t *testing.T) {
	resp := makeRequest(t, http.MethodPost, "/coordinates/refresh", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	// The simulated provider resolves asynchronously; wait for a terminal
	// phase rather than asserting the intermediate one.
	status := waitForPhase(t, "loaded", 10*time.Second)
	assert.False(t, status.Loading)
	assert.Empty(t, status.Message)
}

func TestCoordinateStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BaseURL+"/coordinates/stream", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Trigger a commit while the stream is open.
	go func() {
		time.Sleep(500 * time.Millisecond)
		r := makeRequest(t, http.MethodPost, "/coordinates/mock", nil)
		r.Body.Close()
	}()

	scanner := bufio.NewScanner(resp.Body)
	events := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			events++
		}
		// Initial snapshot plus the mock commit.
		if events >= 2 {
			break
		}
	}
	assert.GreaterOrEqual(t, events, 2)
}
