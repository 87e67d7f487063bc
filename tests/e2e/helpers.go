package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	BaseURL = "http://localhost:8081/api"
)

// Test data structures matching API responses

type CoordinateResponse struct {
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	FormattedLatitude  string  `json:"formatted_latitude"`
	FormattedLongitude string  `json:"formatted_longitude"`
}

type StatusResponse struct {
	Coordinate    CoordinateResponse `json:"coordinate"`
	Loading       bool               `json:"loading"`
	Authorization string             `json:"authorization"`
	Phase         string             `json:"phase"`
	Message       string             `json:"message,omitempty"`
}

type ManualEditRequest struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// HTTP Client helpers

func makeRequest(t *testing.T, method, endpoint string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, BaseURL+endpoint, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// WaitForService polls the health endpoint until the service responds or the
// attempts run out.
func WaitForService(t *testing.T, url string, maxAttempts int) {
	client := &http.Client{Timeout: 2 * time.Second}

	for i := 0; i < maxAttempts; i++ {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(time.Second)
	}

	fmt.Printf("Service at %s did not become ready after %d attempts\n", url, maxAttempts)
}

// waitForPhase polls the status endpoint until the manager reaches the given
// phase, for flows that resolve asynchronously through the provider.
func waitForPhase(t *testing.T, phase string, timeout time.Duration) StatusResponse {
	t.Helper()
	deadline := time.Now().Add(timeout)

	var status StatusResponse
	for time.Now().Before(deadline) {
		resp := makeRequest(t, http.MethodGet, "/coordinates/status", nil)
		decodeResponse(t, resp, &status)
		if status.Phase == phase {
			return status
		}
		time.Sleep(200 * time.Millisecond)
	}

	t.Fatalf("manager did not reach phase %q, last status: %+v", phase, status)
	return status
}
