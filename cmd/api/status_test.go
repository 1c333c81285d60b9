package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBanner(t *testing.T) {
	handler := newTestApplication(newStubMovieStore()).routes()

	rec := performRequest(handler, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	body := rec.Body.String()
	assert.Contains(t, body, "status: available")
	assert.Contains(t, body, "environment: test")
	assert.Contains(t, body, "version: 1.0.0")
	assert.Contains(t, body, "hostname: ")
	assert.Contains(t, body, "address: ")
	assert.Contains(t, body, "port: 4000")
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestApplication(newStubMovieStore()).routes()

	rec := performRequest(handler, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_active_requests")
}
