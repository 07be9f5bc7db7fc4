package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_Success(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewClient(srv.Client()).PostJSON(context.Background(), srv.URL, map[string]string{"first_name": "Jane"})

	require.NoError(t, err)
	assert.Equal(t, "Jane", got["first_name"])
}

func TestPostJSON_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "form disabled", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := NewClient(nil).PostJSON(context.Background(), srv.URL, map[string]string{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, "form disabled", statusErr.Body)
	assert.Equal(t, "endpoint responded with status 422: form disabled", err.Error())
}

func TestPostJSON_BoundsErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", maxErrorBodyBytes*2)))
	}))
	defer srv.Close()

	err := NewClient(nil).PostJSON(context.Background(), srv.URL, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Len(t, statusErr.Body, maxErrorBodyBytes)
}

func TestPostJSON_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	err := NewClient(nil).PostJSON(context.Background(), endpoint+"/services/T0AB/B0CD/xoxToken", map[string]string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error posting to webhook")
	assert.NotContains(t, err.Error(), "/services/T0AB/B0CD/xoxToken")
	assert.NotContains(t, err.Error(), "Post ")
}

func TestPostJSON_InvalidEndpoint(t *testing.T) {
	err := NewClient(nil).PostJSON(context.Background(), "://bad/f/formid", map[string]string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating request")
	assert.NotContains(t, err.Error(), "formid")
}
