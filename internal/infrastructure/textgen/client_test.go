package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "describe", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Shiny sword. "}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "test-model", time.Second)
	text, err := c.Generate(context.Background(), "describe")
	require.NoError(t, err)
	assert.Equal(t, "Shiny sword.", text)
}

func TestGenerateFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", "m", time.Second).Generate(context.Background(), "x")
	assert.Error(t, err)

	_, err = NewClient("", "", "m", time.Second).Generate(context.Background(), "x")
	assert.Error(t, err)

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer empty.Close()

	_, err = NewClient(empty.URL, "", "m", time.Second).Generate(context.Background(), "x")
	assert.Error(t, err)
}
