package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	const body = "w,5,100,2024,3,10,14,1,Sunny,Spring Round,7,1.5,60\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, Timeout: 5 * time.Second})
	got, err := c.Dump(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestDumpNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, Timeout: 5 * time.Second})
	_, err := c.Dump(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestDumpNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := New(Config{URL: srv.URL, Timeout: time.Second})
	_, err := c.Dump(context.Background())
	assert.Error(t, err)
}

func TestDumpContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{URL: srv.URL, Timeout: 5 * time.Second})
	_, err := c.Dump(ctx)
	assert.Error(t, err)
}
