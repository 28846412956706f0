package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestGetJSON(t *testing.T) {
	t.Run("success decodes body and sends query", func(t *testing.T) {
		var gotMethod, gotQuery, gotAccept string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotQuery = r.URL.RawQuery
			gotAccept = r.Header.Get("Accept")
			_, _ = w.Write([]byte(`{"name":"ok"}`))
		}))
		defer ts.Close()

		var p payload
		err := GetJSON(context.Background(), ts.Client(), ts.URL+"/users", url.Values{"limit": {"12"}}, &p)
		require.NoError(t, err)

		assert.Equal(t, http.MethodGet, gotMethod)
		assert.Equal(t, "limit=12", gotQuery)
		assert.Equal(t, "application/json", gotAccept)
		assert.Equal(t, "ok", p.Name)
	})

	t.Run("non-2xx -> StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("maintenance"))
		}))
		defer ts.Close()

		err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, &payload{})
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusServiceUnavailable, se.Code)
		assert.Contains(t, err.Error(), "503")
		assert.Contains(t, err.Error(), "maintenance")
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name":`))
		}))
		defer ts.Close()

		err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, &payload{})
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "decode response"))
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := GetJSON(context.Background(), http.DefaultClient, ts.URL, nil, &payload{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "perform request")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := GetJSON(ctx, ts.Client(), ts.URL, nil, &payload{})
		require.ErrorIs(t, err, context.Canceled)
	})
}
