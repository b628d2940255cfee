package messaging

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

func testClient(srv *httptest.Server) *Client {
	return &Client{
		baseURL: srv.URL,
		apiKey:  "api-key",
		httpc:   &http.Client{Timeout: time.Second},
	}
}

func TestCreateIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "api-key", r.Header.Get("apiKey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user-1", body["uid"])
		assert.Equal(t, "A B", body["name"])
		assert.Equal(t, "https://blob.test/avatars/x.png", body["avatar"])

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"uid":"user-1"}}`))
	}))
	defer srv.Close()

	err := testClient(srv).CreateIdentity(context.Background(), "user-1", "A B", "https://blob.test/avatars/x.png")
	require.NoError(t, err)
}

func TestCreateIdentityAlreadyExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"ERR_UID_ALREADY_EXISTS"}}`))
	}))
	defer srv.Close()

	// The mirror is create-once; an existing identity is fine.
	err := testClient(srv).CreateIdentity(context.Background(), "user-1", "A B", "")
	require.NoError(t, err)
}

func TestCreateIdentityOmitsEmptyAvatar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasAvatar := body["avatar"]
		assert.False(t, hasAvatar)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv).CreateIdentity(context.Background(), "user-1", "A B", ""))
}

func TestAuthToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/user-1/auth_tokens", r.URL.Path)
		w.Write([]byte(`{"data":{"uid":"user-1","authToken":"chat-tok-1"}}`))
	}))
	defer srv.Close()

	token, err := testClient(srv).AuthToken(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-tok-1", token)
}

func TestOpenSessionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"ERR_UID_NOT_FOUND"}}`))
	}))
	defer srv.Close()

	err := testClient(srv).OpenSession(context.Background(), "ghost")
	require.Error(t, err)
}

func TestCloseSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/user-1/auth_tokens", r.URL.Path)
		w.Write([]byte(`{"data":{"success":true}}`))
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv).CloseSession(context.Background(), "user-1"))
}
