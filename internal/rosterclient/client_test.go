package rosterclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"members-service/internal/model"
	"members-service/internal/rosterclient"
)

type recordedRequest struct {
	Method    string
	Path      string
	Body      map[string]string
	RequestID string
}

func newServer(t *testing.T, status int, body string, seen *recordedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Method = r.Method
		seen.Path = r.URL.EscapedPath()
		seen.RequestID = r.Header.Get(rosterclient.RequestIDHeader)
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &seen.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchRoster(t *testing.T) {
	var seen recordedRequest
	srv := newServer(t, http.StatusOK, `[{"id":"1","name":"Alice"}]`, &seen)

	c, err := rosterclient.New(srv.URL + "/")
	require.NoError(t, err)

	resp, err := c.FetchRoster(context.Background(), "org/1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":"1","name":"Alice"}]`, string(resp.Payload))
	assert.Equal(t, http.MethodGet, seen.Method)
	assert.Equal(t, "/api/v1/orgUsers/org%2F1", seen.Path)
	assert.NotEmpty(t, seen.RequestID)
}

func TestClient_Mutations(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		call       func(c *rosterclient.Client) (rosterclient.Response, error)
		wantMethod string
		wantPath   string
		wantBody   map[string]string
		wantError  string
	}{
		{
			name:   "UpdateName success",
			status: http.StatusOK,
			body:   `{"user":{"id":"1"}}`,
			call: func(c *rosterclient.Client) (rosterclient.Response, error) {
				return c.UpdateName(context.Background(), "1", "Alicia")
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/user/1",
			wantBody:   map[string]string{"name": "Alicia"},
		},
		{
			name:   "UpdateRole conflict with nested message",
			status: http.StatusConflict,
			body:   `{"error":{"code":"LAST_ADMIN","message":"cannot remove last admin"}}`,
			call: func(c *rosterclient.Client) (rosterclient.Response, error) {
				return c.UpdateRole(context.Background(), "1", model.RoleViewer)
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/rbac/role/1",
			wantBody:   map[string]string{"group_name": "VIEWER"},
			wantError:  "cannot remove last admin",
		},
		{
			name:   "DeleteMember failure with flat message",
			status: http.StatusInternalServerError,
			body:   `{"status":"error","error":"boom"}`,
			call: func(c *rosterclient.Client) (rosterclient.Response, error) {
				return c.DeleteMember(context.Background(), "7")
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v1/user/7",
			wantError:  "boom",
		},
		{
			name:   "DeleteMember failure without body",
			status: http.StatusBadGateway,
			body:   ``,
			call: func(c *rosterclient.Client) (rosterclient.Response, error) {
				return c.DeleteMember(context.Background(), "7")
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v1/user/7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen recordedRequest
			srv := newServer(t, tt.status, tt.body, &seen)

			c, err := rosterclient.New(srv.URL)
			require.NoError(t, err)

			resp, err := tt.call(c)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.status == http.StatusOK, resp.OK())
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantMethod, seen.Method)
			assert.Equal(t, tt.wantPath, seen.Path)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, seen.Body)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := rosterclient.New(url)
	require.NoError(t, err)

	_, err = c.DeleteMember(context.Background(), "1")
	assert.Error(t, err)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := rosterclient.New("roster.local/api")
	assert.Error(t, err)
}

func TestClient_ResponseTooLarge(t *testing.T) {
	var seen recordedRequest
	srv := newServer(t, http.StatusOK, `[{"id":"1","name":"Alice"}]`, &seen)

	t.Run("over limit", func(t *testing.T) {
		c, err := rosterclient.New(srv.URL, rosterclient.WithMaxBodySize(16))
		require.NoError(t, err)

		_, err = c.FetchRoster(context.Background(), "org-1")
		assert.ErrorIs(t, err, rosterclient.ErrResponseTooLarge)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		c, err := rosterclient.New(srv.URL, rosterclient.WithMaxBodySize(int64(len(`[{"id":"1","name":"Alice"}]`))))
		require.NoError(t, err)

		resp, err := c.FetchRoster(context.Background(), "org-1")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1","name":"Alice"}]`, string(resp.Payload))
	})
}
