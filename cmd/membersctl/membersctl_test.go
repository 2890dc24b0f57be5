package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roster = `[{"id":"1","orgId":"org-1","name":"Alice","email":"a@x.com","role":"ADMIN","createdAt":1700000000}]`

func newRosterServer(t *testing.T, routes map[string]int, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		if key == "GET /api/v1/orgUsers/org-1" {
			_, _ = io.WriteString(w, roster)
			return
		}
		status, ok := routes[key]
		if !ok {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, bodies[key])
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--api-url", srv.URL, "--org", "org-1", "--log-level", "ERROR"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	srv := newRosterServer(t, nil, nil)

	out, err := run(t, srv, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "November 14,2023")
}

func TestList_JSONInRussian(t *testing.T) {
	srv := newRosterServer(t, nil, nil)

	out, err := run(t, srv, "list", "--json", "--lang", "ru-RU")
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Contains(t, out, "Участники")
}

func TestEdit(t *testing.T) {
	tests := []struct {
		name     string
		routes   map[string]int
		bodies   map[string]string
		args     []string
		wantErr  string
		wantText string
	}{
		{
			name:     "success",
			routes:   map[string]int{"PUT /api/v1/user/1": http.StatusOK, "PUT /api/v1/rbac/role/1": http.StatusOK},
			args:     []string{"edit", "1", "--name", "Alicia", "--role", "EDITOR"},
			wantText: "Alicia",
		},
		{
			name:   "rejected by server",
			routes: map[string]int{"PUT /api/v1/user/1": http.StatusOK, "PUT /api/v1/rbac/role/1": http.StatusConflict},
			bodies: map[string]string{
				"PUT /api/v1/rbac/role/1": `{"error":{"code":"LAST_ADMIN","message":"cannot remove last admin"}}`,
			},
			args:    []string{"edit", "1", "--role", "VIEWER"},
			wantErr: "cannot remove last admin",
		},
		{
			name:    "invalid role",
			args:    []string{"edit", "1", "--role", "OWNER"},
			wantErr: "invalid --role",
		},
		{
			name:    "unknown member",
			args:    []string{"edit", "42", "--name", "Bob"},
			wantErr: "member is not in the list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRosterServer(t, tt.routes, tt.bodies)

			out, err := run(t, srv, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantText)
			assert.Contains(t, out, "[success] Success")
		})
	}
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newRosterServer(t, map[string]int{"DELETE /api/v1/user/1": http.StatusOK}, nil)

		out, err := run(t, srv, "delete", "1")
		require.NoError(t, err)
		assert.NotContains(t, out, "Alice")
		assert.Contains(t, out, "[success] Success")
	})

	t.Run("server error keeps row", func(t *testing.T) {
		srv := newRosterServer(t,
			map[string]int{"DELETE /api/v1/user/1": http.StatusInternalServerError},
			map[string]string{"DELETE /api/v1/user/1": `{"error":"cannot remove last admin"}`},
		)

		out, err := run(t, srv, "delete", "1")
		require.Error(t, err)
		assert.Equal(t, "cannot remove last admin", err.Error())
		assert.Contains(t, out, "Alice")
	})
}

func TestList_LoadFailureShowsEmptyPage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not a list", status: http.StatusOK, body: `{"not":"a list"}`},
		{name: "server error", status: http.StatusBadGateway, body: `{"error":"upstream down"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			out, err := run(t, srv, "list")
			require.NoError(t, err)
			assert.Contains(t, out, "No members yet")
			assert.NotContains(t, out, "[error]")

			_, err = run(t, srv, "delete", "1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "member is not in the list")
		})
	}
}
