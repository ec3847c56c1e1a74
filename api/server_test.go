package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "s3cret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "portfolio.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	router := newRouter(db, withConfig(map[string]string{
		"BACKEND_PASSWORD": testPassword,
		"ACCEPTED_ORIGINS": "https://example.com",
	}))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// do sends body as JSON. An empty token sends no Authorization header.
func do(t *testing.T, server *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, server, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decode[HealthResponse](t, resp)
	assert.Equal(t, "ok", health.Status)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)
	project := map[string]any{"title": "Site", "category": "web"}

	tests := []struct {
		name  string
		token string
		field string
	}{
		{name: "missing", token: "", field: "authorization"},
		{name: "wrong", token: "nope", field: "authorization"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, server, http.MethodPost, "/project", tt.token, project)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.field, decode[ErrorResponse](t, resp).Field)
		})
	}

	resp := do(t, server, http.MethodGet, "/messages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProjectLifecycle(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, server, http.MethodPost, "/project", testPassword, map[string]any{
		"title":        "Chat app",
		"description":  "Realtime chat",
		"category":     "web",
		"technologies": []string{"go", "react"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Project](t, resp)
	require.NotEmpty(t, created.ID)

	resp = do(t, server, http.MethodGet, "/projects?search=chat", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[models.Page[models.Project]](t, resp)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	// An empty patch returns the stored project unchanged
	resp = do(t, server, http.MethodPut, "/project/"+created.ID, testPassword, map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unchanged := decode[models.Project](t, resp)
	assert.Equal(t, created.Title, unchanged.Title)
	assert.True(t, created.UpdatedAt.Equal(unchanged.UpdatedAt))

	resp = do(t, server, http.MethodPut, "/project/"+created.ID, testPassword, map[string]any{"featured": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[models.Project](t, resp).Featured)

	resp = do(t, server, http.MethodDelete, "/project/"+created.ID, testPassword, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, server, http.MethodGet, "/project/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, server, http.MethodDelete, "/project/"+created.ID, testPassword, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBadRequests(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
	}{
		{name: "invalid id", method: http.MethodGet, path: "/project/not-a-uuid", status: http.StatusBadRequest},
		{name: "invalid page", method: http.MethodGet, path: "/projects?page=x", status: http.StatusBadRequest},
		{name: "invalid flag", method: http.MethodGet, path: "/projects?featured=maybe", status: http.StatusBadRequest},
		{name: "empty body", method: http.MethodPost, path: "/message", status: http.StatusBadRequest},
		{name: "invalid category", method: http.MethodPost, path: "/project", token: testPassword,
			body: map[string]any{"title": "x", "category": "games"}, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, server, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestDraftsHiddenFromVisitors(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, server, http.MethodPost, "/blog-post", testPassword, map[string]any{
		"title":   "Draft Notes",
		"content": "not ready",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	draft := decode[models.BlogPost](t, resp)
	assert.Equal(t, "draft-notes", draft.Slug)

	resp = do(t, server, http.MethodGet, "/blog-post/"+draft.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, server, http.MethodGet, "/blog-post/slug/draft-notes", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, server, http.MethodGet, "/blog-posts?published=false", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[models.Page[models.BlogPost]](t, resp).Items)

	resp = do(t, server, http.MethodGet, "/blog-post/"+draft.ID, testPassword, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, server, http.MethodGet, "/blog-posts?published=false", testPassword, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[models.Page[models.BlogPost]](t, resp).Items, 1)
}

func TestCommentsAndReactions(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, server, http.MethodPost, "/blog-post", testPassword, map[string]any{
		"title":     "Hello World",
		"content":   "first post",
		"published": true,
		"tags":      []string{"go"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decode[models.BlogPost](t, resp)

	resp = do(t, server, http.MethodPost, "/blog-post/"+post.ID+"/reactions", "", map[string]any{"type": "like"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[models.BlogPost](t, resp).LikesCount)

	resp = do(t, server, http.MethodPost, "/blog-post/"+post.ID+"/reactions", "", map[string]any{"type": "love"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, server, http.MethodPost, "/blog-post/"+post.ID+"/comments", "", map[string]any{"content": "nice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	root := decode[models.Comment](t, resp)

	resp = do(t, server, http.MethodPost, "/blog-post/"+post.ID+"/comments", "", map[string]any{
		"content":  "agreed",
		"parentId": root.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, server, http.MethodPost, "/comment/"+root.ID+"/reactions", "", map[string]any{"type": "dislike"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[models.Comment](t, resp).DislikesCount)

	resp = do(t, server, http.MethodGet, "/blog-post/"+post.ID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tree := decode[[]models.CommentNode](t, resp)
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "agreed", tree[0].Children[0].Content)

	resp = do(t, server, http.MethodGet, "/blog-posts/tags", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"go"}, decode[[]string](t, resp))
}

func TestContactMessages(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, server, http.MethodPost, "/message", "", map[string]any{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Hi there",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	msg := decode[models.Message](t, resp)
	assert.False(t, msg.Read)

	resp = do(t, server, http.MethodGet, "/messages/unread-count", testPassword, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[unreadCountResponse](t, resp).Unread)

	resp = do(t, server, http.MethodPut, "/message/"+msg.ID, testPassword, map[string]any{"read": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[models.Message](t, resp).Read)

	resp = do(t, server, http.MethodGet, "/messages?read=false", testPassword, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[models.Page[models.Message]](t, resp).Items)
}

func TestProfileAndSettings(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, server, http.MethodGet, "/settings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decode[models.SiteSettings](t, resp)
	assert.True(t, settings.ShowBlog)

	resp = do(t, server, http.MethodPut, "/profile", testPassword, map[string]any{
		"name":        "Ada Lovelace",
		"socialLinks": map[string]string{"github": "https://github.com/ada"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, server, http.MethodGet, "/profile", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[models.ProfileInfo](t, resp)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "https://github.com/ada", profile.SocialLinks["github"])

	resp = do(t, server, http.MethodPut, "/profile", testPassword, map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada Lovelace", decode[models.ProfileInfo](t, resp).Name)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err = http.NewRequest(http.MethodOptions, server.URL+"/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp2, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "https://example.com", resp2.Header.Get("Access-Control-Allow-Origin"))
}
