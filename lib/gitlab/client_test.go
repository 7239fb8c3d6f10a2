package gitlab

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{BaseURL: server.URL, Token: "secret"})
	require.NoError(t, err)

	return client
}

func TestGetProject(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/projects/group%2Fapp", r.URL.EscapedPath())
		assert.Equal(t, "secret", r.Header.Get("PRIVATE-TOKEN"))

		_, _ = w.Write([]byte(`{
			"id": 42,
			"name": "app",
			"path": "app",
			"path_with_namespace": "group/app",
			"description": "the app",
			"topics": ["go"],
			"namespace": {"full_path": "group"}
		}`))
	})

	proj, err := client.GetProject(context.Background(), "group/app")
	require.NoError(t, err)

	assert.Equal(t, 42, proj.ID)
	assert.Equal(t, "app", proj.Name)
	assert.Equal(t, "group", proj.Namespace.FullPath)
	assert.Equal(t, []string{"go"}, proj.Topics)
}

func TestGetCommit(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/projects/42/repository/commits/abc123", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"id": "abc123",
			"title": "fix",
			"author_name": "ana",
			"created_at": "2024-05-10T12:00:00Z",
			"parent_ids": ["def456"]
		}`))
	})

	commit, err := client.GetCommit(context.Background(), 42, "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", commit.ID)
	assert.Equal(t, []string{"def456"}, commit.ParentIDs)
	assert.Equal(t, 2024, commit.CreatedAt.Year())
}

func TestGetFileContentBase64(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/projects/42/repository/files/lib%2Fa.go", r.URL.EscapedPath())
		assert.Equal(t, "abc123", r.URL.Query().Get("ref"))

		content := base64.StdEncoding.EncodeToString([]byte("package a\n"))
		_, _ = w.Write([]byte(`{
			"file_path": "lib/a.go",
			"encoding": "base64",
			"content": "` + content + `"
		}`))
	})

	content, err := client.GetFileContent(context.Background(), 42, "lib/a.go", "abc123")
	require.NoError(t, err)

	assert.Equal(t, "package a\n", content)
}

func TestGetFileNotFound(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetFile(context.Background(), 42, "gone.go", "abc123")

	assert.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetCommitServerError(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := client.GetCommit(context.Background(), 42, "abc123")

	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "500")
}

func TestGetCommitDiffs(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/projects/42/repository/commits/abc123/diff", r.URL.Path)

		_, _ = w.Write([]byte(`[
			{"old_path": "a.go", "new_path": "a.go"},
			{"old_path": "b.go", "new_path": "b.go", "deleted_file": true},
			{"old_path": "c.go", "new_path": "d.go", "renamed_file": true}
		]`))
	})

	diffs, err := client.GetCommitDiffs(context.Background(), 42, "abc123")
	require.NoError(t, err)

	assert.Len(t, diffs, 3)
	assert.True(t, diffs[1].DeletedFile)
	assert.True(t, diffs[2].RenamedFile)
	assert.Equal(t, "d.go", diffs[2].NewPath)
}
