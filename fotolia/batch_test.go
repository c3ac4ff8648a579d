package fotolia

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadComps(t *testing.T) {
	var srv *apiServer
	srv = newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMediaComp"):
			id := r.URL.Query().Get("id")
			if id == "2" {
				writeJSON(w, http.StatusOK, map[string]any{"error": "media not found", "code": 2001})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"url":    srv.URL + "/comp/" + id + ".png",
				"width":  400,
				"height": 300,
			})
		case strings.HasPrefix(r.URL.Path, "/comp/"):
			imageHandler(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	c := newTestClient(t, srv)
	dir := t.TempDir()

	result := c.DownloadComps(context.Background(), []int64{3, 1, 2}, dir, 2)

	assert.Equal(t, 3, result.Requested)
	require.Len(t, result.Saved, 2)
	assert.Equal(t, int64(1), result.Saved[0].MediaID)
	assert.Equal(t, int64(3), result.Saved[1].MediaID)
	assert.Equal(t, filepath.Join(dir, "1.png"), result.Saved[0].Path)

	data, err := os.ReadFile(result.Saved[1].Path)
	require.NoError(t, err)
	assert.Equal(t, imageBytes, data)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, int64(2), result.Failed[0].MediaID)
	assert.ErrorIs(t, result.Failed[0], ErrAPI)
	assert.Contains(t, result.Failed[0].Error(), "media 2")

	// Comps never need a session.
	for _, req := range srv.Requests() {
		assert.Empty(t, req.Pass)
	}
}

func TestDownloadCompsEmpty(t *testing.T) {
	srv := newAPIServer(t, okHandler)
	c := newTestClient(t, srv)

	result := c.DownloadComps(context.Background(), nil, t.TempDir(), 0)
	assert.Zero(t, result.Requested)
	assert.Empty(t, srv.Requests())
}

func TestCompExtension(t *testing.T) {
	tests := map[string]string{
		"https://static.fotolia.com/jpg/00/01/comp_1.jpg": ".jpg",
		"https://static.fotolia.com/comp/1.png?sig=abc":  ".png",
		"https://static.fotolia.com/comp/1":              ".jpg",
		"https://static.fotolia.com/comp/1.notanext":     ".jpg",
		"%zz": ".jpg",
	}
	for in, want := range tests {
		assert.Equal(t, want, compExtension(in), in)
	}
}
