package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/fotoctl/fotolia"
)

func TestParseKeyValues(t *testing.T) {
	params, err := parseKeyValues([]string{"words=red car", "ids=1", "ids=2", "ids=3", "empty="})
	require.NoError(t, err)

	want := fotolia.Params{
		{Key: "words", Value: "red car"},
		{Key: "ids", Value: []string{"1", "2", "3"}},
		{Key: "empty", Value: ""},
	}
	assert.Equal(t, want, params)
	assert.Equal(t, "words=red+car&ids%5B0%5D=1&ids%5B1%5D=2&ids%5B2%5D=3&empty=", params.Encode())

	for _, bad := range []string{"novalue", "=x", " =x"} {
		_, err := parseKeyValues([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"12", " 7 "})
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 7}, ids)

	for _, bad := range []string{"abc", "0", "-3", ""} {
		_, err := parseIDs([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestStdoutSink(t *testing.T) {
	var buf bytes.Buffer

	_, err := stdoutSink(&buf, true, false)
	assert.ErrorIs(t, err, errTerminalOutput)

	w, err := stdoutSink(&buf, true, true)
	require.NoError(t, err)
	assert.Equal(t, &buf, w)

	w, err = stdoutSink(&buf, false, false)
	require.NoError(t, err)
	assert.Equal(t, &buf, w)
}

func TestFprintSuccess(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	fprintSuccess(&buf, "Saved %s", "a.jpg")
	assert.Equal(t, "✓ Saved a.jpg\n", buf.String())
}

func TestFileNameFor(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://static.fotolia.com/download/123/image_XL.jpg?token=abc", "image_XL.jpg"},
		{"https://static.fotolia.com/download/123", "fallback.jpg"},
		{"https://static.fotolia.com/", "fallback.jpg"},
		{"%zz", "fallback.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fileNameFor(tt.url, "fallback.jpg"), tt.url)
	}
}

func TestSetVersion(t *testing.T) {
	t.Cleanup(func() { SetVersion("dev", "unknown") })

	SetVersion("v1.4.0", "2024-05-01")
	assert.Equal(t, "1.4.0", appVersion)
	assert.Equal(t, "fotoctl/1.4.0", userAgent())
	require.NotNil(t, semVersion)
	assert.Empty(t, semVersion.Pre)

	SetVersion("1.5.0-rc.1", "")
	require.NotNil(t, semVersion)
	assert.NotEmpty(t, semVersion.Pre)

	SetVersion("dev", "unknown")
	assert.Nil(t, semVersion)
	assert.Equal(t, "fotoctl/dev", userAgent())
}

func TestFormatRow(t *testing.T) {
	row := map[string]any{
		"id":           json.Number("42"),
		"title":        "Red car",
		"creator_name": "jdoe",
		"nb_views":     json.Number("10"),
		"nb_downloads": json.Number("2"),
	}
	out := formatRow(row)
	assert.Contains(t, out, "42  Red car by jdoe")
	assert.Contains(t, out, "Views: 10  Downloads: 2")
	assert.NotContains(t, out, "Thumbnail")
}

// fakeFotolia serves the handful of methods the command tests use.
type fakeFotolia struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
	auth  map[string]string
}

func newFakeFotolia(t *testing.T) *fakeFotolia {
	t.Helper()

	f := &fakeFotolia{auth: make(map[string]string)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pass, _ := r.BasicAuth()
		f.mu.Lock()
		f.paths = append(f.paths, r.URL.Path+"?"+r.URL.RawQuery)
		f.auth[r.URL.Path] = pass
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/Rest/1/main/test":
			_, _ = w.Write([]byte(`{"test":"Success"}`))
		case "/Rest/1/user/loginUser":
			_, _ = w.Write([]byte(`{"session_token":"SESSION"}`))
		case "/Rest/1/user/getUserData":
			_, _ = w.Write([]byte(`{"id":9,"firstname":"Jo","nb_credits":12}`))
		case "/Rest/1/search/getTags":
			_, _ = w.Write([]byte(`[{"name":"sky","popularity":10}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeFotolia) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func (f *fakeFotolia) Credential(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth[path]
}

func writeConfig(t *testing.T, baseURL string, login bool) string {
	t.Helper()

	content := "fotolia:\n  api_key: TESTKEY\n  base_url: " + baseURL + "/Rest\n"
	if login {
		content += "  login: jo\n  password: secret\n"
	}
	content += "logging:\n  level: error\n"

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, langFlag, noLogin = "", "", false
		rootCmd.SetArgs(nil)
	})
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestTestCommandLogsIn(t *testing.T) {
	api := newFakeFotolia(t)
	path := writeConfig(t, api.URL, true)

	require.NoError(t, execute(t, "--config", path, "test"))

	assert.Equal(t, []string{
		"/Rest/1/user/loginUser?",
		"/Rest/1/main/test?",
		"/Rest/1/user/getUserData?",
	}, api.Paths())
	assert.Equal(t, "", api.Credential("/Rest/1/user/loginUser"))
	assert.Equal(t, "SESSION", api.Credential("/Rest/1/user/getUserData"))
	assert.True(t, client.Authenticated())
}

func TestCallCommandStaysAnonymous(t *testing.T) {
	api := newFakeFotolia(t)
	path := writeConfig(t, api.URL, true)

	require.NoError(t, execute(t, "--config", path, "--no-login", "call", "getTags", "language_id=2", "type=New"))

	assert.Equal(t, []string{"/Rest/1/search/getTags?language_id=2&type=New"}, api.Paths())
	assert.False(t, client.Authenticated())
}

func TestCallCommandUnknownMethod(t *testing.T) {
	api := newFakeFotolia(t)
	path := writeConfig(t, api.URL, false)

	err := execute(t, "--config", path, "call", "noSuchMethod")
	assert.ErrorIs(t, err, fotolia.ErrUnknownMethod)
	assert.Empty(t, api.Paths())
}

func TestUnknownLanguageFlag(t *testing.T) {
	api := newFakeFotolia(t)
	path := writeConfig(t, api.URL, false)

	err := execute(t, "--config", path, "--lang", "xx_XX", "tags")
	assert.ErrorContains(t, err, "unknown language")
	assert.Empty(t, api.Paths())
}
