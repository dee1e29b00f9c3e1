package crawler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/UnitVectorY-Labs/languagerankings/internal/models"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = "Go:\n  type: programming\n  color: \"#00ADD8\"\n"

// fakeGitHub serves the endpoints used by the crawler and records every
// request it receives.
type fakeGitHub struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request

	failPath string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGitHub) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(context.Background()))
	failPath := f.failPath
	f.mu.Unlock()

	if r.URL.Path == failPath {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message": "boom"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/users/octocat/repos":
		fmt.Fprintf(w, `[
			{"name": "hello", "languages_url": "%[1]s/repos/octocat/hello/languages"},
			{"name": "empty"},
			{"name": "world", "languages_url": "%[1]s/repos/octocat/world/languages"}
		]`, f.URL)
	case "/repos/octocat/hello/languages":
		io.WriteString(w, `{"Go": 100, "Shell": 5}`)
	case "/repos/octocat/world/languages":
		io.WriteString(w, `{"Python": 40, "Go": 50}`)
	case "/repos/github-linguist/linguist/contents/lib/linguist/languages.yml":
		json.NewEncoder(w).Encode(map[string]string{
			"type":     "file",
			"encoding": "base64",
			"path":     "lib/linguist/languages.yml",
			"content":  base64.StdEncoding.EncodeToString([]byte(testYAML)),
		})
	case "/users/octocat":
		io.WriteString(w, `{"login": "octocat", "name": "The Octocat"}`)
	case "/users/nameless":
		io.WriteString(w, `{"login": "nameless", "name": null}`)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeGitHub) failOn(path string) {
	f.mu.Lock()
	f.failPath = path
	f.mu.Unlock()
}

func (f *fakeGitHub) received() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func (f *fakeGitHub) paths() []string {
	var out []string
	for _, r := range f.received() {
		out = append(out, r.URL.Path)
	}
	return out
}

func testOptions(f *fakeGitHub, token string) Options {
	return Options{
		User:          "octocat",
		Token:         token,
		BaseURL:       f.URL,
		LinguistOwner: "github-linguist",
		LinguistRepo:  "linguist",
		LinguistPath:  "lib/linguist/languages.yml",
	}
}

func testCrawler(t *testing.T, f *fakeGitHub) *Crawler {
	t.Helper()
	client, err := NewClient(context.Background(), "", f.URL)
	require.NoError(t, err)
	return New(client, log.New(io.Discard))
}

func TestRun(t *testing.T) {
	f := newFakeGitHub(t)

	result, err := Run(context.Background(), testOptions(f, ""), log.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, "octocat", result.User)
	assert.Equal(t, testYAML, result.LinguistYAML)
	assert.Equal(t, &models.Profile{Login: "octocat", Name: "The Octocat"}, result.Profile)
	assert.Equal(t, []models.LanguageCount{
		{Language: "Go", Bytes: 150},
		{Language: "Shell", Bytes: 5},
		{Language: "Python", Bytes: 40},
	}, result.Aggregate.Entries())

	assert.Equal(t, []string{
		"/repos/github-linguist/linguist/contents/lib/linguist/languages.yml",
		"/users/octocat",
		"/users/octocat/repos",
		"/repos/octocat/hello/languages",
		"/repos/octocat/world/languages",
	}, f.paths())
}

func TestRun_AbortsOnHTTPError(t *testing.T) {
	tests := []string{
		"/repos/github-linguist/linguist/contents/lib/linguist/languages.yml",
		"/users/octocat",
		"/users/octocat/repos",
		"/repos/octocat/world/languages",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			f := newFakeGitHub(t)
			f.failOn(path)

			result, err := Run(context.Background(), testOptions(f, ""), log.New(io.Discard))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), "500")
		})
	}
}

func TestRun_Headers(t *testing.T) {
	t.Run("with token", func(t *testing.T) {
		f := newFakeGitHub(t)
		_, err := Run(context.Background(), testOptions(f, "secret"), log.New(io.Discard))
		require.NoError(t, err)

		for _, r := range f.received() {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"), r.URL.Path)
			assert.Contains(t, r.Header.Get("Accept"), "application/vnd.github")
		}
	})

	t.Run("without token", func(t *testing.T) {
		f := newFakeGitHub(t)
		_, err := Run(context.Background(), testOptions(f, ""), log.New(io.Discard))
		require.NoError(t, err)

		for _, r := range f.received() {
			assert.Empty(t, r.Header.Get("Authorization"), r.URL.Path)
			assert.Contains(t, r.Header.Get("Accept"), "application/vnd.github")
		}
	})
}

func TestLanguageAggregate_NoRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), "", server.URL)
	require.NoError(t, err)

	agg, err := New(client, log.New(io.Discard)).LanguageAggregate(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, agg.Len())
}

func TestProfile_NoName(t *testing.T) {
	f := newFakeGitHub(t)

	profile, err := testCrawler(t, f).Profile(context.Background(), "nameless")
	require.NoError(t, err)
	assert.Equal(t, "nameless", profile.Login)
	assert.Empty(t, profile.Name)
	assert.Equal(t, "nameless", profile.DisplayName("nameless"))
}

func TestProfile_NotFound(t *testing.T) {
	f := newFakeGitHub(t)

	_, err := testCrawler(t, f).Profile(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestNewClient_BaseURL(t *testing.T) {
	client, err := NewClient(context.Background(), "", "http://example.test/api")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api/", client.BaseURL.String())

	client, err = NewClient(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", client.BaseURL.String())

	_, err = NewClient(context.Background(), "", "http://bad host/")
	assert.Error(t, err)
}
