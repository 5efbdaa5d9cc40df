package uploader

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGitHub struct {
	existingSHA string
	puts        []GitHubUploadRequest
	putStatus   int
}

func (f *fakeGitHub) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/someone/puzzles/contents/data/puzzlebank.txt", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		switch r.Method {
		case http.MethodGet:
			if f.existingSHA == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"sha": f.existingSHA})
		case http.MethodPut:
			var req GitHubUploadRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.puts = append(f.puts, req)
			if f.putStatus != 0 {
				w.WriteHeader(f.putStatus)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
}

func writeBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzlebank.txt")
	require.NoError(t, os.WriteFile(path, []byte("20-10-25\t1,a\n"), 0o644))
	return path
}

func TestUploadToGitHub_Create(t *testing.T) {
	fake := &fakeGitHub{}
	ts := httptest.NewServer(fake.handler(t))
	defer ts.Close()

	u := New(ts.URL+"/", "tok")
	err := u.UploadToGitHub(context.Background(), "someone/puzzles", "data/puzzlebank.txt", writeBank(t), "Update puzzlebank.txt")
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	assert.Empty(t, fake.puts[0].SHA)
	assert.Equal(t, "Update puzzlebank.txt", fake.puts[0].Message)
	content, err := base64.StdEncoding.DecodeString(fake.puts[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "20-10-25\t1,a\n", string(content))
}

func TestUploadToGitHub_Replace(t *testing.T) {
	fake := &fakeGitHub{existingSHA: "abc123"}
	ts := httptest.NewServer(fake.handler(t))
	defer ts.Close()

	err := New(ts.URL, "tok").UploadToGitHub(context.Background(), "someone/puzzles", "data/puzzlebank.txt", writeBank(t), "msg")
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "abc123", fake.puts[0].SHA)
}

func TestUploadToGitHub_ErrorStatus(t *testing.T) {
	fake := &fakeGitHub{putStatus: http.StatusUnprocessableEntity}
	ts := httptest.NewServer(fake.handler(t))
	defer ts.Close()

	err := New(ts.URL, "tok").UploadToGitHub(context.Background(), "someone/puzzles", "data/puzzlebank.txt", writeBank(t), "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "nope")
}

func TestUploadToGitHub_MissingFile(t *testing.T) {
	err := New("http://127.0.0.1:0", "tok").UploadToGitHub(context.Background(), "r", "p", filepath.Join(t.TempDir(), "none"), "msg")
	assert.Error(t, err)
}
