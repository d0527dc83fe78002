package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeRepo is an in-memory Contents API backend for one branch.
type fakeRepo struct {
	mu    sync.Mutex
	files map[string]fakeFile // path -> file
}

type fakeFile struct {
	content []byte
	sha     string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{files: make(map[string]fakeFile)}
}

func (f *fakeRepo) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "token test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		const prefix = "/repos/acme/site-content/contents/"
		path := r.URL.Path[len(prefix):]

		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			file, ok := f.files[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{
				"content":  base64.StdEncoding.EncodeToString(file.content),
				"encoding": "base64",
				"sha":      file.sha,
			})

		case http.MethodPut:
			var req struct {
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			json.NewDecoder(r.Body).Decode(&req)

			existing, exists := f.files[path]
			if exists && req.SHA != existing.sha {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"message":"sha does not match"}`))
				return
			}
			if !exists && req.SHA != "" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				return
			}

			content, err := base64.StdEncoding.DecodeString(req.Content)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			newSHA := "sha-" + path + "-" + string(rune('a'+len(f.files)))
			if exists {
				newSHA = existing.sha + "+"
			}
			f.files[path] = fakeFile{content: content, sha: newSHA}
			json.NewEncoder(w).Encode(map[string]any{
				"content": map[string]string{"sha": newSHA},
			})

		case http.MethodDelete:
			var req struct {
				SHA string `json:"sha"`
			}
			json.NewDecoder(r.Body).Decode(&req)

			existing, exists := f.files[path]
			if !exists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			if req.SHA != existing.sha {
				w.WriteHeader(http.StatusConflict)
				return
			}
			delete(f.files, path)
			w.Write([]byte(`{}`))

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func newTestClient(t *testing.T) (*Client, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	srv := httptest.NewServer(repo.handler(t))
	t.Cleanup(srv.Close)

	client := New("acme", "site-content", "test-token", "main").
		WithEndpoints(srv.URL, "https://raw.example.com")
	return client, repo
}

func TestNewRequiresFullCredentials(t *testing.T) {
	tests := []struct {
		name                string
		owner, repo, token  string
		want                bool
	}{
		{"all set", "o", "r", "t", true},
		{"missing owner", "", "r", "t", false},
		{"missing repo", "o", "", "t", false},
		{"missing token", "o", "r", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.owner, tt.repo, tt.token, "main") != nil
			if got != tt.want {
				t.Errorf("New(...) != nil = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchFile(t *testing.T) {
	client, repo := newTestClient(t)
	repo.files["data/projects.ts"] = fakeFile{content: []byte("export const projects = [];"), sha: "abc123"}

	content, sha, err := client.FetchFile(context.Background(), "data/projects.ts")
	if err != nil {
		t.Fatalf("FetchFile: %v", err)
	}
	if string(content) != "export const projects = [];" {
		t.Errorf("got content %q", content)
	}
	if sha != "abc123" {
		t.Errorf("got sha %q, want abc123", sha)
	}
}

func TestFetchFileNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, _, err := client.FetchFile(context.Background(), "data/missing.ts")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFetchFileUnauthorized(t *testing.T) {
	repo := newFakeRepo()
	srv := httptest.NewServer(repo.handler(t))
	t.Cleanup(srv.Close)

	client := New("acme", "site-content", "wrong-token", "main").
		WithEndpoints(srv.URL, "https://raw.example.com")

	_, _, err := client.FetchFile(context.Background(), "data/projects.ts")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestWriteFileDetectsStaleToken(t *testing.T) {
	client, repo := newTestClient(t)
	repo.files["data/projects.ts"] = fakeFile{content: []byte("v1"), sha: "sha-v1"}

	// Write with the current token succeeds.
	if err := client.WriteFile(context.Background(), "data/projects.ts", []byte("v2"), "sha-v1", "update"); err != nil {
		t.Fatalf("WriteFile with current sha: %v", err)
	}

	// Write with the now-stale token is rejected as a conflict.
	err := client.WriteFile(context.Background(), "data/projects.ts", []byte("v3"), "sha-v1", "update")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}

	// The losing write changed nothing.
	content, _, err := client.FetchFile(context.Background(), "data/projects.ts")
	if err != nil {
		t.Fatalf("FetchFile: %v", err)
	}
	if string(content) != "v2" {
		t.Errorf("document is %q after conflicted write, want v2", content)
	}
}

func TestUploadBinaryCreateThenUpdate(t *testing.T) {
	client, repo := newTestClient(t)

	// Create: no existing blob, no sha in the payload.
	url, sha1, err := client.UploadBinary(context.Background(), "public/images/projects/villa/thumb.jpg", []byte{0xFF, 0xD8}, "add thumb")
	if err != nil {
		t.Fatalf("UploadBinary create: %v", err)
	}
	if url != client.RawURL("public/images/projects/villa/thumb.jpg") {
		t.Errorf("got url %q", url)
	}

	// Update: the probe finds the blob and supplies its sha.
	_, sha2, err := client.UploadBinary(context.Background(), "public/images/projects/villa/thumb.jpg", []byte{0x89, 0x50}, "replace thumb")
	if err != nil {
		t.Fatalf("UploadBinary update: %v", err)
	}
	if sha1 == sha2 {
		t.Errorf("sha unchanged across update")
	}

	got := repo.files["public/images/projects/villa/thumb.jpg"]
	if string(got.content) != string([]byte{0x89, 0x50}) {
		t.Errorf("stored content not updated")
	}
}

func TestDeleteFileIdempotent(t *testing.T) {
	client, repo := newTestClient(t)
	repo.files["public/images/projects/villa/a.jpg"] = fakeFile{content: []byte("x"), sha: "sha-a"}

	if err := client.DeleteFile(context.Background(), "public/images/projects/villa/a.jpg", "remove"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, exists := repo.files["public/images/projects/villa/a.jpg"]; exists {
		t.Fatal("file still present after delete")
	}

	// Deleting again is a no-op success.
	if err := client.DeleteFile(context.Background(), "public/images/projects/villa/a.jpg", "remove"); err != nil {
		t.Fatalf("second DeleteFile: %v", err)
	}
}

func TestRawURL(t *testing.T) {
	client := New("acme", "site-content", "t", "main")
	got := client.RawURL("data/projects.ts")
	want := "https://raw.githubusercontent.com/acme/site-content/main/data/projects.ts"
	if got != want {
		t.Errorf("RawURL = %q, want %q", got, want)
	}
}
