package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HariStrange/drive-Vault/internal/app"
	"github.com/HariStrange/drive-Vault/internal/infrastructure/database"
	testconfig "github.com/HariStrange/drive-Vault/internal/tests/config"
)

// TestServer runs the fully wired service over SQLite and miniredis
type TestServer struct {
	Server    *httptest.Server
	Container *app.Container
	Redis     *miniredis.Miniredis
	Client    *http.Client
}

// NewTestServer starts a server and registers its shutdown with t
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cfg := testconfig.NewTestConfig(t, mr.Addr())

	db, err := gorm.Open(sqlite.Open(cfg.DSN), database.Config("", logger.Silent))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A second pooled connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	container, err := app.NewContainerWith(cfg, db, rdb)
	if err != nil {
		t.Fatalf("failed to wire container: %v", err)
	}

	server := httptest.NewServer(container.Router)
	t.Cleanup(func() {
		server.Close()
		container.Close()
	})

	return &TestServer{
		Server:    server,
		Container: container,
		Redis:     mr,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Response is a decoded JSON reply
type Response struct {
	Status int
	Body   map[string]interface{}
}

// String returns a field of the body, or ""
func (r *Response) String(key string) string {
	s, _ := r.Body[key].(string)
	return s
}

// Object returns a nested object of the body
func (r *Response) Object(key string) map[string]interface{} {
	m, _ := r.Body[key].(map[string]interface{})
	return m
}

// JSON sends body as JSON with an optional bearer token
func (s *TestServer) JSON(t *testing.T, method, path, token string, body interface{}) *Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req, token)
}

// Upload is one file part of a multipart request
type Upload struct {
	Field, Name string
	Content     []byte
}

// Multipart sends a multipart form with an optional bearer token
func (s *TestServer) Multipart(t *testing.T, method, path, token string, fields map[string]string, uploads ...Upload) *Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	for _, u := range uploads {
		part, err := mw.CreateFormFile(u.Field, u.Name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(u.Content)
	}
	mw.Close()

	req, err := http.NewRequest(method, s.Server.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(t, req, token)
}

// Get fetches a raw path and returns status and body
func (s *TestServer) Get(t *testing.T, path string) (int, []byte) {
	t.Helper()
	resp, err := s.Client.Get(s.Server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func (s *TestServer) do(t *testing.T, req *http.Request, token string) *Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	out := &Response{Status: resp.StatusCode}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.Body); err != nil {
			t.Fatalf("decode %s %s response %q: %v", req.Method, req.URL.Path, raw, err)
		}
	}
	return out
}
