package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authpkg "github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/sessions"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "correct horse battery staple"
)

// fakeAttachments records calls and can be told to fail, standing in
// for the remote attachment service.
type fakeAttachments struct {
	mu           sync.Mutex
	failUpload   bool
	failFilename string // fail uploads of just this file
	failDelete   bool
	uploads      []string
	deleted      []string
}

func (f *fakeAttachments) Upload(ctx context.Context, filename string, r io.Reader, size int64) (services.Attachment, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return services.Attachment{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload || (f.failFilename != "" && filename == f.failFilename) {
		return services.Attachment{}, errors.New("attachment service down")
	}
	f.uploads = append(f.uploads, filename)
	remoteID := fmt.Sprintf("remote-%d", len(f.uploads))
	return services.Attachment{
		URL:      "https://cdn.example.com/" + remoteID,
		RemoteID: remoteID,
		Kind:     models.MediaKindImage,
	}, nil
}

func (f *fakeAttachments) Delete(ctx context.Context, remoteID, kind string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, remoteID)
	if f.failDelete {
		return errors.New("attachment service down")
	}
	return nil
}

type testEnv struct {
	router       *chi.Mux
	db           database.Database
	sessionStore sessions.Store
	attachments  *fakeAttachments
}

// newTestEnv builds a router over an in-memory database with one admin
// user provisioned.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gdb))

	db := database.New(gdb)

	hash, err := authpkg.HashPassword(testAdminPassword)
	require.NoError(t, err)
	require.NoError(t, db.UserRepo().Add(&models.User{Username: testAdminUser, PasswordHash: hash}))

	sessionStore := sessions.NewMemoryStore()
	attachments := &fakeAttachments{}

	return &testEnv{
		router:       newRouter(db, sessionStore, attachments),
		db:           db,
		sessionStore: sessionStore,
		attachments:  attachments,
	}
}

// adminCookie issues a session directly through the store.
func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	user, err := e.db.UserRepo().FindByUsername(testAdminUser)
	require.NoError(t, err)
	require.NotNil(t, user)

	token, err := e.sessionStore.Create(context.Background(), user.ID.String(), time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

// do runs a request through the router and returns the recorder.
func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// multipartUpload posts the named payloads as a "files" multipart form.
func (e *testEnv) multipartUpload(t *testing.T, path string, files map[string][]byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
