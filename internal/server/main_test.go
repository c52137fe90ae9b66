package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/models"
	"vidtube/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
}

func testConfig(mediaDir string) *config.Config {
	return &config.Config{
		Port:             "0",
		Env:              "test",
		JWTSecret:        "test-secret-that-is-long-enough-for-hs256",
		JWTTTLHours:      1,
		StorageDriver:    "local",
		StorageLocalDir:  mediaDir,
		StoragePublicURL: "http://localhost/media",
		MediaMaxUploadMB: 8,
	}
}

// newTestEnv builds the full application on an in-memory database and a
// local media store under t.TempDir().
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := testConfig(t.TempDir())
	store, err := storage.NewLocalStore(cfg.StorageLocalDir, cfg.StoragePublicURL)
	require.NoError(t, err)

	cfg.MediaTempDir = t.TempDir()
	srv, err := NewServerWithDeps(cfg, Deps{DB: db, Store: store})
	require.NoError(t, err)

	return &testEnv{server: srv, app: srv.App(), db: db}
}

func (e *testEnv) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Password: "hash",
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) seedVideo(t *testing.T, owner uuid.UUID, title string, published bool) *models.Video {
	t.Helper()
	v := &models.Video{
		VideoFile:   "http://localhost/media/" + title + ".mp4",
		Thumbnail:   "http://localhost/media/" + title + ".webp",
		Title:       title,
		Description: "about " + title,
		IsPublished: published,
		OwnerID:     owner,
	}
	require.NoError(t, e.db.Create(v).Error)
	return v
}

func (e *testEnv) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, _, err := e.server.userService.IssueToken(userID)
	require.NoError(t, err)
	return token
}

// envelope is the decoded success or failure body.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func (e *testEnv) do(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

type formPart struct {
	field    string
	filename string
	data     []byte
}

func multipartRequest(t *testing.T, method, target string, values map[string]string, files ...formPart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 18))
	for x := 0; x < 32; x++ {
		img.Set(x, x%18, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
