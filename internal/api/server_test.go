package api

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/persistence"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

func newTestServer(t *testing.T, withDB bool) *Server {
	t.Helper()
	s := &Server{
		World:    world.NewNoiseWorld(world.SmallTestConfig()),
		Index:    settlement.NewIndex(),
		AdminKey: "secret",
	}
	if withDB {
		db, err := persistence.Open(filepath.Join(t.TempDir(), "api.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		s.DB = db
	}
	return s
}

func do(t *testing.T, h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateReturnsSnapshot(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/generate?x=64&y=-32&seed=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got settlement.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	want := s.generate(generateRequest{Seed: 5}).Snapshot()
	require.Equal(t, want.Name, got.Name)
	require.Equal(t, 64, got.Origin.X)
	require.Equal(t, -32, got.Origin.Y)
}

func TestGenerateRejectsBadQuery(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/generate?x=east", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateMap(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/generate/map.png?seed=2&scale=16", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	require.Equal(t, 50, img.Bounds().Dx())
}

func TestSaveRequiresAdmin(t *testing.T) {
	s := newTestServer(t, true)
	h := s.Handler()

	require.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/api/v1/generate", "").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/api/v1/generate", "wrong").Code)

	s.AdminKey = ""
	require.Equal(t, http.StatusForbidden, do(t, s.Handler(), http.MethodPost, "/api/v1/generate", "secret").Code)
}

func TestSaveAndBrowse(t *testing.T) {
	s := newTestServer(t, true)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/generate?seed=9&x=128", "secret")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID   int64  `json:"id"`
		Run  string `json:"run"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, h, http.MethodGet, "/api/v1/runs/"+created.Run+"/settlements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	require.Equal(t, created.ID, rows[0].ID)
	require.Equal(t, created.Name, rows[0].Name)

	rec = do(t, h, http.MethodGet, "/api/v1/settlement/"+strconv.FormatInt(created.ID, 10), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got settlement.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	want := s.generate(generateRequest{Origin: geom.Vec2{X: 128}, Seed: 9}).Snapshot()
	require.Equal(t, want.Seed, got.Seed)
	if diff := cmp.Diff(want.Farms, got.Farms); diff != "" {
		t.Errorf("farms mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/settlement/999", "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/runs/nope/settlements", "").Code)
}

func TestStoredEndpointsNeedDB(t *testing.T) {
	s := newTestServer(t, false)
	require.Equal(t, http.StatusServiceUnavailable, do(t, s.Handler(), http.MethodGet, "/api/v1/runs", "").Code)
}

func TestRateLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("a"))
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
	require.True(t, rl.Allow("b"))
	require.Equal(t, 61, rl.RetryAfter("a"))

	now = now.Add(time.Minute)
	require.True(t, rl.Allow("a"))
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	h := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")

	rec := httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
