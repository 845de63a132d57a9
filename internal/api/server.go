// Package api provides the HTTP API for browsing saved settlements and
// generating new ones on demand.
// GET endpoints are public and read-only.
// POST endpoints require a bearer token and write to the database.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/persistence"
	"github.com/talgya/hamlet/internal/render"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

// Server serves settlements over HTTP.
type Server struct {
	DB       *persistence.DB // nil disables the stored-settlement endpoints
	World    *world.NoiseWorld
	Params   settlement.Params
	Index    *settlement.Index
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	// GenerateLimit caps generation requests per client per hour.
	GenerateLimit int
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	limit := s.GenerateLimit
	if limit <= 0 {
		limit = 60
	}
	generateLimiter := NewRateLimiter(limit, time.Hour)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/runs", s.withDB(s.handleRuns))
	mux.HandleFunc("GET /api/v1/runs/{run}/settlements", s.withDB(s.handleSettlements))
	mux.HandleFunc("GET /api/v1/settlement/{id}", s.withDB(s.handleSettlementDetail))

	mux.HandleFunc("GET /api/v1/generate", RateLimitMiddleware(generateLimiter, s.handleGenerate))
	mux.HandleFunc("GET /api/v1/generate/map.png", RateLimitMiddleware(generateLimiter, s.handleGenerateMap))
	mux.HandleFunc("POST /api/v1/generate", s.adminOnly(s.withDB(s.handleGenerateSave)))

	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "db", s.DB != nil)

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && token == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no admin key set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) withDB(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.DB == nil {
			http.Error(w, "no database configured", http.StatusServiceUnavailable)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.World.Config()
	writeJSON(w, map[string]any{
		"name":       "hamlet",
		"world_seed": cfg.Seed,
		"params":     s.Params,
		"database":   s.DB != nil,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.DB.Runs()
	if err != nil {
		serverError(w, "list runs", err)
		return
	}
	writeJSON(w, runs)
}

func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	run, err := uuid.Parse(r.PathValue("run"))
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}
	rows, err := s.DB.Settlements(run)
	if err != nil {
		serverError(w, "list settlements", err)
		return
	}

	type settlementSummary struct {
		ID     int64      `json:"id"`
		Name   string     `json:"name"`
		Seed   uint32     `json:"seed"`
		Origin geom.Vec2  `json:"origin"`
		Town   *geom.Vec2 `json:"town,omitempty"`
	}
	result := make([]settlementSummary, 0, len(rows))
	for _, row := range rows {
		sum := settlementSummary{ID: row.ID, Name: row.Name, Seed: row.Seed, Origin: row.Origin()}
		if row.TownX != nil && row.TownY != nil {
			sum.Town = &geom.Vec2{X: *row.TownX, Y: *row.TownY}
		}
		result = append(result, sum)
	}
	writeJSON(w, result)
}

func (s *Server) handleSettlementDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid settlement id", http.StatusBadRequest)
		return
	}
	snap, err := s.DB.LoadSnapshot(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "settlement not found", http.StatusNotFound)
		return
	}
	if err != nil {
		serverError(w, "load settlement", err)
		return
	}
	writeJSON(w, snap)
}

// generateRequest is a settlement origin and generation seed.
type generateRequest struct {
	Origin geom.Vec2
	Seed   int64
}

// parseGenerate reads x, y and seed from the query string. Missing values
// default to zero.
func parseGenerate(r *http.Request) (generateRequest, error) {
	var req generateRequest
	q := r.URL.Query()
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid seed: %w", err)
		}
		req.Seed = n
	}
	for name, dst := range map[string]*int{"x": &req.Origin.X, "y": &req.Origin.Y} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = n
		}
	}
	return req, nil
}

func (s *Server) generate(req generateRequest) *settlement.Settlement {
	return settlement.GenerateWith(req.Origin, s.World, rand.New(rand.NewSource(req.Seed)), s.Params)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := parseGenerate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, s.generate(req).Snapshot())
}

func (s *Server) handleGenerateMap(w http.ResponseWriter, r *http.Request) {
	req, err := parseGenerate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scale := 2
	if v := r.URL.Query().Get("scale"); v != "" {
		if scale, err = strconv.Atoi(v); err != nil || scale < 1 {
			http.Error(w, "invalid scale", http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	if err := render.WritePNG(w, s.generate(req), s.World, s.Index, scale); err != nil {
		slog.Error("encode map", "error", err)
	}
}

func (s *Server) handleGenerateSave(w http.ResponseWriter, r *http.Request) {
	req, err := parseGenerate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap := s.generate(req).Snapshot()

	run, err := s.DB.NewRun(req.Seed)
	if err != nil {
		serverError(w, "create run", err)
		return
	}
	id, err := s.DB.SaveSettlement(run, snap)
	if err != nil {
		serverError(w, "save settlement", err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, map[string]any{"id": id, "run": run, "name": snap.Name})
}

func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, msg+" failed", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, data any) {
	writeJSONStatus(w, http.StatusOK, data)
}

func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
