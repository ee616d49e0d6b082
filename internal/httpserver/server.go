// internal/httpserver/server.go
//
// HTTP server wiring for the unscramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/modes", "/debug/words".
//   - Round endpoints (optional auth): POST /round/new, /round/reveal,
//     /round/submit; POST /practice/words; GET /daily/leaderboard.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me.
//   - Active round sessions held in memory; results persisted to SQLite.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token
//     is present; routes still run for guests under an anonymous cookie.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/scrambled/go-server/internal/game"
	"github.com/scrambled/go-server/internal/store"
	"github.com/scrambled/go-server/internal/words"
)

// Server bundles router, DB handle, the word selector, and in-memory round
// sessions.
type Server struct {
	r        *chi.Mux
	db       *sql.DB
	selector *game.Selector

	mu       sync.Mutex // guards sessions
	sessions map[string]*game.Round
}

// New constructs a Server, installs middleware, and registers routes.
// The selector's recent-signature history is persisted through db.
func New(db *sql.DB) *Server {
	s := &Server{
		r:  chi.NewRouter(),
		db: db,
		selector: &game.Selector{
			Groups: store.NewMemoryGroups(),
			Recent: store.NewSQLiteRecent(db),
		},
		sessions: make(map[string]*game.Round),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"scramble-go","endpoints":["/health","/modes","POST /round/new","POST /round/submit","POST /practice/words","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/modes", handleModes)
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(words.Stats())
	})

	// Gameplay — OPTIONAL AUTH (guests can play under an anon cookie)
	s.r.With(s.withOptionalAuth()).Post("/round/new", s.handleNewRound)
	s.r.With(s.withOptionalAuth()).Post("/round/reveal", s.handleReveal)
	s.r.With(s.withOptionalAuth()).Post("/round/submit", s.handleSubmitRound)
	s.r.With(s.withOptionalAuth()).Post("/practice/words", s.handlePracticeWords)
	s.r.Get("/daily/leaderboard", s.handleDailyLeaderboard)

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// saveSession stores an active round; getSession looks one up.
func (s *Server) saveSession(rd *game.Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rd.ID] = rd
}

func (s *Server) getSession(id string) (*game.Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rd, ok := s.sessions[id]
	return rd, ok
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- modes -------------------------------------

// handleModes reports the static mode registry and tuning constants so
// clients never hardcode them.
func handleModes(w http.ResponseWriter, r *http.Request) {
	type modeRow struct {
		Mode string `json:"mode"`
		game.ModeConfig
	}
	out := struct {
		Modes          []modeRow            `json:"modes"`
		TimedDurations []game.TimedDuration `json:"timedDurations"`
		Survival       map[string]int       `json:"survival"`
	}{
		Survival: map[string]int{
			"initialTimePerWord":         game.SurvivalInitialTimePerWord,
			"minimumTimePerWord":         game.SurvivalMinimumTimePerWord,
			"difficultyIncreaseInterval": game.SurvivalDifficultyInterval,
			"timeReductionPerLevel":      game.SurvivalTimeReductionPerLvl,
			"wrongAnswerPenalty":         game.SurvivalWrongAnswerPenalty,
		},
	}
	for _, m := range []game.Mode{game.ModeDaily, game.ModeTimed, game.ModeSurvival} {
		cfg, _ := game.Config(m)
		out.Modes = append(out.Modes, modeRow{Mode: string(m), ModeConfig: cfg})
	}
	for _, sec := range []int{30, 60, 120} {
		d, _ := game.TimedDurationFor(sec)
		out.TimedDurations = append(out.TimedDurations, d)
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
