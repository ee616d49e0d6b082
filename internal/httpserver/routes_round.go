// internal/httpserver/routes_round.go
//
// Round lifecycle endpoints.
//   - POST /round/new     → select + scramble a word, open a session.
//   - POST /round/reveal  → server-confirmed letter reveal (hint modes).
//   - POST /round/submit  → re-derive the score from raw counters, persist,
//     award XP, return rank.
//   - POST /practice/words → deterministic or casual practice batches.
//
// The submit path is the anti-cheat boundary: the client sends raw counters
// only, never a score. Rejections come back as 200 with isValid=false —
// they are expected adversarial input, not errors.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scrambled/go-server/internal/game"
	"github.com/scrambled/go-server/internal/rng"
)

// userIDWithAnon returns the authenticated user ID if logged in, otherwise
// the stable anonymous cookie ID.
func (s *Server) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /round/new

type newRoundReq struct {
	Mode          string `json:"mode"`
	Lang          string `json:"lang"`
	Difficulty    string `json:"difficulty"`
	Seed          string `json:"seed"`          // optional; daily ignores it
	TimedDuration int    `json:"timedDuration"` // seconds, timed mode only
}

type newRoundRes struct {
	RoundID       string `json:"roundId"`
	Scrambled     string `json:"scrambled"`
	Letters       int    `json:"letters"`
	Seed          string `json:"seed"`
	Mode          string `json:"mode"`
	TimedDuration int    `json:"timedDuration,omitempty"`
	Played        bool   `json:"played,omitempty"` // daily: already played today
}

// handleNewRound validates the request, resolves the seed (daily seeds are
// forced so every player gets the same puzzle), picks and scrambles a word,
// and opens an in-memory session backed by a best-effort DB row.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	mode := game.Mode(req.Mode)
	if !game.ValidMode(mode) {
		http.Error(w, `{"error":"unsupported_mode"}`, http.StatusBadRequest)
		return
	}
	uid := s.userIDWithAnon(w, r)

	seed := strings.TrimSpace(req.Seed)
	duration := 0
	switch mode {
	case game.ModeDaily:
		seed = rng.DailySeed(time.Now())
		if played, err := s.dailyAlreadyPlayed(r.Context(), uid, dailyDateKey(time.Now())); err == nil && played {
			_ = json.NewEncoder(w).Encode(newRoundRes{Mode: req.Mode, Played: true})
			return
		}
	case game.ModeTimed:
		d, ok := game.TimedDurationFor(req.TimedDuration)
		if !ok {
			http.Error(w, `{"error":"unsupported_duration"}`, http.StatusBadRequest)
			return
		}
		duration = d.Seconds
		fallthrough
	default:
		if seed == "" {
			seed = rng.NewRoundSeed()
		} else if !rng.ValidateSeed(seed) {
			http.Error(w, `{"error":"invalid_seed"}`, http.StatusBadRequest)
			return
		}
	}

	// The daily puzzle is shared by every player, so per-user exclusion
	// history must not influence it.
	pickUser := uid
	if mode == game.ModeDaily {
		pickUser = ""
	}
	pick, err := s.selector.Pick(r.Context(), req.Lang, req.Difficulty, pickUser, seed)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, game.ErrNoGroupsFound) {
			// Content gap, not user fault.
			status = http.StatusServiceUnavailable
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}

	rd := &game.Round{
		ID:            genID(),
		UserID:        uid,
		Mode:          mode,
		Lang:          req.Lang,
		Difficulty:    req.Difficulty,
		Seed:          seed,
		Scrambled:     pick.Scrambled,
		Answers:       pick.Answers,
		Signature:     pick.Signature,
		TimedDuration: duration,
		StartedAt:     time.Now(),
	}
	s.saveSession(rd)

	// History row (best effort, non-fatal if it fails).
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(`INSERT INTO rounds (id, user_id, mode, lang, difficulty, seed, started_at, status)
	                        VALUES (?,?,?,?,?,?,?,'playing')`,
		rd.ID, uid, string(mode), rd.Lang, rd.Difficulty, seed, now); err != nil {
		log.Warn().Err(err).Str("roundId", rd.ID).Msg("insert round row")
	}

	_ = json.NewEncoder(w).Encode(newRoundRes{
		RoundID:       rd.ID,
		Scrambled:     rd.Scrambled,
		Letters:       len(rd.Scrambled),
		Seed:          seed,
		Mode:          req.Mode,
		TimedDuration: duration,
	})
}

// -----------------------------------------------------------------------------
// /round/reveal

type revealReq struct {
	RoundID string `json:"roundId"`
}

type revealRes struct {
	Index            int    `json:"index"` // -1: nothing left to reveal
	Letter           string `json:"letter,omitempty"`
	RevealsUsed      int    `json:"revealsUsed"`
	TimePenalty      int    `json:"timePenalty"` // cumulative seconds
	NextRevealInSecs int    `json:"nextRevealInSeconds"`
}

// handleReveal confirms one letter reveal against the round clock. Reveals
// are position 0..N of the first answer; all answers in a group share the
// same letters, only the canonical one is revealed against.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rd, ok := s.getSession(req.RoundID)
	if !ok || rd.UserID != s.userIDWithAnon(w, r) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	cfg, _ := game.Config(rd.Mode)
	if !cfg.HintsEnabled {
		http.Error(w, `{"error":"hints_disabled"}`, http.StatusBadRequest)
		return
	}

	startMs := rd.StartedAt.UnixMilli()
	nowMs := time.Now().UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !game.CanRevealNext(rd.RevealsUsed, nowMs, startMs, rd.Mode) {
		_ = json.NewEncoder(w).Encode(revealRes{
			Index:            -1,
			RevealsUsed:      rd.RevealsUsed,
			TimePenalty:      game.RevealPenalty(rd.RevealsUsed, rd.Mode),
			NextRevealInSecs: game.SecondsUntilNextReveal(rd.RevealsUsed, nowMs, startMs, rd.Mode),
		})
		return
	}
	answer := rd.Answers[0]
	idx := game.RevealNextLetter(answer, rd.RevealedIdx)
	if idx >= 0 {
		rd.RevealedIdx = append(rd.RevealedIdx, idx)
		rd.RevealsUsed++
	}
	res := revealRes{
		Index:            idx,
		RevealsUsed:      rd.RevealsUsed,
		TimePenalty:      game.RevealPenalty(rd.RevealsUsed, rd.Mode),
		NextRevealInSecs: game.SecondsUntilNextReveal(rd.RevealsUsed, nowMs, startMs, rd.Mode),
	}
	if idx >= 0 {
		res.Letter = string([]rune(answer)[idx])
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /practice/words

type practiceReq struct {
	Lang       string `json:"lang"`
	Difficulty string `json:"difficulty"`
	Seed       string `json:"seed"`  // optional: omit for a casual batch
	Count      int    `json:"count"` // default 10, max 50
}

type practiceRes struct {
	Seed  string          `json:"seed"`
	Words []game.WordPair `json:"words"`
}

// handlePracticeWords returns a batch of scramble/answer pairs. With a seed
// the batch is reproducible; without one it is casual and is not.
func (s *Server) handlePracticeWords(w http.ResponseWriter, r *http.Request) {
	var req practiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Count <= 0 {
		req.Count = 10
	}
	if req.Count > 50 {
		req.Count = 50
	}
	seed := strings.TrimSpace(req.Seed)
	if seed == "" {
		seed = rng.NewRoundSeed()
	} else if !rng.ValidateSeed(seed) {
		http.Error(w, `{"error":"invalid_seed"}`, http.StatusBadRequest)
		return
	}
	pairs, err := s.selector.GenerateWords(r.Context(), req.Lang, req.Difficulty, seed, req.Count)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, game.ErrNoGroupsFound) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	_ = json.NewEncoder(w).Encode(practiceRes{Seed: seed, Words: pairs})
}
