// internal/httpserver/routes_daily.go
//
// Round submission and the daily leaderboard.
// Each user can finish the daily puzzle once per UTC day (enforced by the
// daily_results UNIQUE constraint plus an up-front check). Scores are
// re-derived server-side from raw counters; stats and XP updates run in a
// best-effort transaction that never fails the request.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scrambled/go-server/internal/game"
)

// dailyDateKey returns YYYY-MM-DD in UTC.
func dailyDateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// dailyAlreadyPlayed reports whether uid has a persisted daily result for
// date.
func (s *Server) dailyAlreadyPlayed(ctx context.Context, uid, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`, uid, date).Scan(&cnt)
	return cnt > 0, err
}

// -----------------------------------------------------------------------------
// /round/submit

type submitReq struct {
	RoundID        string  `json:"roundId"`
	CorrectChars   int     `json:"correctChars"`
	IncorrectChars int     `json:"incorrectChars"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	ComboStreak    int     `json:"comboStreak"`
	WordsSolved    int     `json:"wordsSolved"`
}

type submitRes struct {
	Result        game.ScoreCalculation `json:"result"`
	EffectiveTime float64               `json:"effectiveTime"`
	XPAwarded     int                   `json:"xpAwarded"`
	Rank          int                   `json:"rank,omitempty"` // daily only, 1-based
}

// handleSubmitRound re-derives the score from the submitted raw counters.
// Anti-cheat rejections return 200 with isValid=false. Valid scores fold in
// the reveal penalty, persist the round, update user stats/XP, and (daily)
// record the leaderboard row.
func (s *Server) handleSubmitRound(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rd, ok := s.getSession(req.RoundID)
	if !ok || rd.UserID != s.userIDWithAnon(w, r) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	s.mu.Lock()
	finished := rd.Finished
	rd.Finished = true
	revealsUsed := rd.RevealsUsed
	s.mu.Unlock()
	if finished {
		http.Error(w, `{"error":"already_submitted"}`, http.StatusConflict)
		return
	}

	result := game.CalculateScore(req.CorrectChars, req.IncorrectChars, req.ElapsedSeconds,
		rd.Mode, req.ComboStreak, rd.TimedDuration)
	if !result.IsValid {
		_ = json.NewEncoder(w).Encode(submitRes{Result: result})
		return
	}
	effective := game.EffectiveTime(req.ElapsedSeconds, revealsUsed, rd.Mode)

	res := submitRes{Result: result, EffectiveTime: effective}
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	date := dailyDateKey(time.Now())

	// Persist counters/history (best effort, non-fatal if it fails).
	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin submit tx")
	} else {
		defer func() { _ = tx.Rollback() }()

		now := time.Now().UTC().Format(time.RFC3339)
		if _, err := tx.Exec(`UPDATE rounds SET status='finished', finished_at=?, score=?, wpm=?, accuracy=?
		                      WHERE id=?`, now, result.Score, result.WPM, result.Accuracy, rd.ID); err != nil {
			log.Warn().Err(err).Msg("finish round row")
		}

		if rd.Mode == game.ModeDaily {
			if _, err := tx.Exec(`INSERT OR IGNORE INTO daily_results
			        (user_id, date, score, wpm, accuracy, effective_ms)
			        VALUES (?,?,?,?,?,?)`,
				rd.UserID, date, result.Score, result.WPM, result.Accuracy,
				int(effective*1000)); err != nil {
				log.Warn().Err(err).Msg("insert daily result")
			}
		}

		if me != nil {
			xp, err := s.bumpStats(tx, me.ID, rd.Mode, result, req.WordsSolved, date)
			if err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			} else {
				res.XPAwarded = xp
			}
		}
		_ = tx.Commit()
	}

	if rd.Mode == game.ModeDaily {
		res.Rank = s.dailyRank(r.Context(), date, result.Score, effective)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// bumpStats updates games played, best score, daily streak, and XP inside
// tx, returning the XP awarded for this game.
func (s *Server) bumpStats(tx *sql.Tx, userID string, mode game.Mode, result game.ScoreCalculation, wordsSolved int, date string) (int, error) {
	var (
		gamesPlayed, bestScore, xp, streak int
		lastDaily                          sql.NullString
	)
	row := tx.QueryRow(`SELECT games_played, best_score, xp, daily_streak, last_daily_date
	                    FROM users WHERE id=?`, userID)
	if err := row.Scan(&gamesPlayed, &bestScore, &xp, &streak, &lastDaily); err != nil {
		return 0, err
	}

	gamesPlayed++
	isPB := result.Score > bestScore
	if isPB {
		bestScore = result.Score
	}
	if mode == game.ModeDaily {
		yesterday := dailyDateKey(time.Now().AddDate(0, 0, -1))
		if lastDaily.Valid && lastDaily.String == yesterday {
			streak++
		} else if !lastDaily.Valid || lastDaily.String != date {
			streak = 1
		}
		lastDaily = sql.NullString{String: date, Valid: true}
	}

	award := game.GameXP(game.GameXPInput{
		Mode:           mode,
		WordsSolved:    wordsSolved,
		Accuracy:       result.Accuracy,
		IsPersonalBest: isPB,
		DailyStreak:    streak,
	})
	xp += award

	_, err := tx.Exec(`UPDATE users SET games_played=?, best_score=?, xp=?, daily_streak=?, last_daily_date=?
	                   WHERE id=?`, gamesPlayed, bestScore, xp, streak, lastDaily, userID)
	return award, err
}

// dailyRank is the 1-based position a score/effective-time pair lands at on
// today's board. Zero when the query fails; rank is cosmetic.
func (s *Server) dailyRank(ctx context.Context, date string, score int, effective float64) int {
	var better int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results
		 WHERE date=? AND (score > ? OR (score = ? AND effective_ms < ?))`,
		date, score, score, int(effective*1000)).Scan(&better)
	if err != nil {
		log.Warn().Err(err).Msg("daily rank")
		return 0
	}
	return better + 1
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

type lbRow struct {
	UserID      string  `json:"userId"`
	Score       int     `json:"score"`
	WPM         float64 `json:"wpm"`
	Accuracy    float64 `json:"accuracy"`
	EffectiveMs int     `json:"effectiveMs"`
}

type lbRes struct {
	Date string  `json:"date"`
	Top  []lbRow `json:"top"`
}

// handleDailyLeaderboard returns the top 20 for the given date (default
// today): highest score first, penalized time as the tiebreak.
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = dailyDateKey(time.Now())
	}
	rows, err := s.db.QueryContext(r.Context(),
		`SELECT user_id, score, wpm, accuracy, effective_ms
		 FROM daily_results WHERE date=?
		 ORDER BY score DESC, effective_ms ASC, created_at ASC
		 LIMIT 20`, date)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := lbRes{Date: date, Top: []lbRow{}}
	for rows.Next() {
		var row lbRow
		if err := rows.Scan(&row.UserID, &row.Score, &row.WPM, &row.Accuracy, &row.EffectiveMs); err == nil {
			out.Top = append(out.Top, row)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}
