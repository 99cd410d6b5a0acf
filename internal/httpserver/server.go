// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - POST /game/new starts a round and hands out a session token.
//   - Session endpoints (token required): POST /game/submit, POST /game/reset, GET /game.
//
// Notes:
//   - Rejections are normal 200 responses; only transport and startup failures are HTTP errors.
//   - Every engine call goes through store.Session.Do, which serializes access per round.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
)

// Options configures a Server.
type Options struct {
	Store          store.Store
	NewEngine      func() *game.Engine // returns an idle engine wired to the word source and dictionary
	Stats          func() (start, dictionary int)
	Secret         string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	ClientOrigin   string
	CookieSecure   bool
}

// Server bundles router, session store and engine factory.
type Server struct {
	r    *chi.Mux
	opts Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                          // zerolog access log
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /game/new","POST /game/submit","POST /game/reset","GET /game"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		var start, dict int
		if s.opts.Stats != nil {
			start, dict = s.opts.Stats()
		}
		writeJSON(w, http.StatusOK, map[string]int{"start": start, "dictionary": dict})
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Post("/game/submit", s.handleSubmit)
		r.Post("/game/reset", s.handleReset)
		r.Get("/game", s.handleSnapshot)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.sweepLoop(ctx, s.opts.SessionTTL/4)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sweepLoop drops sessions idle for longer than the session TTL.
func (s *Server) sweepLoop(ctx context.Context, every time.Duration) {
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.opts.Store.Sweep(ctx, now.Add(-s.opts.SessionTTL)); n > 0 {
				log.Info().Int("removed", n).Int("live", s.opts.Store.Len()).Msg("swept idle sessions")
			}
		}
	}
}

// ------------------------------ GAME ---------------------------------------

// newGameRes is returned by POST /game/new.
type newGameRes struct {
	GameID   string `json:"gameId"`
	Token    string `json:"token"`
	RootWord string `json:"rootWord"`
}

// handleNewGame starts a round in a fresh engine and registers a session for it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	e := s.opts.NewEngine()
	root, err := e.Reset()
	if err != nil {
		log.Error().Err(err).Msg("start round")
		writeError(w, http.StatusServiceUnavailable, "no_root_word")
		return
	}

	sess, err := s.opts.Store.Create(r.Context(), e)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.signSession(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)

	log.Debug().Str("gameId", sess.ID).Str("rootWord", root).Msg("round started")
	writeJSON(w, http.StatusOK, newGameRes{GameID: sess.ID, Token: tok, RootWord: root})
}

// submitReq is the request payload for POST /game/submit.
type submitReq struct {
	Word string `json:"word"`
}

// submitRes reports the outcome plus the state after it.
type submitRes struct {
	Outcome    game.Kind   `json:"outcome"` // ignored | accepted | rejected
	Word       string      `json:"word,omitempty"`
	ScoreDelta int         `json:"scoreDelta,omitempty"`
	Reason     game.Reason `json:"reason,omitempty"`
	Title      string      `json:"title,omitempty"`
	Message    string      `json:"message,omitempty"`
	RootWord   string      `json:"rootWord"`
	Score      int         `json:"score"`
	UsedWords  []string    `json:"usedWords"`
}

// handleSubmit forwards the raw candidate to the session's engine.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var res submitRes
	ok := withEngine(w, r, func(e *game.Engine) error {
		out := e.Submit(req.Word)
		snap := e.Snapshot()
		res = submitRes{
			Outcome:    out.Kind,
			Word:       out.Word,
			ScoreDelta: out.ScoreDelta,
			Reason:     out.Reason,
			RootWord:   snap.RootWord,
			Score:      snap.Score,
			UsedWords:  snap.UsedWords,
		}
		if out.Kind == game.KindRejected {
			res.Title, res.Message = game.Describe(out.Reason, snap.RootWord)
		}
		return nil
	})
	if !ok {
		return
	}

	log.Debug().
		Str("outcome", string(res.Outcome)).
		Str("reason", string(res.Reason)).
		Int("score", res.Score).
		Msg("submit")
	writeJSON(w, http.StatusOK, res)
}

// handleReset starts a new round in the same session.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := sessionFrom(r).Do(func(e *game.Engine) error {
		if _, err := e.Reset(); err != nil {
			return err
		}
		snap = e.Snapshot()
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("reset round")
		writeError(w, http.StatusServiceUnavailable, "no_root_word")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleSnapshot returns the current round state.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	ok := withEngine(w, r, func(e *game.Engine) error {
		snap = e.Snapshot()
		return nil
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// withEngine runs fn against the request's session engine. Any error is logged and
// answered with 500; the caller writes the response only when it reports true.
func withEngine(w http.ResponseWriter, r *http.Request, fn func(*game.Engine) error) bool {
	sess := sessionFrom(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "no_session")
		return false
	}
	if err := sess.Do(fn); err != nil {
		log.Error().Err(err).Str("gameId", sess.ID).Msg("session engine")
		writeError(w, http.StatusInternalServerError, "engine_failed")
		return false
	}
	return true
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
