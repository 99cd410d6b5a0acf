package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/store"
)

const sessionCookieName = "scramble_session"

// sessionClaims binds a token to one game session.
type sessionClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// ctxSessionKey is the context key type for the resolved *store.Session.
type ctxSessionKey struct{}

// sessionHeader carries the renewed token on every session-bound response.
const sessionHeader = "X-Session-Token"

// signSession creates an HS256 token for gameID that expires one session TTL from now.
func (s *Server) signSession(gameID string) (string, time.Time, error) {
	return s.signSessionAt(gameID, time.Now())
}

func (s *Server) signSessionAt(gameID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.Secret))
	return ss, exp, err
}

// parseSession validates a token and returns its game ID.
func (s *Server) parseSession(tok string) (string, error) {
	var claims sessionClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.GameID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.GameID, nil
}

// setSessionCookie writes the session token cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireSession resolves the token to a live session and stores it in the request context.
// The token is re-issued on every request so it expires with the session's idle time,
// not with the time the round was created.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "no_session")
			return
		}
		id, err := s.parseSession(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_session")
			return
		}
		sess, err := s.opts.Store.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_expired")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		if tok, exp, err := s.signSession(sess.ID); err == nil {
			w.Header().Set(sessionHeader, tok)
			s.setSessionCookie(w, tok, exp)
		} else {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("renew session token")
		}

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session placed in context by requireSession.
func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}
