package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type subjectKey struct{}

// authenticate checks the bearer token when a secret is configured and
// stores its subject on the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.jwtSecret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			writeError(w, http.StatusUnauthorized, "invalid token")
			s.logger.Debug("rejected token", "err", err)
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveSession picks the session a request acts on. With auth enabled the
// token subject wins and a conflicting requested id is forbidden.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request, requested string) (string, bool) {
	subject, _ := r.Context().Value(subjectKey{}).(string)
	switch {
	case subject != "" && requested != "" && requested != subject:
		writeError(w, http.StatusForbidden, "session does not belong to token")
		return "", false
	case subject != "":
		return subject, true
	case requested == "":
		writeError(w, http.StatusBadRequest, "session_id is required")
		return "", false
	default:
		return requested, true
	}
}

// IssueToken signs an HS256 token whose subject is sessionID.
func IssueToken(secret []byte, sessionID string) (string, error) {
	claims := jwt.RegisteredClaims{Subject: sessionID}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
