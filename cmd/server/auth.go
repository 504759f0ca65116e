package main

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// tokenAuth guards catalog and plan writes with a static bearer token.
// An empty token disables the check.
type tokenAuth struct {
	token []byte
}

func newTokenAuth(token string) *tokenAuth {
	return &tokenAuth{token: []byte(token)}
}

func (a *tokenAuth) enabled() bool {
	return len(a.token) > 0
}

func (a *tokenAuth) validate(header string) bool {
	if !a.enabled() {
		return true
	}
	provided, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), a.token) == 1
}

func (a *tokenAuth) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.validate(r.Header.Get("Authorization")) {
			w.Header().Set("WWW-Authenticate", `Bearer realm="farmyield"`)
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid bearer token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
