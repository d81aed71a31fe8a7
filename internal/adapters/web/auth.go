package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

const (
	ctxKeyUsername contextKey = "username"
	ctxKeyRole     contextKey = "role"
)

const tokenTTL = 24 * time.Hour

type authClaims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// register creates a new user account.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req app.RegisterRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.svc.RegisterUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			// Original wording and status for a taken username.
			writeError(w, r, "Username already exists", "CONFLICT", http.StatusBadRequest)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, user, http.StatusCreated)
}

// login verifies credentials and issues a signed bearer token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req app.LoginRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.svc.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := time.Now()
	claims := authClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type response struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	writeJSON(w, response{Token: token, Role: user.Role})
}

// RequireAuth verifies the Authorization bearer token and, when roles are
// given, requires the token role to match one of them exactly.
func (h *Handler) RequireAuth(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := h.parseToken(r)
			if err != nil {
				writeError(w, r, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
				return
			}

			if len(roles) > 0 && !contains(roles, claims.Role) {
				writeError(w, r, "Forbidden", "FORBIDDEN", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUsername, claims.Username)
			ctx = context.WithValue(ctx, ctxKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) parseToken(r *http.Request) (*authClaims, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, errors.New("missing bearer token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// actor returns the authenticated username, or the anonymous actor when the
// request carries no valid token. Mutation routes stay open, so audit rows
// default to anonymous unless a token is presented.
func (h *Handler) actor(r *http.Request) string {
	if name, ok := r.Context().Value(ctxKeyUsername).(string); ok && name != "" {
		return name
	}
	if claims, err := h.parseToken(r); err == nil {
		return claims.Username
	}
	return core.AnonymousActor
}
