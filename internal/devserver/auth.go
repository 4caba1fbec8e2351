package devserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bakdaulet/kassa/internal/api"
)

type ctxKey int

const userKey ctxKey = 0

// issueToken signs a short-lived HS256 token carrying the user identity
// and role, shaped like the production backend's tokens.
func (s *Server) issueToken(user api.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       user.ID,
		"name":      user.Name,
		"login":     user.Login,
		"role":      string(user.Role),
		"branch_id": user.BranchID,
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	})

	return token.SignedString(s.jwtSecret)
}

// withAuth rejects requests without a valid bearer token and puts the
// decoded user on the request context.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}

		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}

			return s.jwtSecret, nil
		})
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user := api.User{}

		if sub, ok := claims["sub"].(string); ok {
			user.ID = sub
		}

		if name, ok := claims["name"].(string); ok {
			user.Name = name
		}

		if role, ok := claims["role"].(string); ok {
			user.Role = api.Role(role)
		}

		if branch, ok := claims["branch_id"].(float64); ok {
			user.BranchID = int64(branch)
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates management endpoints on the admin role.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()).Role != api.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func userFrom(ctx context.Context) api.User {
	user, _ := ctx.Value(userKey).(api.User)
	return user
}
