package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/loftchat/loft-server/internal/account"
	"github.com/loftchat/loft-server/internal/config"
	"github.com/loftchat/loft-server/internal/utils"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionCookie holds the session store's access token. The token is the
// session; nothing else is persisted server-side.
const SessionCookie = "token"

var jwtSecret = config.Envs.Supabase.JWTSecret

// AuthMiddleware verifies the access-token cookie locally. Session-store
// access tokens are HS256-signed with the project JWT secret, so a network
// round trip per request is unnecessary; the orchestration layer still passes
// the raw token along for calls that hit the session store.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		sess, ok := parseSession(cookie.Value)
		if !ok {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the session placed by AuthMiddleware, or nil.
func SessionFromContext(ctx context.Context) *account.Session {
	sess, _ := ctx.Value(SessionKey).(*account.Session)
	return sess
}

func parseSession(tokenStr string) (*account.Session, bool) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, false
	}
	email, _ := claims["email"].(string)

	return &account.Session{
		AccessToken: tokenStr,
		User: account.SessionUser{
			ID:    sub,
			Email: email,
		},
	}, true
}
