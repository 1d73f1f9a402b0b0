package middleware

import (
	"net/http"
	"strings"

	"github.com/dukapos/pos-terminal/api/responses"
	pkgauth "github.com/dukapos/pos-terminal/pkg/auth"
	"github.com/dukapos/pos-terminal/pkg/config"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// claims. The raw token is kept in context so backend calls go out
// under the cashier's own credentials.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.UserID <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user id"))
				return
			}
			if !claims.Role.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown role"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithRole(ctx, string(claims.Role))
			ctx = WithToken(ctx, token)
			if claims.Username != "" {
				ctx = WithUsername(ctx, claims.Username)
			}

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"cashier_id": claims.UserID,
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
