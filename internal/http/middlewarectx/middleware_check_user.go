package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/http/response"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
)

// UserChecker сообщает актуальный признак блокировки пользователя.
type UserChecker interface {
	IsUserBlocked(ctx context.Context, userUID string) (bool, error)
}

// UserStatusMiddleware перепроверяет учетную запись по хранилищу на каждом
// запросе: токен заблокированного или удаленного пользователя перестает
// действовать сразу, не дожидаясь истечения срока. Требует предварительно
// отработавшего JWTMiddleware.
func UserStatusMiddleware(checker UserChecker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := Actor(r.Context())
			if !ok {
				log.Error("actor missing in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			blocked, err := checker.IsUserBlocked(r.Context(), actor.UID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					log.Error("token for missing user", slog.String("uid", actor.UID))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("invalid or expired token"))
					return
				}
				log.Error("failed to check user status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			if blocked {
				log.Error("blocked user rejected",
					slog.String("username", actor.Username),
					slog.String("uid", actor.UID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("user is blocked"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
