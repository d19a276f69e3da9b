package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shop-backend/internal/access"
	"github.com/magabrotheeeer/shop-backend/internal/http/response"
)

// StaffMiddleware пропускает только персонал: администраторов и
// суперпользователей. Требует предварительно отработавшего JWTMiddleware.
func StaffMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := Actor(r.Context())
			if !ok {
				log.Error("actor missing in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if !access.CanSeeAll(actor) {
				log.Error("staff access denied",
					slog.String("username", actor.Username),
					slog.String("role", actor.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
