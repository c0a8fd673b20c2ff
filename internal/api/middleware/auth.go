package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Заголовки, которые проставляет шлюз после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderTeamID   = "X-Team-ID"
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"

	msgMissingUserID = "отсутствует или некорректен ID пользователя"
)

type actorKey struct{}

// Auth извлекает пользователя из заголовков и кладет его в контекст
// Без корректного X-User-ID запрос отклоняется с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromHeaders(r.Header)
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

func actorFromHeaders(h http.Header) (domain.Actor, bool) {
	userID, err := strconv.ParseInt(h.Get(HeaderUserID), 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, false
	}

	actor := domain.Actor{
		UserID:  userID,
		IsAdmin: strings.EqualFold(strings.TrimSpace(h.Get(HeaderUserRole)), roleAdmin),
	}

	if raw := h.Get(HeaderTeamID); raw != "" {
		teamID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || teamID <= 0 {
			return domain.Actor{}, false
		}
		actor.TeamID = &teamID
	}

	return actor, true
}
