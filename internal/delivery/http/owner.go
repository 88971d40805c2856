package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// OwnerCookie identifies the browser a cart belongs to.
const OwnerCookie = "cv_cart_owner"

const ownerCookieMaxAge = 365 * 24 * time.Hour

type ownerKey struct{}

// ownerMiddleware issues a fresh owner id when the cookie is missing or malformed.
func ownerMiddleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := ""
			if c, err := r.Cookie(OwnerCookie); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					ownerID = id.String()
				}
			}

			if ownerID == "" {
				ownerID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     OwnerCookie,
					Value:    ownerID,
					Path:     "/",
					MaxAge:   int(ownerCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ownerFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(ownerKey{}).(string)
	return ownerID
}
