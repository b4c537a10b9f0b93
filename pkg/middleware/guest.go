package middleware

import (
	"net/http"

	"cinelog/pkg/utils"

	"github.com/google/uuid"
)

const GuestHeader = "X-Guest-ID"

// Guest identifies the anonymous browser. The id comes from the X-Guest-ID
// header or the guest cookie; a new one is issued when neither holds a valid
// id. The id is echoed back in X-Guest-ID for clients without cookies.
func Guest(cookieName string, maxAgeDays int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guestID, ok := guestIDFromRequest(r, cookieName)
			if !ok {
				guestID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    guestID,
					Path:     "/",
					MaxAge:   maxAgeDays * 24 * 60 * 60,
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}

			w.Header().Set(GuestHeader, guestID)
			next.ServeHTTP(w, r.WithContext(utils.SetGuestContext(r.Context(), guestID)))
		})
	}
}

func guestIDFromRequest(r *http.Request, cookieName string) (string, bool) {
	if id, err := uuid.Parse(r.Header.Get(GuestHeader)); err == nil {
		return id.String(), true
	}

	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
