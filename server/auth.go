package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GuestCookie identifies a guest across requests.
const GuestCookie = "wf_guest"

// user is the caller of a request.
type user struct {
	id    string
	guest bool
}

func (u user) key() string {
	if u.guest {
		return "guest:" + u.id
	}
	return "user:" + u.id
}

type userKey struct{}

func userFrom(ctx context.Context) user {
	u, _ := ctx.Value(userKey{}).(user)
	return u
}

// NewToken signs a bearer token for userID.
func NewToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("no signing secret configured")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(secret)
}

// authenticate resolves the caller from the bearer token, or from the guest
// cookie when there is no token.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			u := user{guest: true}
			if c, err := r.Cookie(GuestCookie); err == nil && c.Value != "" {
				u.id = c.Value
			} else {
				u.id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     GuestCookie,
					Value:    u.id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || len(s.cfg.Secret) == 0 {
			writeError(w, s.log, statusError{http.StatusUnauthorized, errors.New("invalid authorization header")})
			return
		}
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return s.cfg.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || claims.Subject == "" {
			s.log.WithError(err).Debug("token refused")
			writeError(w, s.log, statusError{http.StatusUnauthorized, errors.New("invalid token")})
			return
		}
		u := user{id: claims.Subject}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}
