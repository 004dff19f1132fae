package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mealpress/mealpress/config"
)

// SessionCookieName carries the signed session token across requests.
const SessionCookieName = "mealpress_session"

const sessionLifetime = 30 * 24 * time.Hour

// SessionClaims identifies the logged-in user inside the session cookie.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// SignSession creates a signed session token for the given identity.
func SignSession(userID uint, name string) (string, error) {
	cfg := config.Get()

	claims := SessionClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// IssueSession signs a session token and sets it as an http-only cookie.
func IssueSession(ctx *gin.Context, userID uint, name string) error {
	signed, err := SignSession(userID, name)
	if err != nil {
		return err
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, signed, int(sessionLifetime/time.Second), "/", "", false, true)
	return nil
}

// ClearSession drops the session cookie. Always succeeds, authenticated or not.
func ClearSession(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// ParseSession validates the session cookie and returns its claims.
func ParseSession(tokenStr string) (*SessionClaims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session claims")
	}

	return claims, nil
}
