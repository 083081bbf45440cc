package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
)

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// sessionFromCookie validates the session cookie and stores the identity in
// the context. It reports the failure message, or "" on success.
func sessionFromCookie(c *gin.Context) string {
	token, err := c.Cookie(constants.CookieSessionName)
	if err != nil || token == "" {
		return constants.ErrAuthRequired
	}
	claims, err := parseSessionToken(token, time.Now())
	if err != nil {
		return constants.ErrInvalidSession
	}
	c.Set("userEmail", claims.Sub)
	c.Set("userName", claims.Name)
	return ""
}

// AuthRequired validates the session cookie and injects identity into context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := sessionFromCookie(c); msg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: msg})
			return
		}
		c.Next()
	}
}

// OptionalAuth injects identity when a valid session cookie is present and
// lets anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionFromCookie(c)
		c.Next()
	}
}
