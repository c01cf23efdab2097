package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/session"
)

const sessionKey = "sid"

type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Session binds every request to a cart session. The cookie carries a signed
// token; when it is missing or fails validation a new session is started.
type Session struct {
	tokens *session.Tokens
	cookie SessionCookie
}

func NewSession(tokens *session.Tokens, cookie SessionCookie) *Session {
	return &Session{tokens: tokens, cookie: cookie}
}

func (s *Session) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(s.cookie.Name); err == nil && raw != "" {
			if sid, err := s.tokens.Parse(raw); err == nil {
				s.bind(c, sid)
				c.Next()
				return
			}
			logging.From(c).Debug("session token rejected, starting a new session")
		}

		sid, token, err := s.tokens.New()
		if err != nil {
			logging.From(c).Error("issue session", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(s.cookie.Name, token, int(s.cookie.TTL.Seconds()), "/", "", s.cookie.Secure, true)
		s.bind(c, sid)
		c.Next()
	}
}

func (s *Session) bind(c *gin.Context, sid string) {
	c.Set(sessionKey, sid)
}

// SessionID returns the id bound by Session.Require.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
