package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/notification"
)

const (
	// CartKeyCookie identifies the guest cart across page reloads
	CartKeyCookie = "cart_key"
	// cartKeyCookieMaxAge keeps the guest cart key for 30 days
	cartKeyCookieMaxAge = 30 * 24 * 60 * 60

	sessionContextKey = "cart_session"
)

// Session resolves the caller's authentication state and cart key, attaches
// the per-request notification collector, and drives the merge-on-login off
// the unauthenticated-to-authenticated transition
type Session struct {
	jwt    *auth.JWTService
	signal *auth.SessionSignal
	carts  *cartapp.Service
	logger *zap.Logger
}

// NewSession creates the session middleware
func NewSession(jwt *auth.JWTService, signal *auth.SessionSignal, carts *cartapp.Service, logger *zap.Logger) *Session {
	return &Session{
		jwt:    jwt,
		signal: signal,
		carts:  carts,
		logger: logger,
	}
}

// Handler resolves the session for every request. Authentication is
// optional here; handlers that need a session check it themselves
func (m *Session) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := cartapp.Session{}

		token := bearerToken(c)
		if token != "" {
			claims, err := m.jwt.Validate(token)
			if err != nil {
				m.logger.Debug("rejecting session credential", zap.Error(err))
			} else {
				sess.Authenticated = true
				sess.UserID = claims.UserID
				sess.CartKey = claims.CartKey
				c.Request = c.Request.WithContext(auth.WithToken(c.Request.Context(), token))
			}
		}

		if sess.CartKey == "" {
			sess.CartKey = m.guestCartKey(c)
		}

		ctx, _ := notification.WithCollector(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		c.Set(sessionContextKey, sess)

		// The merge runs exactly once per transition into an
		// authenticated session; failures are non-fatal and surface
		// through the notification collector
		if m.signal.Observe(sess.CartKey, sess.Authenticated) {
			if err := m.carts.MergeOnLogin(c.Request.Context(), sess); err != nil {
				m.logger.Warn("merge-on-login failed",
					zap.String("cart_key", sess.CartKey),
					zap.Error(err),
				)
			}
		}

		c.Next()
	}
}

// guestCartKey reads the guest cart key cookie, minting one when absent
func (m *Session) guestCartKey(c *gin.Context) string {
	if key, err := c.Cookie(CartKeyCookie); err == nil && key != "" {
		return key
	}
	key := uuid.New().String()
	c.SetCookie(CartKeyCookie, key, cartKeyCookieMaxAge, "/", "", false, true)
	return key
}

// bearerToken extracts the bearer credential from the Authorization header
func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

// GetSession returns the resolved session for the current request
func GetSession(c *gin.Context) cartapp.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(cartapp.Session); ok {
			return sess
		}
	}
	return cartapp.Session{}
}
