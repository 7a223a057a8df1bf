package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartSessionCookie = "cart_session"
	cartSessionKey    = "cartSession"
)

// CartSession makes sure every request carries a cart session id, issuing a
// UUIDv7 cookie when the shopper has none.
func CartSession(ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CartSessionCookie)
		if err != nil || !validSessionID(id) {
			id = uuid.Must(uuid.NewV7()).String()
		}

		// refresh the cookie on every request so active carts do not expire
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CartSessionCookie, id, int(ttl.Seconds()), "/", "", secure, true)
		c.Set(cartSessionKey, id)
		c.Next()
	}
}

// GetCartSession returns the session id set by CartSession.
func GetCartSession(c *gin.Context) (string, bool) {
	id, ok := c.Get(cartSessionKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
