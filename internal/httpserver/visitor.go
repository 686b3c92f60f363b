package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"queencare-storefront/internal/view"
)

const (
	visitorCookie       = "queencare_visitor"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
	visitorCtxKey       = "visitor"
)

// visitorMiddleware attaches the visitor's App to the request, issuing a
// cookie for first-time or malformed ids.
func visitorMiddleware(reg visitors) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented, _ := c.Cookie(visitorCookie)
		app, issued := reg.Visitor(presented)
		if issued {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookie, app.ID(), visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set(visitorCtxKey, app)
		c.Next()
	}
}

func visitorFrom(c *gin.Context) *view.App {
	return c.MustGet(visitorCtxKey).(*view.App)
}
