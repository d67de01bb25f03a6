package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursereg/internal/pkg/session"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// RequireLogin aborts requests without a logged-in session with a flash and
// a redirect to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := GetRequestContext(c)
		if rc.IsAuthenticated() {
			c.Next()
			return
		}

		rc.AddFlash(session.FlashError, "Please login first.")
		Redirect(c, LoginPath)
		c.Abort()
	}
}

// Redirect saves the session and redirects: 303 after a POST so the browser
// follows with a GET, 302 otherwise.
func Redirect(c *gin.Context, location string) {
	rc := GetRequestContext(c)
	if err := rc.Save(c); err != nil {
		_ = c.Error(err)
	}

	code := http.StatusFound
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		code = http.StatusSeeOther
	}
	c.Redirect(code, location)
}
